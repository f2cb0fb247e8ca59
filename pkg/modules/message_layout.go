package modules

import (
	"math"
	"strings"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextMeasurer 测量文本宽度
type TextMeasurer interface {
	Measure(s string, style game.FontStyle, size float64) float64
}

// FontMeasurer 使用 FontManager 的字体测量文本
type FontMeasurer struct {
	Fonts *game.FontManager
}

// Measure 实现 TextMeasurer
func (f FontMeasurer) Measure(s string, style game.FontStyle, size float64) float64 {
	w, _ := text.Measure(s, f.Fonts.Face(style, size), 0)
	return w
}

// Rect 矩形区域（内容坐标）
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Bottom 矩形下边缘
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// TextStyle 字体样式与字号
type TextStyle struct {
	Font game.FontStyle
	Size float64
}

// LineHeight 行高
func (s TextStyle) LineHeight() float64 {
	return math.Ceil(s.Size * 1.45)
}

// TextBlock 已换行的一段文字
type TextBlock struct {
	Lines  []string
	Style  TextStyle
	X, Y   float64 // 左上角；居中时 X 为中线
	Width  float64
	Center bool
}

// Height 文字块高度
func (b TextBlock) Height() float64 {
	return float64(len(b.Lines)) * b.Style.LineHeight()
}

// MemoryBox 回忆卡片
type MemoryBox struct {
	Rect  Rect
	Icon  Rect
	Title TextBlock
	Text  TextBlock
}

// WishBox 祝福卡片与它的诗
type WishBox struct {
	Index int
	Rect  Rect
	Icon  Rect
	Text  TextBlock
	Arrow Rect

	// Poem 诗卡片，展开或收起动画中时 PoemOpen > 0
	Poem      Rect
	PoemOpen  float64
	PoemTitle TextBlock
	PoemLines TextBlock
}

// HitKind 点击命中的元素类型
type HitKind int

const (
	HitNone HitKind = iota
	HitTab
	HitWish
)

// Hit 点击命中结果
type Hit struct {
	Kind  HitKind
	Index int
}

// LayoutInput 计算布局所需的状态
type LayoutInput struct {
	Width   float64 // 视口宽度
	Compact bool

	ActiveTab int

	ExpandedPoem   int
	CollapsingPoem int
	// PoemProgress 展开/收起动画进度 [0, 1]
	PoemProgress float64
}

// MessageLayout 贺卡页面的布局结果
// 所有坐标都是内容坐标（未滚动、未缩放）
type MessageLayout struct {
	Input LayoutInput

	Card Rect

	Hero         Rect
	HeroIcon     Rect
	HeroTitle    TextBlock
	HeroSubtitle TextBlock

	TabBar    Rect
	Tabs      [config.TabCount]Rect
	TabTitles [config.TabCount]TextBlock
	TabStyle  TextStyle

	Content Rect

	// 第 0 页：便笺
	Notes []TextBlock
	// 第 1 页：回忆
	Memories []MemoryBox
	// 第 2 页：祝福
	WishHeader []TextBlock
	Wishes     []WishBox

	Footer         Rect
	FooterTitle    TextBlock
	FooterSubtitle TextBlock

	// Height 内容总高度
	Height float64
}

// layoutMetrics 随视口分类变化的尺寸
type layoutMetrics struct {
	pagePad    float64
	heroPad    float64
	heroIcon   float64
	contentPad float64
	tabHeight  float64
	gap        float64
	cardRadius float64

	heroTitle    TextStyle
	heroSubtitle TextStyle
	tab          TextStyle
	noteHeading  TextStyle
	note         TextStyle
	memoryTitle  TextStyle
	memoryText   TextStyle
	memoryIcon   float64
	wishHint     TextStyle
	wishHeading  TextStyle
	wishText     TextStyle
	wishIcon     float64
	poemTitle    TextStyle
	poem         TextStyle
	footerTitle  TextStyle
	footerText   TextStyle
}

func metricsFor(compact bool) layoutMetrics {
	if compact {
		return layoutMetrics{
			pagePad: 16, heroPad: 32, heroIcon: 48, contentPad: 24, tabHeight: 56, gap: 16, cardRadius: 24,
			heroTitle:    TextStyle{game.FontScript, 36},
			heroSubtitle: TextStyle{game.FontRegular, 18},
			tab:          TextStyle{game.FontBold, 14},
			noteHeading:  TextStyle{game.FontScript, 24},
			note:         TextStyle{game.FontRegular, 16},
			memoryTitle:  TextStyle{game.FontBold, 20},
			memoryText:   TextStyle{game.FontRegular, 15},
			memoryIcon:   32,
			wishHint:     TextStyle{game.FontRegular, 14},
			wishHeading:  TextStyle{game.FontScript, 24},
			wishText:     TextStyle{game.FontBold, 15},
			wishIcon:     30,
			poemTitle:    TextStyle{game.FontScript, 18},
			poem:         TextStyle{game.FontRegular, 15},
			footerTitle:  TextStyle{game.FontScript, 28},
			footerText:   TextStyle{game.FontRegular, 14},
		}
	}
	return layoutMetrics{
		pagePad: 32, heroPad: 48, heroIcon: 64, contentPad: 48, tabHeight: 64, gap: 24, cardRadius: 24,
		heroTitle:    TextStyle{game.FontScript, 60},
		heroSubtitle: TextStyle{game.FontRegular, 24},
		tab:          TextStyle{game.FontBold, 18},
		noteHeading:  TextStyle{game.FontScript, 30},
		note:         TextStyle{game.FontRegular, 18},
		memoryTitle:  TextStyle{game.FontBold, 24},
		memoryText:   TextStyle{game.FontRegular, 17},
		memoryIcon:   40,
		wishHint:     TextStyle{game.FontRegular, 16},
		wishHeading:  TextStyle{game.FontScript, 30},
		wishText:     TextStyle{game.FontBold, 17},
		wishIcon:     36,
		poemTitle:    TextStyle{game.FontScript, 20},
		poem:         TextStyle{game.FontRegular, 17},
		footerTitle:  TextStyle{game.FontScript, 36},
		footerText:   TextStyle{game.FontRegular, 16},
	}
}

// layouter 布局计算的上下文
type layouter struct {
	m       layoutMetrics
	measure TextMeasurer
}

// wrap 按最大宽度换行
func (l layouter) wrap(s string, style TextStyle, x, y, width float64, center bool) TextBlock {
	lines := utils.WrapText(s, width, func(line string) float64 {
		return l.measure.Measure(line, style.Font, style.Size)
	})
	if center {
		x += width / 2
	}
	return TextBlock{Lines: lines, Style: style, X: x, Y: y, Width: width, Center: center}
}

// LayoutMessage 计算贺卡页面的布局
func LayoutMessage(content *config.MessageContent, in LayoutInput, measure TextMeasurer) *MessageLayout {
	l := layouter{m: metricsFor(in.Compact), measure: measure}
	m := l.m
	out := &MessageLayout{Input: in, TabStyle: m.tab}

	cardW := math.Min(in.Width-2*m.pagePad, config.ContentMaxWidth)
	cardX := (in.Width - cardW) / 2
	y := m.pagePad

	// Hero
	innerW := cardW - 2*m.heroPad
	hy := y + m.heroPad
	out.HeroIcon = Rect{X: cardX + (cardW-m.heroIcon)/2, Y: hy, W: m.heroIcon, H: m.heroIcon}
	hy += m.heroIcon + 16
	out.HeroTitle = l.wrap(content.Hero.Title, m.heroTitle, cardX+m.heroPad, hy, innerW, true)
	hy += out.HeroTitle.Height() + 8
	out.HeroSubtitle = l.wrap(content.Hero.Subtitle, m.heroSubtitle, cardX+m.heroPad, hy, innerW, true)
	hy += out.HeroSubtitle.Height() + m.heroPad
	out.Hero = Rect{X: cardX, Y: y, W: cardW, H: hy - y}

	// Tabs
	out.TabBar = Rect{X: cardX, Y: hy, W: cardW, H: m.tabHeight}
	tabW := cardW / config.TabCount
	for i := 0; i < config.TabCount; i++ {
		out.Tabs[i] = Rect{X: cardX + float64(i)*tabW, Y: hy, W: tabW, H: m.tabHeight}
		title := ""
		if i < len(content.Tabs) {
			title = content.Tabs[i].Title
		}
		// 图标占左侧，标题不换行
		out.TabTitles[i] = TextBlock{
			Lines: []string{title},
			Style: m.tab,
			X:     out.Tabs[i].X + tabW/2,
			Y:     hy + (m.tabHeight-m.tab.LineHeight())/2,
			Width: tabW,
		}
	}

	// Content
	cy := out.TabBar.Bottom() + m.contentPad
	cx := cardX + m.contentPad
	cw := cardW - 2*m.contentPad

	switch in.ActiveTab {
	case 0:
		cy = l.layoutNotes(out, content.Notes, cx, cy, cw)
	case 1:
		cy = l.layoutMemories(out, content.Memories, cx, cy, cw)
	default:
		cy = l.layoutWishes(out, &content.Wishes, in, cx, cy, cw)
	}
	cy += m.contentPad
	out.Content = Rect{X: cardX, Y: out.TabBar.Bottom(), W: cardW, H: cy - out.TabBar.Bottom()}
	out.Card = Rect{X: cardX, Y: y, W: cardW, H: cy - y}

	// Footer
	fy := out.Card.Bottom() + m.gap*2
	out.FooterTitle = l.wrap(content.Footer.Title, m.footerTitle, cardX, fy, cardW, true)
	fy += out.FooterTitle.Height() + 4
	out.FooterSubtitle = l.wrap(content.Footer.Subtitle, m.footerText, cardX, fy, cardW, true)
	fy += out.FooterSubtitle.Height()
	out.Footer = Rect{X: cardX, Y: out.Card.Bottom() + m.gap*2, W: cardW, H: fy - out.Card.Bottom() - m.gap*2}

	out.Height = fy + m.pagePad
	return out
}

// layoutNotes 第一段作为标题，其余为正文
func (l layouter) layoutNotes(out *MessageLayout, notes []string, x, y, w float64) float64 {
	for i, note := range notes {
		style := l.m.note
		if i == 0 {
			style = l.m.noteHeading
		}
		block := l.wrap(note, style, x, y, w, false)
		out.Notes = append(out.Notes, block)
		y += block.Height() + l.m.gap
	}
	return y - l.m.gap
}

// layoutMemories 回忆卡片纵向排列：图标与标题一行，正文在下
func (l layouter) layoutMemories(out *MessageLayout, memories []config.MemoryContent, x, y, w float64) float64 {
	pad := l.m.gap
	for _, mem := range memories {
		top := y
		iy := y + pad
		icon := Rect{X: x + pad, Y: iy, W: l.m.memoryIcon, H: l.m.memoryIcon}
		titleX := icon.X + icon.W + 12
		titleW := w - 2*pad - icon.W - 12
		title := l.wrap(mem.Title, l.m.memoryTitle, titleX, iy+(icon.H-l.m.memoryTitle.LineHeight())/2, titleW, false)
		row := math.Max(icon.H, title.Height())
		body := l.wrap(mem.Text, l.m.memoryText, x+pad, iy+row+12, w-2*pad, false)
		bottom := body.Y + body.Height() + pad

		out.Memories = append(out.Memories, MemoryBox{
			Rect:  Rect{X: x, Y: top, W: w, H: bottom - top},
			Icon:  icon,
			Title: title,
			Text:  body,
		})
		y = bottom + l.m.gap
	}
	return y - l.m.gap
}

// layoutWishes 祝福网格：紧凑视口一列，常规视口两列
// 诗卡片显示在对应祝福的下方，同一行取两列中较高的一格
func (l layouter) layoutWishes(out *MessageLayout, wishes *config.WishesContent, in LayoutInput, x, y, w float64) float64 {
	for i, line := range wishes.Header {
		style := l.m.wishHint
		if i == len(wishes.Header)-1 {
			style = l.m.wishHeading
		}
		block := l.wrap(line, style, x, y, w, true)
		out.WishHeader = append(out.WishHeader, block)
		y += block.Height() + 8
	}
	y += l.m.gap - 8

	cols := 2
	if in.Compact {
		cols = 1
	}
	colGap := l.m.gap
	colW := (w - colGap*float64(cols-1)) / float64(cols)
	pad := l.m.gap * 0.75

	for row := 0; row*cols < len(wishes.Items); row++ {
		rowBottom := y
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(wishes.Items) {
				break
			}
			item := wishes.Items[i]
			bx := x + float64(col)*(colW+colGap)

			icon := Rect{X: bx + pad, Y: y + pad, W: l.m.wishIcon, H: l.m.wishIcon}
			arrow := Rect{X: bx + colW - pad - 24, W: 24, H: 24}
			textX := icon.X + icon.W + 12
			textW := arrow.X - 8 - textX
			txt := l.wrap(item.Text, l.m.wishText, textX, 0, textW, false)
			inner := math.Max(icon.H, txt.Height())
			txt.Y = y + pad + (inner-txt.Height())/2
			arrow.Y = y + pad + (inner-arrow.H)/2
			box := WishBox{
				Index: i,
				Rect:  Rect{X: bx, Y: y, W: colW, H: inner + 2*pad},
				Icon:  icon,
				Text:  txt,
				Arrow: arrow,
			}

			bottom := box.Rect.Bottom()
			if open := poemOpenness(in, i); open > 0 {
				py := bottom + 12
				ptitle := l.wrap(wishes.PoemTitle, l.m.poemTitle, bx+pad, py+pad, colW-2*pad, true)
				plines := TextBlock{
					Lines:  strings.Split(item.Poem, "\n"),
					Style:  l.m.poem,
					X:      bx + colW/2,
					Y:      ptitle.Y + ptitle.Height() + 8,
					Width:  colW - 2*pad,
					Center: true,
				}
				full := ptitle.Height() + 8 + plines.Height() + 2*pad
				box.Poem = Rect{X: bx, Y: py, W: colW, H: full * open}
				box.PoemOpen = open
				box.PoemTitle = ptitle
				box.PoemLines = plines
				bottom = py + box.Poem.H
			}

			out.Wishes = append(out.Wishes, box)
			rowBottom = math.Max(rowBottom, bottom)
		}
		y = rowBottom + colGap
	}
	return y - colGap
}

// poemOpenness 第 i 首诗的展开程度 [0, 1]
func poemOpenness(in LayoutInput, i int) float64 {
	t := utils.EaseInOutCubic(utils.Clamp01(in.PoemProgress))
	switch i {
	case in.ExpandedPoem:
		return t
	case in.CollapsingPoem:
		return 1 - t
	}
	return 0
}

// HitTest 返回内容坐标 (x, y) 处可点击的元素
func (l *MessageLayout) HitTest(x, y float64) Hit {
	for i, tab := range l.Tabs {
		if tab.Contains(x, y) {
			return Hit{Kind: HitTab, Index: i}
		}
	}
	if l.Input.ActiveTab == config.WishTabIndex {
		for _, wish := range l.Wishes {
			if wish.Rect.Contains(x, y) {
				return Hit{Kind: HitWish, Index: wish.Index}
			}
		}
	}
	return Hit{Kind: HitNone, Index: -1}
}

// MaxScroll 最大滚动距离
func (l *MessageLayout) MaxScroll(viewportHeight float64) float64 {
	return math.Max(0, l.Height-viewportHeight)
}

// ScrollEffect 滚动进度对应的整体透明度与缩放
// 前 20% 透明度 1→0.8，前 50% 缩放 1→0.95
func ScrollEffect(scrollProgress float64) (opacity, scale float64) {
	p := utils.Clamp01(scrollProgress)
	opacity = utils.Lerp(1, config.ScrollMinOpacity, utils.Clamp01(p/config.ScrollFadeEnd))
	scale = utils.Lerp(1, config.ScrollMinScale, utils.Clamp01(p/config.ScrollShrinkEnd))
	return opacity, scale
}

// ScreenToContent 屏幕坐标转换为内容坐标
// 内容先按 scroll 上移，再以视口中心为原点缩放 scale
func ScreenToContent(sx, sy, viewportW, viewportH, scale, scroll float64) (float64, float64) {
	if scale <= 0 {
		scale = 1
	}
	cx, cy := viewportW/2, viewportH/2
	return (sx-cx)/scale + cx, (sy-cy)/scale + cy + scroll
}
