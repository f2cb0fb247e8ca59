package modules

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PanelState 绘制贺卡面板所需的状态
type PanelState struct {
	Layout  *MessageLayout
	Tabs    *components.TabSelectorComponent
	Compact bool

	// Scroll 滚动距离；Opacity / Scale 由 ScrollEffect 计算
	Scroll  float64
	Opacity float64
	Scale   float64

	// Hover 鼠标悬停的元素（紧凑视口始终为 HitNone）
	Hover Hit

	// DrawHeroEffects 在标题背景之上、文字之下绘制（浮尘粒子），dy 为滚动偏移
	DrawHeroEffects func(dst *ebiten.Image, dy float64)
}

// MessagePanelModule 绘制贺卡页面的主卡片与页脚
//
// 内容先画到与视口同尺寸的离屏画布上（已按滚动距离平移），
// 再以视口中心为原点整体缩放、淡出。
type MessagePanelModule struct {
	content *config.MessageContent
	fonts   *game.FontManager

	heroColors   []color.RGBA
	tabColors    [][]color.RGBA
	memoryColors [][]color.RGBA
	memoryBorder []color.RGBA
	wishColors   [][]color.RGBA

	canvas  *ebiten.Image
	elapsed float64
}

// NewMessagePanelModule 创建面板模块
func NewMessagePanelModule(content *config.MessageContent, fonts *game.FontManager) *MessagePanelModule {
	m := &MessagePanelModule{
		content:    content,
		fonts:      fonts,
		heroColors: config.Colors(content.Hero.Gradient),
	}
	for _, tab := range content.Tabs {
		m.tabColors = append(m.tabColors, config.Colors(tab.Gradient))
	}
	for _, mem := range content.Memories {
		m.memoryColors = append(m.memoryColors, config.Colors(mem.Gradient))
		m.memoryBorder = append(m.memoryBorder, config.Colors([]string{mem.Border})[0])
	}
	for _, wish := range content.Wishes.Items {
		m.wishColors = append(m.wishColors, config.Colors(wish.Gradient))
	}
	return m
}

// Update 推进图标脉冲等循环动画
func (m *MessagePanelModule) Update(dt float64) {
	m.elapsed += dt
}

// Draw 绘制面板
func (m *MessagePanelModule) Draw(screen *ebiten.Image, st PanelState) {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if m.canvas == nil || m.canvas.Bounds().Dx() != w || m.canvas.Bounds().Dy() != h {
		if m.canvas != nil {
			m.canvas.Deallocate()
		}
		m.canvas = ebiten.NewImage(w, h)
	} else {
		m.canvas.Clear()
	}

	dy := -st.Scroll
	l := st.Layout

	m.drawCard(m.canvas, l, dy)
	m.drawHero(m.canvas, l, dy, st)
	m.drawTabs(m.canvas, l, dy, st)

	slide, alpha := m.contentSlide(st)
	switch l.Input.ActiveTab {
	case 0:
		m.drawNotes(m.canvas, l, slide, dy, alpha)
	case 1:
		m.drawMemories(m.canvas, l, slide, dy, alpha)
	default:
		m.drawWishes(m.canvas, l, slide, dy, alpha, st)
	}
	m.drawFooter(m.canvas, l, dy)

	op := &ebiten.DrawImageOptions{}
	cx, cy := float64(w)/2, float64(h)/2
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Scale(st.Scale, st.Scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleAlpha(float32(st.Opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(m.canvas, op)
}

// contentSlide 切换标签页后内容从右侧滑入
func (m *MessagePanelModule) contentSlide(st PanelState) (dx, alpha float64) {
	duration, distance := config.TabSlideDuration, config.TabSlideDistance
	if st.Compact {
		duration, distance = config.TabSlideDurationCompact, config.TabSlideDistanceCompact
	}
	elapsed := duration
	if st.Tabs != nil {
		elapsed = st.Tabs.TabElapsed
	}
	p := utils.Progress(elapsed, duration)
	return (1 - utils.EaseOutCubic(p)) * distance, p
}

// drawCard 玻璃质感主卡片
func (m *MessagePanelModule) drawCard(dst *ebiten.Image, l *MessageLayout, dy float64) {
	c := l.Card
	radius := 24.0
	utils.DrawRoundedRect(dst, c.X, c.Y+dy, c.W, c.H, radius, config.GlassFillColor, 1)
	utils.StrokeRoundedRect(dst, c.X, c.Y+dy, c.W, c.H, radius, 1.5, config.GlassBorderColor, 1)
}

// drawHero 顶部渐变横幅：旋转的花束、标题与副标题
func (m *MessagePanelModule) drawHero(dst *ebiten.Image, l *MessageLayout, dy float64, st PanelState) {
	h := l.Hero
	radius := 24.0
	utils.DrawRoundedRectGradient(dst, h.X, h.Y+dy, h.W, h.H, radius, utils.GradientToRight, m.heroColors, 1)
	// 下边缘为直角，与标签栏相接
	utils.DrawGradientRect(dst, h.X, h.Y+h.H-radius+dy, h.W, radius, utils.GradientToRight, m.heroColors, 1)

	if st.DrawHeroEffects != nil {
		st.DrawHeroEffects(dst, dy)
	}

	icon := l.HeroIcon
	utils.DrawGlyph(dst, m.content.Hero.Icon, icon.X+icon.W/2, icon.Y+icon.H/2+dy, icon.W, math.Mod(m.elapsed*18, 360), color.White, 1)

	m.drawText(dst, l.HeroTitle, 0, dy, config.TextColor, 1)
	m.drawText(dst, l.HeroSubtitle, 0, dy, config.TextColor, 0.9)
}

// drawTabs 标签栏：当前页使用渐变背景、白色下划线与脉冲图标
func (m *MessagePanelModule) drawTabs(dst *ebiten.Image, l *MessageLayout, dy float64, st PanelState) {
	bar := l.TabBar
	utils.DrawGradientRect(dst, bar.X, bar.Y+dy, bar.W, bar.H, utils.GradientToRight,
		[]color.RGBA{premultiplied(config.TabBarColor), premultiplied(config.TabBarColor)}, 1)

	for i, tab := range l.Tabs {
		active := i == l.Input.ActiveTab
		if active && i < len(m.tabColors) {
			utils.DrawGradientRect(dst, tab.X, tab.Y+dy, tab.W, tab.H, utils.GradientToRight, m.tabColors[i], 0.9)
			utils.DrawGradientRect(dst, tab.X, tab.Bottom()-3+dy, tab.W, 3, utils.GradientToRight,
				[]color.RGBA{{R: 255, G: 255, B: 255, A: 255}, {R: 255, G: 255, B: 255, A: 255}}, 1)
		} else if st.Hover.Kind == HitTab && st.Hover.Index == i {
			utils.DrawGradientRect(dst, tab.X, tab.Y+dy, tab.W, tab.H, utils.GradientToRight,
				[]color.RGBA{{R: 26, G: 26, B: 26, A: 26}, {R: 26, G: 26, B: 26, A: 26}}, 1)
		}

		title := l.TabTitles[i]
		titleW := 0.0
		if len(title.Lines) > 0 {
			w, _ := text.Measure(title.Lines[0], m.fonts.Face(title.Style.Font, title.Style.Size), 0)
			titleW = w
		}
		iconSize := title.Style.Size * 1.4
		gap := 8.0
		total := iconSize + gap + titleW
		left := tab.X + (tab.W-total)/2

		scale := 1.0
		if active {
			scale = 1 + 0.1*utils.Pulse(m.elapsed, 2)
		}
		iconName := ""
		if i < len(m.content.Tabs) {
			iconName = m.content.Tabs[i].Icon
		}
		alpha := 0.7
		if active {
			alpha = 1
		}
		utils.DrawGlyph(dst, iconName, left+iconSize/2, tab.Y+tab.H/2+dy, iconSize*scale, 0, color.White, alpha)

		title.Center = false
		title.X = left + iconSize + gap
		m.drawText(dst, title, 0, dy, config.TextColor, alpha)
	}
}

// drawNotes 第一页：便笺
func (m *MessagePanelModule) drawNotes(dst *ebiten.Image, l *MessageLayout, dx, dy, alpha float64) {
	for i, block := range l.Notes {
		a := 0.9
		if i == 0 {
			a = 1
		}
		m.drawText(dst, block, dx, dy, config.TextColor, a*alpha)
	}
}

// drawMemories 第二页：回忆卡片
func (m *MessagePanelModule) drawMemories(dst *ebiten.Image, l *MessageLayout, dx, dy, alpha float64) {
	for i, box := range l.Memories {
		r := box.Rect
		if i < len(m.memoryColors) {
			utils.DrawRoundedRectGradient(dst, r.X+dx, r.Y+dy, r.W, r.H, 16, utils.GradientToRight, m.memoryColors[i], 0.25*alpha)
			utils.StrokeRoundedRect(dst, r.X+dx, r.Y+dy, r.W, r.H, 16, 1.5, m.memoryBorder[i], 0.5*alpha)
		}
		icon := ""
		if i < len(m.content.Memories) {
			icon = m.content.Memories[i].Icon
		}
		utils.DrawGlyph(dst, icon, box.Icon.X+box.Icon.W/2+dx, box.Icon.Y+box.Icon.H/2+dy, box.Icon.W, 0, config.SparkleColor, alpha)
		m.drawText(dst, box.Title, dx, dy, config.TextColor, alpha)
		m.drawText(dst, box.Text, dx, dy, config.TextColor, 0.9*alpha)
	}
}

// drawWishes 第三页：祝福网格与展开的诗
func (m *MessagePanelModule) drawWishes(dst *ebiten.Image, l *MessageLayout, dx, dy, alpha float64, st PanelState) {
	for i, block := range l.WishHeader {
		a := 0.7
		if i == len(l.WishHeader)-1 {
			a = 1
		}
		m.drawText(dst, block, dx, dy, config.TextColor, a*alpha)
	}

	for _, wish := range l.Wishes {
		r := wish.Rect
		hover := st.Hover.Kind == HitWish && st.Hover.Index == wish.Index
		cardAlpha := 0.8
		if hover {
			cardAlpha = 1
		}
		if wish.Index < len(m.wishColors) {
			utils.DrawRoundedRectGradient(dst, r.X+dx, r.Y+dy, r.W, r.H, 16, utils.GradientToRight, m.wishColors[wish.Index], cardAlpha*alpha)
		}
		if hover {
			utils.StrokeRoundedRect(dst, r.X+dx, r.Y+dy, r.W, r.H, 16, 2, config.GlassBorderColor, alpha)
		}

		item := m.content.Wishes.Items[wish.Index]
		utils.DrawGlyph(dst, item.Icon, wish.Icon.X+wish.Icon.W/2+dx, wish.Icon.Y+wish.Icon.H/2+dy, wish.Icon.W, 0, color.White, alpha)
		m.drawText(dst, wish.Text, dx, dy, config.TextColor, alpha)

		// 展开时卷轴图标旋转 180°
		rotation := 180 * wish.PoemOpen
		utils.DrawGlyph(dst, "scroll", wish.Arrow.X+wish.Arrow.W/2+dx, wish.Arrow.Y+wish.Arrow.H/2+dy, wish.Arrow.W, rotation, color.White, 0.9*alpha)

		if wish.PoemOpen > 0 {
			m.drawPoem(dst, wish, dx, dy, alpha)
		}
	}
}

// drawPoem 诗卡片，展开动画期间按当前高度裁剪
func (m *MessagePanelModule) drawPoem(dst *ebiten.Image, wish WishBox, dx, dy, alpha float64) {
	p := wish.Poem
	clip := image.Rect(
		int(math.Floor(p.X+dx)), int(math.Floor(p.Y+dy)),
		int(math.Ceil(p.X+p.W+dx)), int(math.Ceil(p.Y+p.H+dy)),
	).Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	sub := dst.SubImage(clip).(*ebiten.Image)

	a := alpha * wish.PoemOpen
	full := wish.PoemTitle.Height() + 8 + wish.PoemLines.Height() + 2*(wish.PoemTitle.Y-p.Y)
	utils.DrawRoundedRect(sub, p.X+dx, p.Y+dy, p.W, full, 16, config.GlassFillColor, 1.5*a)
	utils.StrokeRoundedRect(sub, p.X+dx, p.Y+dy, p.W, full, 16, 1.5, config.GlassBorderColor, a)
	m.drawText(sub, wish.PoemTitle, dx, dy, color.NRGBA{R: 253, G: 224, B: 71, A: 255}, a)
	m.drawText(sub, wish.PoemLines, dx, dy, config.TextColor, 0.95*a)
}

// drawFooter 页脚：脉冲的标题与两侧爱心
func (m *MessagePanelModule) drawFooter(dst *ebiten.Image, l *MessageLayout, dy float64) {
	pulse := 1 + 0.1*utils.Pulse(m.elapsed, 2)
	title := l.FooterTitle
	if len(title.Lines) > 0 {
		w, _ := text.Measure(title.Lines[0], m.fonts.Face(title.Style.Font, title.Style.Size), 0)
		size := title.Style.Size * 0.8
		y := title.Y + title.Style.LineHeight()/2 + dy
		utils.DrawGlyph(dst, "heart", title.X-w/2-size, y, size*pulse, 0, config.HeartColor, 1)
		utils.DrawGlyph(dst, "heart", title.X+w/2+size, y, size*pulse, 0, config.HeartColor, 1)
	}
	m.drawText(dst, title, 0, dy, config.TextColor, 1)
	m.drawText(dst, l.FooterSubtitle, 0, dy, config.TextDimColor, 1)
}

// drawText 绘制文字块；居中的块以 X 为中线
func (m *MessagePanelModule) drawText(dst *ebiten.Image, block TextBlock, dx, dy float64, clr color.Color, alpha float64) {
	if alpha <= 0 || len(block.Lines) == 0 {
		return
	}
	face := m.fonts.Face(block.Style.Font, block.Style.Size)
	lh := block.Style.LineHeight()
	pad := (lh - block.Style.Size*1.2) / 2
	for i, line := range block.Lines {
		if line == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(block.X+dx, block.Y+float64(i)*lh+pad+dy)
		if block.Center {
			op.PrimaryAlign = text.AlignCenter
		}
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(float32(utils.Clamp01(alpha)))
		text.Draw(dst, line, face, op)
	}
}

// premultiplied 非预乘颜色转换为 color.RGBA（用于渐变色标）
func premultiplied(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Dispose 释放离屏画布
func (m *MessagePanelModule) Dispose() {
	if m.canvas != nil {
		m.canvas.Deallocate()
		m.canvas = nil
	}
}
