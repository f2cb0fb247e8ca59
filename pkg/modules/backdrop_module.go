package modules

import (
	_ "embed"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

//go:embed shaders/sphere.kage
var sphereShaderSource []byte

// floatingGlyphNames 漂浮装饰使用的图标
var floatingGlyphNames = []string{"heart", "sparkle", "flower", "star", "heart", "bouquet", "sparkle", "heart"}

// star 星空中的一颗星（球壳坐标）
type star struct {
	x, y, z float64
	size    float64
	phase   float64
}

// floatingHeart 球体周围漂浮的爱心（相对视口的比例坐标）
type floatingHeart struct {
	x, y   float64
	size   float64
	speed  float64
	phase  float64
	rotate float64
}

// floatingGlyph 从底部飘到顶部的装饰图标
type floatingGlyph struct {
	name     string
	x        float64
	offset   float64 // 初始进度
	duration float64
	size     float64
	spin     float64
}

// BackdropModule 贺卡页面的背景
//
// 由底色、星空、中央扭曲球体（Kage 着色器）、漂浮爱心、
// 漂浮装饰（仅常规视口）和上下渐变遮罩组成。
// 元素数量由视口分类决定，视口变化时重新生成。
type BackdropModule struct {
	viewport game.ViewportInfo
	elapsed  float64
	seed     int64

	stars  []star
	hearts []floatingHeart
	glyphs []floatingGlyph

	shader       *ebiten.Shader
	shaderFailed bool

	starVertices []ebiten.Vertex
	starIndices  []uint16
}

// NewBackdropModule 按视口创建背景，seed 决定随机布局
func NewBackdropModule(viewport game.ViewportInfo, seed int64) *BackdropModule {
	m := &BackdropModule{seed: seed}
	m.OnViewportChange(viewport)
	return m
}

// OnViewportChange 视口变化时调整尺寸；分类变化时重新生成装饰
func (m *BackdropModule) OnViewportChange(viewport game.ViewportInfo) {
	regenerate := m.stars == nil || viewport.Class != m.viewport.Class
	m.viewport = viewport
	if regenerate {
		m.generate()
	}
}

// generate 按视口分类生成星空、爱心与漂浮装饰
func (m *BackdropModule) generate() {
	rng := rand.New(rand.NewSource(m.seed))
	compact := m.viewport.Compact()

	starCount, heartCount, glyphCount := config.StarCountRegular, config.HeartCountRegular, config.FloatingGlyphCount
	if compact {
		starCount, heartCount, glyphCount = config.StarCountCompact, config.HeartCountCompact, 0
	}

	m.stars = make([]star, starCount)
	for i := range m.stars {
		// 球壳内均匀方向
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		r := config.StarRadius + rng.Float64()*config.StarDepth
		m.stars[i] = star{
			x:     r * math.Sin(phi) * math.Cos(theta),
			y:     r * math.Cos(phi),
			z:     r * math.Sin(phi) * math.Sin(theta),
			size:  0.6 + rng.Float64()*1.4,
			phase: rng.Float64() * 2 * math.Pi,
		}
	}

	m.hearts = make([]floatingHeart, heartCount)
	for i := range m.hearts {
		a := float64(i)/float64(heartCount)*2*math.Pi + rng.Float64()*0.4
		dist := 0.28 + rng.Float64()*0.14
		m.hearts[i] = floatingHeart{
			x:      0.5 + dist*math.Cos(a),
			y:      0.45 + dist*math.Sin(a)*0.8,
			size:   18 + rng.Float64()*22,
			speed:  0.6 + rng.Float64()*0.8,
			phase:  rng.Float64() * 2 * math.Pi,
			rotate: rng.Float64()*30 - 15,
		}
	}

	m.glyphs = make([]floatingGlyph, glyphCount)
	for i := range m.glyphs {
		m.glyphs[i] = floatingGlyph{
			name:     floatingGlyphNames[i%len(floatingGlyphNames)],
			x:        0.05 + rng.Float64()*0.9,
			offset:   rng.Float64(),
			duration: 10 + rng.Float64()*10,
			size:     20 + rng.Float64()*20,
			spin:     rng.Float64()*360 - 180,
		}
	}

	log.Printf("[BackdropModule] Generated %d stars, %d hearts, %d glyphs (%s)",
		len(m.stars), len(m.hearts), len(m.glyphs), m.viewport.Class)
}

// StarCount 星星数量
func (m *BackdropModule) StarCount() int { return len(m.stars) }

// HeartCount 漂浮爱心数量
func (m *BackdropModule) HeartCount() int { return len(m.hearts) }

// GlyphCount 漂浮装饰数量（紧凑视口为 0）
func (m *BackdropModule) GlyphCount() int { return len(m.glyphs) }

// Update 推进动画时间
func (m *BackdropModule) Update(dt float64) {
	m.elapsed += dt
}

// Draw 绘制整个背景
func (m *BackdropModule) Draw(screen *ebiten.Image) {
	screen.Fill(config.MessageBackgroundColor)

	w := float64(m.viewport.Width)
	h := float64(m.viewport.Height)
	m.drawStars(screen, w, h)
	m.drawSphere(screen, w, h)
	m.drawHearts(screen, w, h)
	m.drawGlyphs(screen, w, h)

	top := color.RGBAModel.Convert(config.OverlayTopColor).(color.RGBA)
	bottom := color.RGBAModel.Convert(config.OverlayBottomColor).(color.RGBA)
	utils.DrawGradientRect(screen, 0, 0, w, h, utils.GradientToBottom, []color.RGBA{top, {}, bottom}, 1)
}

// drawStars 星空缓慢绕 Y 轴旋转，正交投影，远处的星更暗
func (m *BackdropModule) drawStars(screen *ebiten.Image, w, h float64) {
	angle := m.elapsed * 0.03
	sinA, cosA := math.Sincos(angle)
	scale := math.Max(w, h) / (2 * (config.StarRadius + config.StarDepth)) * 1.2
	cx, cy := w/2, h/2
	outer := config.StarRadius + config.StarDepth

	src := utils.WhitePixel().Bounds()
	sx0, sy0 := float32(src.Min.X), float32(src.Min.Y)
	sx1, sy1 := float32(src.Max.X), float32(src.Max.Y)

	m.starVertices = m.starVertices[:0]
	m.starIndices = m.starIndices[:0]
	for _, s := range m.stars {
		x := s.x*cosA - s.z*sinA
		z := s.x*sinA + s.z*cosA
		px := cx + x*scale
		py := cy + s.y*scale
		if px < -2 || px > w+2 || py < -2 || py > h+2 {
			continue
		}

		depth := (z + outer) / (2 * outer)
		alpha := (0.25 + 0.75*depth) * (0.6 + 0.4*math.Sin(m.elapsed*2+s.phase))
		half := float32(s.size * (0.6 + 0.6*depth) / 2)
		a := float32(utils.Clamp01(alpha))

		base := uint16(len(m.starVertices))
		fx, fy := float32(px), float32(py)
		m.starVertices = append(m.starVertices,
			ebiten.Vertex{DstX: fx - half, DstY: fy - half, SrcX: sx0, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
			ebiten.Vertex{DstX: fx + half, DstY: fy - half, SrcX: sx1, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
			ebiten.Vertex{DstX: fx - half, DstY: fy + half, SrcX: sx0, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
			ebiten.Vertex{DstX: fx + half, DstY: fy + half, SrcX: sx1, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
		)
		m.starIndices = append(m.starIndices, base, base+1, base+2, base+1, base+3, base+2)
	}
	if len(m.starVertices) > 0 {
		screen.DrawTriangles(m.starVertices, m.starIndices, utils.WhitePixel(), nil)
	}
}

// drawSphere 中央扭曲球体；着色器编译失败时退化为纯色圆
func (m *BackdropModule) drawSphere(screen *ebiten.Image, w, h float64) {
	radius := math.Min(w, h) * config.SphereScale / 2
	// 缓慢上下浮动
	cx := w / 2
	cy := h*0.45 + math.Sin(m.elapsed*0.8)*radius*0.05

	if m.shader == nil && !m.shaderFailed {
		shader, err := ebiten.NewShader(sphereShaderSource)
		if err != nil {
			log.Printf("[BackdropModule] Sphere shader unavailable, using flat circle: %v", err)
			m.shaderFailed = true
		} else {
			m.shader = shader
		}
	}

	if m.shader == nil {
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(radius), config.SphereColor, true)
		return
	}

	size := int(math.Ceil(radius * 2.3))
	op := &ebiten.DrawRectShaderOptions{}
	op.GeoM.Translate(cx-float64(size)/2, cy-float64(size)/2)
	op.Uniforms = map[string]any{
		"Time":      float32(m.elapsed),
		"Center":    []float32{float32(cx), float32(cy)},
		"Radius":    float32(radius),
		"BaseColor": colorVec(config.SphereColor),
		"Opacity":   float32(0.9),
	}
	screen.DrawRectShader(size, size, m.shader, op)
}

// drawHearts 爱心上下浮动并轻微旋转，先画一层放大的发光
func (m *BackdropModule) drawHearts(screen *ebiten.Image, w, h float64) {
	scale := 1.0
	if m.viewport.Compact() {
		scale = 0.7
	}
	for _, heart := range m.hearts {
		t := m.elapsed*heart.speed + heart.phase
		x := heart.x*w + math.Cos(t*0.7)*8
		y := heart.y*h + math.Sin(t)*14
		rot := heart.rotate + math.Sin(t*0.5)*10
		size := heart.size * scale

		utils.DrawGlyph(screen, "heart", x, y, size*1.5, rot, config.HeartEmissiveColor, 0.18)
		utils.DrawGlyph(screen, "heart", x, y, size, rot, config.HeartColor, 0.85)
	}
}

// drawGlyphs 装饰从底部飘到顶部，首尾淡入淡出
func (m *BackdropModule) drawGlyphs(screen *ebiten.Image, w, h float64) {
	for _, g := range m.glyphs {
		p := math.Mod(m.elapsed/g.duration+g.offset, 1)
		y := h + g.size - p*(h+2*g.size)
		x := g.x*w + math.Sin(p*2*math.Pi)*20
		alpha := math.Min(p/0.1, 1) * math.Min((1-p)/0.1, 1) * 0.6
		utils.DrawGlyph(screen, g.name, x, y, g.size, g.spin*p, color.White, alpha)
	}
}

// colorVec 将颜色转换为着色器的 vec4（0~1）
func colorVec(c color.RGBA) []float32 {
	return []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// Dispose 释放着色器
func (m *BackdropModule) Dispose() {
	if m.shader != nil {
		m.shader.Deallocate()
		m.shader = nil
	}
}
