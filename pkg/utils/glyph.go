package utils

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 装饰图标
// 每个图标在 [-0.5, 0.5] 的单位坐标中定义，绘制时缩放到 size 并绕中心旋转。
// 主体用传入的颜色填充，细节（丝带、五官等）用 detail 颜色叠加。

// glyphPen 把单位坐标变换到屏幕坐标后写入路径
type glyphPen struct {
	path     *vector.Path
	cx, cy   float64
	size     float64
	sin, cos float64
}

func newGlyphPen(path *vector.Path, cx, cy, size, rotationDeg float64) *glyphPen {
	rad := rotationDeg * math.Pi / 180
	return &glyphPen{path: path, cx: cx, cy: cy, size: size, sin: math.Sin(rad), cos: math.Cos(rad)}
}

func (p *glyphPen) pt(u, v float64) (float32, float32) {
	x, y := u*p.size, v*p.size
	return float32(p.cx + x*p.cos - y*p.sin), float32(p.cy + x*p.sin + y*p.cos)
}

func (p *glyphPen) moveTo(u, v float64) {
	x, y := p.pt(u, v)
	p.path.MoveTo(x, y)
}

func (p *glyphPen) lineTo(u, v float64) {
	x, y := p.pt(u, v)
	p.path.LineTo(x, y)
}

func (p *glyphPen) cubicTo(u1, v1, u2, v2, u3, v3 float64) {
	x1, y1 := p.pt(u1, v1)
	x2, y2 := p.pt(u2, v2)
	x3, y3 := p.pt(u3, v3)
	p.path.CubicTo(x1, y1, x2, y2, x3, y3)
}

func (p *glyphPen) close() {
	p.path.Close()
}

// circle 以多边形近似的圆，保证旋转后仍是闭合子路径
func (p *glyphPen) circle(u, v, r float64) {
	const segments = 24
	for i := 0; i <= segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		if i == 0 {
			p.moveTo(u+r*math.Cos(a), v+r*math.Sin(a))
		} else {
			p.lineTo(u+r*math.Cos(a), v+r*math.Sin(a))
		}
	}
	p.close()
}

// rect 矩形子路径
func (p *glyphPen) rect(u, v, w, h float64) {
	p.moveTo(u, v)
	p.lineTo(u+w, v)
	p.lineTo(u+w, v+h)
	p.lineTo(u, v+h)
	p.close()
}

// star n 角星
func (p *glyphPen) star(points int, outer, inner, rotation float64) {
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := rotation + float64(i)*math.Pi/float64(points) - math.Pi/2
		if i == 0 {
			p.moveTo(r*math.Cos(a), r*math.Sin(a))
		} else {
			p.lineTo(r*math.Cos(a), r*math.Sin(a))
		}
	}
	p.close()
}

// glyphBuilder 构建主体路径与细节路径
type glyphBuilder func(body, detail *glyphPen)

var glyphs = map[string]glyphBuilder{
	"heart": func(body, _ *glyphPen) {
		body.moveTo(0, 0.42)
		body.cubicTo(-0.1, 0.32, -0.5, 0.08, -0.5, -0.16)
		body.cubicTo(-0.5, -0.38, -0.3, -0.48, -0.16, -0.46)
		body.cubicTo(-0.06, -0.45, 0, -0.36, 0, -0.3)
		body.cubicTo(0, -0.36, 0.06, -0.45, 0.16, -0.46)
		body.cubicTo(0.3, -0.48, 0.5, -0.38, 0.5, -0.16)
		body.cubicTo(0.5, 0.08, 0.1, 0.32, 0, 0.42)
		body.close()
	},
	"star": func(body, _ *glyphPen) {
		body.star(5, 0.5, 0.2, 0)
	},
	"sparkle": func(body, detail *glyphPen) {
		body.star(4, 0.5, 0.1, 0)
		detail.circle(0, 0, 0.06)
	},
	"flower": func(body, detail *glyphPen) {
		for i := 0; i < 5; i++ {
			a := float64(i)*2*math.Pi/5 - math.Pi/2
			body.circle(0.24*math.Cos(a), 0.24*math.Sin(a), 0.2)
		}
		detail.circle(0, 0, 0.14)
	},
	"bow": func(body, _ *glyphPen) {
		body.moveTo(0, 0)
		body.cubicTo(-0.2, -0.35, -0.5, -0.3, -0.48, 0)
		body.cubicTo(-0.5, 0.3, -0.2, 0.35, 0, 0)
		body.close()
		body.moveTo(0, 0)
		body.cubicTo(0.2, -0.35, 0.5, -0.3, 0.48, 0)
		body.cubicTo(0.5, 0.3, 0.2, 0.35, 0, 0)
		body.close()
		body.moveTo(-0.04, 0.02)
		body.lineTo(-0.22, 0.46)
		body.lineTo(-0.12, 0.42)
		body.lineTo(0, 0.1)
		body.lineTo(0.12, 0.42)
		body.lineTo(0.22, 0.46)
		body.lineTo(0.04, 0.02)
		body.close()
		body.circle(0, 0, 0.1)
	},
	"gift": func(body, detail *glyphPen) {
		body.rect(-0.4, -0.12, 0.8, 0.56)
		body.rect(-0.46, -0.3, 0.92, 0.2)
		detail.rect(-0.07, -0.3, 0.14, 0.74)
		detail.moveTo(0, -0.3)
		detail.cubicTo(-0.1, -0.5, -0.34, -0.5, -0.26, -0.36)
		detail.lineTo(0, -0.3)
		detail.close()
		detail.moveTo(0, -0.3)
		detail.cubicTo(0.1, -0.5, 0.34, -0.5, 0.26, -0.36)
		detail.lineTo(0, -0.3)
		detail.close()
	},
	"scroll": func(body, detail *glyphPen) {
		body.rect(-0.3, -0.36, 0.6, 0.72)
		body.circle(-0.3, -0.36, 0.08)
		body.circle(0.3, 0.36, 0.08)
		for i := 0; i < 3; i++ {
			v := -0.18 + float64(i)*0.16
			detail.rect(-0.18, v, 0.36, 0.04)
		}
	},
	"letter": func(body, detail *glyphPen) {
		body.rect(-0.46, -0.3, 0.92, 0.6)
		detail.moveTo(-0.46, -0.3)
		detail.lineTo(0, 0.06)
		detail.lineTo(0.46, -0.3)
		detail.lineTo(0.46, -0.24)
		detail.lineTo(0, 0.12)
		detail.lineTo(-0.46, -0.24)
		detail.close()
	},
	"bouquet": func(body, detail *glyphPen) {
		body.moveTo(-0.22, 0.02)
		body.lineTo(0.22, 0.02)
		body.lineTo(0, 0.5)
		body.close()
		body.circle(-0.2, -0.12, 0.16)
		body.circle(0.2, -0.12, 0.16)
		body.circle(0, -0.28, 0.18)
		detail.circle(-0.2, -0.12, 0.06)
		detail.circle(0.2, -0.12, 0.06)
		detail.circle(0, -0.28, 0.07)
	},
	"sun": func(body, _ *glyphPen) {
		body.circle(0, 0, 0.24)
		for i := 0; i < 8; i++ {
			a := float64(i) * math.Pi / 4
			ca, sa := math.Cos(a), math.Sin(a)
			// 垂直于射线方向的半宽
			px, py := -sa*0.05, ca*0.05
			body.moveTo(0.3*ca+px, 0.3*sa+py)
			body.lineTo(0.5*ca, 0.5*sa)
			body.lineTo(0.3*ca-px, 0.3*sa-py)
			body.close()
		}
	},
	"target": func(body, detail *glyphPen) {
		body.circle(0, 0, 0.48)
		detail.circle(0, 0, 0.34)
		body.circle(0, 0, 0.2)
	},
	"smile": func(body, detail *glyphPen) {
		body.circle(0, 0, 0.48)
		detail.circle(-0.16, -0.12, 0.06)
		detail.circle(0.16, -0.12, 0.06)
		detail.moveTo(-0.26, 0.08)
		detail.cubicTo(-0.16, 0.34, 0.16, 0.34, 0.26, 0.08)
		detail.cubicTo(0.14, 0.22, -0.14, 0.22, -0.26, 0.08)
		detail.close()
	},
	"bolt": func(body, _ *glyphPen) {
		body.moveTo(0.1, -0.5)
		body.lineTo(-0.3, 0.06)
		body.lineTo(-0.02, 0.06)
		body.lineTo(-0.12, 0.5)
		body.lineTo(0.3, -0.08)
		body.lineTo(0.02, -0.08)
		body.close()
	},
}

// GlyphNames 所有可用的图标名称
func GlyphNames() []string {
	names := make([]string, 0, len(glyphs))
	for name := range glyphs {
		names = append(names, name)
	}
	return names
}

// KnownGlyph 是否存在该图标
func KnownGlyph(name string) bool {
	_, ok := glyphs[name]
	return ok
}

// GlyphPaths 构建图标的主体与细节路径，未知名称使用 sparkle
func GlyphPaths(name string, cx, cy, size, rotationDeg float64) (body, detail *vector.Path) {
	build, ok := glyphs[name]
	if !ok {
		build = glyphs["sparkle"]
	}
	body, detail = &vector.Path{}, &vector.Path{}
	build(newGlyphPen(body, cx, cy, size, rotationDeg), newGlyphPen(detail, cx, cy, size, rotationDeg))
	return body, detail
}

// glyphDetailColors 细节颜色：目标环和笑脸五官用深色，其余用白色
var glyphDetailColors = map[string]color.RGBA{
	"target": {R: 255, G: 255, B: 255, A: 255},
	"smile":  {R: 120, G: 53, B: 15, A: 255},
	"flower": {R: 253, G: 224, B: 71, A: 255},
}

// DrawGlyph 以 (cx, cy) 为中心绘制边长约为 size 的图标
func DrawGlyph(dst *ebiten.Image, name string, cx, cy, size, rotationDeg float64, clr color.Color, alpha float64) {
	if alpha <= 0 || size <= 0 {
		return
	}
	body, detail := GlyphPaths(name, cx, cy, size, rotationDeg)
	FillPath(dst, body, clr, alpha)

	detailColor, ok := glyphDetailColors[name]
	detailAlpha := alpha
	if !ok {
		detailColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		detailAlpha = alpha * 0.7
	}
	FillPath(dst, detail, detailColor, detailAlpha)
}
