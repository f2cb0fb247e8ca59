package utils

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 矢量绘制辅助函数
// 贺卡没有图片资源，所有图形都由路径和顶点颜色绘制。
// 顶点颜色使用非预乘透明度（DrawTriangles 的默认模式）。

var whiteImage *ebiten.Image

// WhitePixel 返回一个 1x1 的白色子图，作为纯色三角形的纹理
// 取 3x3 图片的中心像素，避免边缘采样到透明像素
func WhitePixel() *ebiten.Image {
	if whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteImage
}

// VertexColor 将颜色转换为顶点颜色分量（非预乘），并乘以额外透明度
func VertexColor(c color.Color, alpha float64) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(float64(n.A) / 255 * Clamp01(alpha))
}

// GradientAt 在多段渐变上取 t 处的颜色
func GradientAt(stops []color.RGBA, t float64) color.RGBA {
	switch len(stops) {
	case 0:
		return color.RGBA{A: 255}
	case 1:
		return stops[0]
	}
	t = Clamp01(t)
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	return color.RGBA{
		R: uint8(Lerp(float64(a.R), float64(b.R), f) + 0.5),
		G: uint8(Lerp(float64(a.G), float64(b.G), f) + 0.5),
		B: uint8(Lerp(float64(a.B), float64(b.B), f) + 0.5),
		A: uint8(Lerp(float64(a.A), float64(b.A), f) + 0.5),
	}
}

// GradientDirection 线性渐变方向
type GradientDirection int

const (
	GradientToRight       GradientDirection = iota // bg-gradient-to-r
	GradientToBottom                               // bg-gradient-to-b
	GradientToBottomRight                          // bg-gradient-to-br
)

// gradientT 点 (px, py) 在矩形 (x, y, w, h) 内沿渐变方向的进度
func gradientT(dir GradientDirection, x, y, w, h, px, py float64) float64 {
	switch dir {
	case GradientToRight:
		if w == 0 {
			return 0
		}
		return (px - x) / w
	case GradientToBottom:
		if h == 0 {
			return 0
		}
		return (py - y) / h
	default:
		// 沿对角线投影
		dx, dy := px-x, py-y
		d := w*w + h*h
		if d == 0 {
			return 0
		}
		return (dx*w + dy*h) / d
	}
}

// FillPath 用纯色填充路径
func FillPath(dst *ebiten.Image, path *vector.Path, clr color.Color, alpha float64) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := VertexColor(clr, alpha)
	drawVertices(dst, vs, is, func(v *ebiten.Vertex) {
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	})
}

// FillPathGradient 用线性渐变填充路径，(x, y, w, h) 为渐变覆盖的矩形
// 颜色按顶点计算，三色以上的渐变在大三角形内部是近似的
func FillPathGradient(dst *ebiten.Image, path *vector.Path, x, y, w, h float64, dir GradientDirection, stops []color.RGBA, alpha float64) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	drawVertices(dst, vs, is, func(v *ebiten.Vertex) {
		t := gradientT(dir, x, y, w, h, float64(v.DstX), float64(v.DstY))
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = VertexColor(GradientAt(stops, t), alpha)
	})
}

// StrokePath 描边路径
func StrokePath(dst *ebiten.Image, path *vector.Path, width float64, clr color.Color, alpha float64) {
	op := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
	r, g, b, a := VertexColor(clr, alpha)
	drawVertices(dst, vs, is, func(v *ebiten.Vertex) {
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	})
}

// drawVertices 设置纹理坐标与颜色后绘制
func drawVertices(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, paint func(v *ebiten.Vertex)) {
	if len(is) == 0 {
		return
	}
	src := WhitePixel()
	sx := float32(src.Bounds().Min.X)
	sy := float32(src.Bounds().Min.Y)
	for i := range vs {
		vs[i].SrcX = sx + 0.5
		vs[i].SrcY = sy + 0.5
		paint(&vs[i])
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	}
	dst.DrawTriangles(vs, is, src, op)
}

// RoundedRectPath 圆角矩形路径
func RoundedRectPath(x, y, w, h, radius float64) *vector.Path {
	r := math.Max(0, math.Min(radius, math.Min(w, h)/2))
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)
	rr := float32(r)

	var path vector.Path
	path.MoveTo(x0+rr, y0)
	path.LineTo(x1-rr, y0)
	path.ArcTo(x1, y0, x1, y0+rr, rr)
	path.LineTo(x1, y1-rr)
	path.ArcTo(x1, y1, x1-rr, y1, rr)
	path.LineTo(x0+rr, y1)
	path.ArcTo(x0, y1, x0, y1-rr, rr)
	path.LineTo(x0, y0+rr)
	path.ArcTo(x0, y0, x0+rr, y0, rr)
	path.Close()
	return &path
}

// DrawRoundedRect 纯色圆角矩形
func DrawRoundedRect(dst *ebiten.Image, x, y, w, h, radius float64, clr color.Color, alpha float64) {
	FillPath(dst, RoundedRectPath(x, y, w, h, radius), clr, alpha)
}

// DrawRoundedRectGradient 渐变圆角矩形
func DrawRoundedRectGradient(dst *ebiten.Image, x, y, w, h, radius float64, dir GradientDirection, stops []color.RGBA, alpha float64) {
	FillPathGradient(dst, RoundedRectPath(x, y, w, h, radius), x, y, w, h, dir, stops, alpha)
}

// StrokeRoundedRect 圆角矩形边框
func StrokeRoundedRect(dst *ebiten.Image, x, y, w, h, radius, width float64, clr color.Color, alpha float64) {
	StrokePath(dst, RoundedRectPath(x, y, w, h, radius), width, clr, alpha)
}

// DrawGradientRect 精确的多段线性渐变矩形（每段一个四边形）
// 只支持水平和竖直方向
func DrawGradientRect(dst *ebiten.Image, x, y, w, h float64, dir GradientDirection, stops []color.RGBA, alpha float64) {
	if len(stops) == 0 || w <= 0 || h <= 0 {
		return
	}
	if len(stops) == 1 {
		stops = []color.RGBA{stops[0], stops[0]}
	}

	segments := len(stops) - 1
	vs := make([]ebiten.Vertex, 0, (segments+1)*2)
	is := make([]uint16, 0, segments*6)

	for i, c := range stops {
		f := float64(i) / float64(segments)
		var ax, ay, bx, by float64
		if dir == GradientToRight {
			ax, ay = x+w*f, y
			bx, by = x+w*f, y+h
		} else {
			ax, ay = x, y+h*f
			bx, by = x+w, y+h*f
		}
		r, g, b, a := VertexColor(c, alpha)
		vs = append(vs,
			ebiten.Vertex{DstX: float32(ax), DstY: float32(ay), ColorR: r, ColorG: g, ColorB: b, ColorA: a},
			ebiten.Vertex{DstX: float32(bx), DstY: float32(by), ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		)
		if i > 0 {
			base := uint16((i - 1) * 2)
			is = append(is, base, base+1, base+2, base+1, base+3, base+2)
		}
	}
	drawVertices(dst, vs, is, func(*ebiten.Vertex) {})
}
