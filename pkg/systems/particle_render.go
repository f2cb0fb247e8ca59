package systems

import (
	"image/color"
	"math"

	particlePkg "github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/ecs"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// shapeTextureSize 圆形、星形粒子纹理的边长（像素）
const shapeTextureSize = 32

// maxBatchParticles 单次 DrawTriangles 的粒子上限（uint16 索引）
const maxBatchParticles = 65535 / 4

// Draw 绘制全部粒子
// 同一形状共用一张纹理，按形状分批调用 DrawTriangles
// opacity 为整体透明度（滚动淡出时小于 1）
func (ps *ParticleSystem) Draw(screen *ebiten.Image, opacity float64) {
	ps.DrawOffset(screen, opacity, 0, 0)
}

// DrawOffset 绘制全部粒子，整体平移 (dx, dy)
// 粒子位于可滚动内容中时使用
func (ps *ParticleSystem) DrawOffset(screen *ebiten.Image, opacity, dx, dy float64) {
	entities := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.EntityManager)
	if len(entities) == 0 || opacity <= 0 {
		return
	}

	batches := make(map[particlePkg.Shape][]ecs.EntityID)
	order := make([]particlePkg.Shape, 0, 4)
	for _, id := range entities {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		if _, seen := batches[p.Shape]; !seen {
			order = append(order, p.Shape)
		}
		batches[p.Shape] = append(batches[p.Shape], id)
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	for _, shape := range order {
		img := ps.shapeImage(shape)

		ps.particleVertices = ps.particleVertices[:0]
		ps.particleIndices = ps.particleIndices[:0]
		for _, id := range batches[shape] {
			p, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
			pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)

			base := uint16(len(ps.particleVertices))
			ps.particleVertices = appendParticleQuad(ps.particleVertices, p, pos.X+dx, pos.Y+dy, img, opacity)
			ps.particleIndices = append(ps.particleIndices,
				base+0, base+1, base+2,
				base+1, base+3, base+2,
			)

			if len(ps.particleVertices)/4 >= maxBatchParticles {
				screen.DrawTriangles(ps.particleVertices, ps.particleIndices, img, op)
				ps.particleVertices = ps.particleVertices[:0]
				ps.particleIndices = ps.particleIndices[:0]
			}
		}
		if len(ps.particleVertices) > 0 {
			screen.DrawTriangles(ps.particleVertices, ps.particleIndices, img, op)
		}
	}
}

// appendParticleQuad 生成粒子的 4 个顶点（左上、右上、左下、右下）
func appendParticleQuad(vs []ebiten.Vertex, p *components.ParticleComponent, x, y float64, img *ebiten.Image, opacity float64) []ebiten.Vertex {
	hw := p.Width * p.Scale / 2
	hh := p.Height * p.Scale / 2
	if p.Shape == particlePkg.ShapeConfetti {
		// 翻转时最小保留一条细线
		hh *= math.Max(math.Abs(math.Cos(p.Flip)), 0.08)
	}

	rad := p.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)

	b := img.Bounds()
	sx0, sy0 := float32(b.Min.X), float32(b.Min.Y)
	sx1, sy1 := float32(b.Max.X), float32(b.Max.Y)

	r, g, bl, a := utils.VertexColor(p.Color, p.Alpha*opacity)

	corners := [4][4]float32{
		{-1, -1, sx0, sy0},
		{1, -1, sx1, sy0},
		{-1, 1, sx0, sy1},
		{1, 1, sx1, sy1},
	}
	for _, c := range corners {
		lx := float64(c[0]) * hw
		ly := float64(c[1]) * hh
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(x + lx*cos - ly*sin),
			DstY:   float32(y + lx*sin + ly*cos),
			SrcX:   c[2],
			SrcY:   c[3],
			ColorR: r,
			ColorG: g,
			ColorB: bl,
			ColorA: a,
		})
	}
	return vs
}

// shapeImage 返回形状对应的白色纹理（惰性创建）
func (ps *ParticleSystem) shapeImage(shape particlePkg.Shape) *ebiten.Image {
	switch shape {
	case particlePkg.ShapeCircle, particlePkg.ShapeStar:
	default:
		return utils.WhitePixel()
	}

	if ps.shapeImages == nil {
		ps.shapeImages = make(map[particlePkg.Shape]*ebiten.Image)
	}
	if img, ok := ps.shapeImages[shape]; ok {
		return img
	}

	img := ebiten.NewImage(shapeTextureSize, shapeTextureSize)
	half := float32(shapeTextureSize) / 2
	if shape == particlePkg.ShapeCircle {
		vector.DrawFilledCircle(img, half, half, half-1, color.White, true)
	} else {
		utils.DrawGlyph(img, "sparkle", float64(half), float64(half), shapeTextureSize, 0, color.White, 1)
	}
	ps.shapeImages[shape] = img
	return img
}
