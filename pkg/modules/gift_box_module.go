package modules

import (
	"image/color"
	"math"

	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// shakeRotation / shakeScale 摇晃动画的关键值（均匀分布在 BoxShakeDuration 内）
var (
	shakeRotation = []float64{0, -3, 3, -3, 3, 0}
	shakeScale    = []float64{1, 1.05, 1}
)

// boxPadding 画布四周留给蝴蝶结和阴影的空间（相对礼物盒边长）
const boxPadding = 0.2

// Pose 礼物盒或包装层的绘制姿态
type Pose struct {
	Scale    float64
	Rotation float64 // 度
	OffsetY  float64
	Alpha    float64
}

// IdentityPose 不做任何变换
var IdentityPose = Pose{Scale: 1, Alpha: 1}

// ShakePose 第 1~4 次点击后的摇晃姿态
func ShakePose(elapsed float64) Pose {
	t := utils.Progress(elapsed, config.BoxShakeDuration)
	return Pose{
		Scale:    utils.SampleSequence(shakeScale, t),
		Rotation: utils.SampleSequence(shakeRotation, t),
		Alpha:    1,
	}
}

// LayerExitPose 被拆掉的包装层：放大、旋转、上移并淡出
func LayerExitPose(exit *components.LayerExitComponent) Pose {
	t := utils.EaseOutCubic(utils.Progress(exit.Elapsed, exit.Duration))
	return Pose{
		Scale:    utils.Lerp(1, config.LayerExitScale, t),
		Rotation: exit.Direction * config.LayerExitRotation * t,
		OffsetY:  -config.LayerExitRise * t,
		Alpha:    1 - t,
	}
}

// GiftBoxModule 绘制礼物盒的包装层与拆开后的礼盒
//
// 每一层由渐变底色、4x4 底纹、十字丝带和摆动的蝴蝶结组成，
// 先画到离屏画布上，再整体缩放、旋转、淡出绘制到屏幕。
type GiftBoxModule struct {
	layers []giftLayerStyle
	opened []color.RGBA

	size    float64
	elapsed float64

	canvas *ebiten.Image
}

// giftLayerStyle 解析后的包装层配色
type giftLayerStyle struct {
	gradient []color.RGBA
	ribbon   []color.RGBA
	pattern  string
}

// NewGiftBoxModule 根据贺卡内容创建礼物盒模块
func NewGiftBoxModule(content *config.UnwrapContent, viewportWidth int) *GiftBoxModule {
	m := &GiftBoxModule{
		opened: config.Colors(content.Opened.Gradient),
	}
	for _, layer := range content.Layers {
		m.layers = append(m.layers, giftLayerStyle{
			gradient: config.Colors(layer.Gradient),
			ribbon:   config.Colors(layer.Ribbon),
			pattern:  layer.Pattern,
		})
	}
	m.Resize(viewportWidth)
	return m
}

// Resize 按视口宽度调整礼物盒尺寸
func (m *GiftBoxModule) Resize(viewportWidth int) {
	size := config.GiftBoxSize(viewportWidth)
	if size == m.size {
		return
	}
	m.size = size
	if m.canvas != nil {
		m.canvas.Deallocate()
		m.canvas = nil
	}
}

// Size 礼物盒边长
func (m *GiftBoxModule) Size() float64 {
	return m.size
}

// LayerCount 包装层数
func (m *GiftBoxModule) LayerCount() int {
	return len(m.layers)
}

// Contains 点 (x, y) 是否落在以 (cx, cy) 为中心、按 scale 缩放的礼物盒上
func (m *GiftBoxModule) Contains(cx, cy, scale, x, y float64) bool {
	half := m.size * scale / 2
	return x >= cx-half && x <= cx+half && y >= cy-half && y <= cy+half
}

// Update 推进蝴蝶结摆动
func (m *GiftBoxModule) Update(dt float64) {
	m.elapsed += dt
}

// DrawLayer 以 (cx, cy) 为中心绘制第 layer 层包装
func (m *GiftBoxModule) DrawLayer(screen *ebiten.Image, layer int, cx, cy float64, pose Pose) {
	if layer < 0 || layer >= len(m.layers) || pose.Alpha <= 0 {
		return
	}
	canvas := m.prepareCanvas()
	m.paintLayer(canvas, m.layers[layer])
	m.blit(screen, canvas, cx, cy, pose)
}

// DrawOpened 绘制拆开后的礼盒，pulse 为礼物图标的脉冲缩放
func (m *GiftBoxModule) DrawOpened(screen *ebiten.Image, cx, cy float64, pose Pose, pulse float64) {
	if pose.Alpha <= 0 {
		return
	}
	canvas := m.prepareCanvas()
	pad := m.size * boxPadding
	m.paintShadow(canvas, pad)
	utils.DrawRoundedRectGradient(canvas, pad, pad, m.size, m.size, m.size*0.08, utils.GradientToBottomRight, m.opened, 1)
	center := pad + m.size/2
	utils.DrawGlyph(canvas, "gift", center, center, m.size*0.45*pulse, 0, color.White, 0.95)
	m.blit(screen, canvas, cx, cy, pose)
}

// prepareCanvas 返回清空后的离屏画布
func (m *GiftBoxModule) prepareCanvas() *ebiten.Image {
	side := int(math.Ceil(m.size * (1 + 2*boxPadding)))
	if m.canvas == nil {
		m.canvas = ebiten.NewImage(side, side)
	} else {
		m.canvas.Clear()
	}
	return m.canvas
}

// paintLayer 绘制一层包装
func (m *GiftBoxModule) paintLayer(canvas *ebiten.Image, style giftLayerStyle) {
	pad := m.size * boxPadding
	size := m.size
	radius := size * 0.08

	m.paintShadow(canvas, pad)
	utils.DrawRoundedRectGradient(canvas, pad, pad, size, size, radius, utils.GradientToBottomRight, style.gradient, 1)

	// 4x4 底纹
	cell := size / 4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			x := pad + cell*(float64(col)+0.5)
			y := pad + cell*(float64(row)+0.5)
			utils.DrawGlyph(canvas, style.pattern, x, y, cell*0.45, 0, color.White, 0.2)
		}
	}

	// 十字丝带
	ribbon := size * 0.12
	utils.DrawGradientRect(canvas, pad+(size-ribbon)/2, pad, ribbon, size, utils.GradientToBottom, style.ribbon, 1)
	utils.DrawGradientRect(canvas, pad, pad+(size-ribbon)/2, size, ribbon, utils.GradientToRight, style.ribbon, 1)

	// 蝴蝶结：[0, -10, 10, 0] 度，2 秒一个周期
	wobble := 10 * math.Sin(2*math.Pi*m.elapsed/2)
	bowColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if len(style.ribbon) > 0 {
		bowColor = style.ribbon[0]
	}
	utils.DrawGlyph(canvas, "bow", pad+size/2, pad, size*0.38, wobble, bowColor, 1)
}

// paintShadow 礼物盒下方的柔和阴影
func (m *GiftBoxModule) paintShadow(canvas *ebiten.Image, pad float64) {
	shadow := color.NRGBA{R: 76, G: 29, B: 149, A: 255}
	for i := 3; i >= 1; i-- {
		grow := float64(i) * m.size * 0.02
		utils.DrawRoundedRect(canvas, pad-grow, pad-grow+m.size*0.04, m.size+2*grow, m.size+2*grow, m.size*0.08+grow, shadow, 0.06)
	}
}

// blit 将画布按姿态绘制到屏幕
func (m *GiftBoxModule) blit(screen, canvas *ebiten.Image, cx, cy float64, pose Pose) {
	half := float64(canvas.Bounds().Dx()) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Scale(pose.Scale, pose.Scale)
	op.GeoM.Rotate(pose.Rotation * math.Pi / 180)
	op.GeoM.Translate(cx, cy+pose.OffsetY)
	op.ColorScale.ScaleAlpha(float32(utils.Clamp01(pose.Alpha)))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(canvas, op)
}

// Dispose 释放离屏画布
func (m *GiftBoxModule) Dispose() {
	if m.canvas != nil {
		m.canvas.Deallocate()
		m.canvas = nil
	}
}
