package components

import (
	"image/color"

	"github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/ecs"
)

// ParticleComponent represents a single particle instance in the particle system.
// It stores all the runtime state for an individual particle, including its
// velocity, visual properties, and lifecycle information.
//
// Position is stored in a separate PositionComponent.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Emitter 发射此粒子的发射器实体
	Emitter ecs.EntityID

	// Velocity (速度, 像素/秒)
	VelocityX float64
	VelocityY float64

	// Rotation (旋转, 角度)
	Rotation      float64
	RotationSpeed float64

	// Flip 彩纸绕自身 X 轴翻转的相位（弧度），绘制时高度乘以 |cos(Flip)|
	Flip      float64
	FlipSpeed float64

	// Scale / Alpha 当前值（每帧由关键帧或基础值计算）
	Scale float64
	Alpha float64

	// BaseScale / BaseAlpha 无关键帧时的固定值
	BaseScale float64
	BaseAlpha float64

	// Rendering properties
	Shape  particle.Shape
	Color  color.RGBA
	Width  float64 // 基础宽度（像素）
	Height float64 // 基础高度（像素）

	// Lifecycle (生命周期, 秒)
	Age           float64
	Lifetime      float64
	ParticleLoops bool // If true, particle resets Age when reaching Lifetime instead of being destroyed

	// InitialX / InitialY 生成位置，循环粒子每轮回到这里
	InitialX float64
	InitialY float64

	// Animation keyframes (动画关键帧)
	AlphaKeyframes     []particle.Keyframe
	ScaleKeyframes     []particle.Keyframe
	AlphaInterpolation string
	ScaleInterpolation string

	// Force fields (力场效果), sampled once at spawn time
	AccelerationX float64 // 像素/秒²
	AccelerationY float64
	Friction      float64 // 每帧速度衰减系数（按 60 TPS 归一化）
	WobbleAmp     float64 // 水平摆动速度振幅（像素/秒）
	WobbleFreq    float64 // 摆动频率（弧度/秒）
	WobblePhase   float64
}
