// Package particle provides data structures and parsing functionality for
// the card's particle effect configurations.
//
// Emitters are declared in data/particles.yaml. Most numeric fields are kept
// as strings so that a single field can hold a fixed value, a random range or
// a keyframe curve; they are evaluated by ParseValue when an emitter spawns.
package particle

// ParticleConfig represents the root structure of data/particles.yaml.
type ParticleConfig struct {
	Emitters []EmitterConfig `yaml:"emitters"`
}

// Shape 粒子的绘制形状
type Shape string

const (
	ShapeRect     Shape = "rect"     // 实心矩形
	ShapeCircle   Shape = "circle"   // 实心圆
	ShapeConfetti Shape = "confetti" // 彩纸：矩形 + 绕 X 轴翻转
	ShapeStar     Shape = "star"     // 四角星
)

// EmitterConfig represents a single particle emitter configuration.
//
// String fields accept:
//   - Fixed values: "1500"
//   - Ranges: "[0.7 0.9]" (random value between min and max)
//   - Keyframes: "0,0 0.5,1 1,0" (time,value pairs over the particle lifetime)
//   - Keyframes with interpolation: "0,1 1,0 EaseOut"
type EmitterConfig struct {
	// Name is the unique identifier for this emitter
	Name string `yaml:"name"`

	// Rendering (渲染)
	Shape  Shape    `yaml:"shape"`  // 绘制形状
	Colors []string `yaml:"colors"` // 颜色池，每个粒子随机取一种

	// Spawn properties (控制粒子发射)
	SpawnRate        string `yaml:"spawnRate,omitempty"`        // Particles spawned per second
	SpawnMaxActive   string `yaml:"spawnMaxActive,omitempty"`   // Maximum active particles
	SpawnMaxLaunched string `yaml:"spawnMaxLaunched,omitempty"` // Maximum total particles to launch (0 = unlimited)

	// Particle properties (粒子属性)
	ParticleDuration  string `yaml:"particleDuration,omitempty"`  // Lifetime in milliseconds
	ParticleAlpha     string `yaml:"particleAlpha,omitempty"`     // Transparency (0-1)
	ParticleScale     string `yaml:"particleScale,omitempty"`     // Size multiplier
	ParticleSpinAngle string `yaml:"particleSpinAngle,omitempty"` // Initial rotation angle
	ParticleSpinSpeed string `yaml:"particleSpinSpeed,omitempty"` // Rotation speed (degrees/sec)
	ParticleWidth     string `yaml:"particleWidth,omitempty"`     // 基础宽度（像素），圆形时为直径
	ParticleHeight    string `yaml:"particleHeight,omitempty"`    // 基础高度（像素），为空时等于宽度
	ParticleLoops     bool   `yaml:"particleLoops,omitempty"`     // 生命周期结束后重新开始而不是销毁

	// Launch properties (发射参数)
	LaunchSpeed string `yaml:"launchSpeed,omitempty"` // Initial velocity
	LaunchAngle string `yaml:"launchAngle,omitempty"` // Launch direction (degrees)

	// Emitter properties (发射区域)
	AreaRelative   bool   `yaml:"areaRelative,omitempty"`   // EmitterBoxX/Y 是否按发射区域比例计算
	EmitterBoxX    string `yaml:"emitterBoxX,omitempty"`    // Spawn area (horizontal)
	EmitterBoxY    string `yaml:"emitterBoxY,omitempty"`    // Spawn area (vertical)
	EmitterOffsetX string `yaml:"emitterOffsetX,omitempty"` // 额外的像素偏移
	EmitterOffsetY string `yaml:"emitterOffsetY,omitempty"`

	// System properties (系统级设置)
	SystemDuration string `yaml:"systemDuration,omitempty"` // Total effect duration (milliseconds, empty = infinite)

	// Fields (力场配置)
	Fields []Field `yaml:"fields,omitempty"`
}

// Field types
const (
	FieldAcceleration = "Acceleration" // 恒定加速度（像素/秒²）
	FieldFriction     = "Friction"     // 每帧速度衰减系数
	FieldWobble       = "Wobble"       // 水平摆动：X 为振幅（像素/秒），Y 为频率（弧度/秒）
)

// Field represents a force field that affects particle behavior.
type Field struct {
	Type string `yaml:"type"`
	X    string `yaml:"x,omitempty"`
	Y    string `yaml:"y,omitempty"`
}

// Find 按名称查找发射器配置
func (c *ParticleConfig) Find(name string) (*EmitterConfig, bool) {
	for i := range c.Emitters {
		if c.Emitters[i].Name == name {
			return &c.Emitters[i], true
		}
	}
	return nil, false
}
