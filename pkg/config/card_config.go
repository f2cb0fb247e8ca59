package config

// 贺卡的时间与尺寸常量
// 时间单位统一为秒，尺寸单位为逻辑像素（与窗口外部尺寸一致）

// Window (窗口)
const (
	// GameWindowWidth 桌面端默认窗口宽度
	GameWindowWidth = 1024
	// GameWindowHeight 桌面端默认窗口高度
	GameWindowHeight = 768

	// MinWindowWidth / MinWindowHeight 逻辑屏幕的最小尺寸
	// 窗口再小时由 Ebitengine 缩放，布局不再继续压缩
	MinWindowWidth  = 320
	MinWindowHeight = 480

	// FixedDeltaTime 每个 tick 的固定时长（Ebitengine 默认 60 TPS）
	FixedDeltaTime = 1.0 / 60.0
)

// Unwrap (拆礼物)
const (
	// UnwrapSteps 拆开礼物需要的点击次数，也是包装层数
	UnwrapSteps = 5

	// RevealDelay 第五次点击后切换到贺卡页面的延迟
	RevealDelay = 0.6

	// CelebrationDuration 彩纸庆祝效果的持续时间（从第五次点击开始计算）
	CelebrationDuration = 5.0

	// LayerExitDuration 被拆掉的包装层飞出动画时长
	LayerExitDuration = 0.6
	// LayerExitScale / LayerExitRotation / LayerExitRise 飞出动画终点
	LayerExitScale    = 1.3
	LayerExitRotation = 15.0 // 度，方向由点击次数奇偶决定
	LayerExitRise     = 50.0

	// BoxShakeDuration 第 1~4 次点击后的摇晃时长
	BoxShakeDuration = 0.5

	// PromptFadeDuration 提示文字切换时的淡入时长
	PromptFadeDuration = 0.3
	// PromptSlideDistance 提示文字淡入时的上移距离
	PromptSlideDistance = 20.0

	// BoxHoverScale / BoxPressScale 悬停与按下时礼物盒的目标缩放
	BoxHoverScale = 1.05
	BoxPressScale = 0.95

	// BoxSpringFrequency / BoxSpringDamping 悬停、按下缩放的弹簧参数
	BoxSpringFrequency = 14.0
	BoxSpringDamping   = 0.7

	// OpenedSpringFrequency / OpenedSpringDamping 打开后礼物弹出（bounce 0.4）
	OpenedSpringFrequency = 9.0
	OpenedSpringDamping   = 0.6
)

// Viewport (视口)
const (
	// CompactViewportWidth 小于此宽度视为紧凑视口（手机）
	CompactViewportWidth = 768

	// SmallBreakpoint 对应 sm 断点，用于礼物盒和字号的三档缩放
	SmallBreakpoint = 640
)

// Message screen (贺卡页面)
const (
	// TabCount 标签页数量
	TabCount = 3
	// WishCount 祝福卡片数量
	WishCount = 6
	// WishTabIndex 祝福卡片所在的标签页
	WishTabIndex = 2

	// NoPoem 表示没有展开的诗
	NoPoem = -1

	// ContentMaxWidth 主卡片最大宽度（max-w-5xl）
	ContentMaxWidth = 1024.0

	// TabSlideDuration 切换标签页时内容滑入时长（紧凑 / 常规）
	TabSlideDurationCompact = 0.3
	TabSlideDuration        = 0.5
	// TabSlideDistance 内容滑入距离（紧凑 / 常规）
	TabSlideDistanceCompact = 20.0
	TabSlideDistance        = 50.0

	// PoemExpandDuration 诗卡片展开/收起时长
	PoemExpandDuration = 0.3

	// ScrollFadeEnd 滚动进度到达此值时透明度降到 ScrollMinOpacity
	ScrollFadeEnd    = 0.2
	ScrollMinOpacity = 0.8
	// ScrollShrinkEnd 滚动进度到达此值时缩放降到 ScrollMinScale
	ScrollShrinkEnd = 0.5
	ScrollMinScale  = 0.95
	// ScrollWheelStep 鼠标滚轮每格滚动的像素
	ScrollWheelStep = 48.0

	// MessageFadeInDuration 贺卡页面出现时的淡入时长
	MessageFadeInDuration = 0.5
	// HeroDustDelay 页面出现后标题浮尘开始飘动的延迟
	HeroDustDelay = 0.3
)

// Backdrop (背景)
const (
	// StarCountRegular / StarCountCompact 星空粒子数量
	StarCountRegular = 5000
	StarCountCompact = 2000
	// StarRadius / StarDepth 星空球壳半径与厚度
	StarRadius = 100.0
	StarDepth  = 50.0

	// HeartCountRegular / HeartCountCompact 漂浮爱心数量
	HeartCountRegular = 12
	HeartCountCompact = 6

	// FloatingGlyphCount 常规视口下漂浮装饰的数量（紧凑视口不显示）
	FloatingGlyphCount = 8

	// SphereScale 中央球体占视口短边的比例
	SphereScale = 0.32
)

// Celebration (庆祝)
const (
	// ConfettiEmitterName 彩纸发射器名称（data/particles.yaml）
	ConfettiEmitterName = "Confetti"
	// HeroDustEmitterName 标题区域浮尘
	HeroDustEmitterName = "HeroDust"
	// SparkleEmitterName 点击礼物时的闪光
	SparkleEmitterName = "SparkleBurst"
)

// Resource paths (资源路径)
const (
	CardContentPath    = "data/card.yaml"
	ParticleConfigPath = "data/particles.yaml"
)

// GiftBoxSize 根据视口宽度返回礼物盒边长（w-64 / sm:w-80 / md:w-96）
func GiftBoxSize(viewportWidth int) float64 {
	switch {
	case viewportWidth >= CompactViewportWidth:
		return 384
	case viewportWidth >= SmallBreakpoint:
		return 320
	default:
		return 256
	}
}

// ResponsiveSize 按三档断点选择尺寸
func ResponsiveSize(viewportWidth int, base, sm, md float64) float64 {
	switch {
	case viewportWidth >= CompactViewportWidth:
		return md
	case viewportWidth >= SmallBreakpoint:
		return sm
	default:
		return base
	}
}
