package components

import "github.com/decker502/giftcard/pkg/ecs"

// UnwrapState 拆礼物状态机的状态
type UnwrapState int

const (
	// UnwrapWrapped 仍有包装层，Progress 为已点击次数（0~4）
	UnwrapWrapped UnwrapState = iota
	// UnwrapOpening 第五次点击后等待切换页面
	UnwrapOpening
	// UnwrapRevealed 已切换到贺卡页面，之后的点击全部忽略
	UnwrapRevealed
)

// String 返回状态名，用于日志
func (s UnwrapState) String() string {
	switch s {
	case UnwrapWrapped:
		return "wrapped"
	case UnwrapOpening:
		return "opening"
	case UnwrapRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// UnwrapComponent 拆礼物进度
// 随拆礼物页面创建，页面销毁时随实体一起删除
type UnwrapComponent struct {
	State UnwrapState

	// Progress 已点击次数，范围 [0, UnwrapSteps]
	Progress int

	// RevealEvent 第五次点击后安排的切换事件（0 表示未安排）
	RevealEvent ecs.EntityID

	// 摇晃动画（第 1~4 次点击）
	Shaking      bool
	ShakeElapsed float64

	// PromptElapsed 当前提示文字已显示的时间，切换时归零以重新淡入
	PromptElapsed float64

	// OpenedElapsed 进入 Opening 后的时间，驱动拆开礼盒的弹出动画
	OpenedElapsed float64
}

// LayerExitComponent 被拆掉的包装层飞出动画
// 动画结束后实体被销毁
type LayerExitComponent struct {
	// LayerIndex 飞出的包装层序号（4-n）
	LayerIndex int
	// Direction 旋转方向：-1 逆时针，+1 顺时针
	Direction float64
	Elapsed   float64
	Duration  float64
}
