package components

import "github.com/decker502/giftcard/pkg/ecs"

// CelebrationComponent 彩纸庆祝效果
// 一次性：Triggered 置位后不会再次开始
type CelebrationComponent struct {
	Triggered bool
	Active    bool
	Elapsed   float64
	Duration  float64

	// Emitter 彩纸发射器实体（0 表示未创建）
	Emitter ecs.EntityID
}
