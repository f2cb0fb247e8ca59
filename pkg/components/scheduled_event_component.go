package components

// ScheduledEventComponent 延迟执行的一次性事件
// 事件实体的 ID 即事件 ID，取消事件就是销毁实体
type ScheduledEventComponent struct {
	Name      string  // 事件名称，仅用于日志
	Remaining float64 // 剩余时间（秒）
	Callback  func()
}
