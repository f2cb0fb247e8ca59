package components

// PositionComponent 实体在逻辑屏幕上的位置（像素）
type PositionComponent struct {
	X float64
	Y float64
}
