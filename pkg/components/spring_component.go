package components

import "github.com/charmbracelet/harmonica"

// SpringComponent 一维弹簧动画
// Value 每帧向 Target 逼近，由 SpringSystem 推进
type SpringComponent struct {
	Value    float64
	Velocity float64
	Target   float64

	// Spring 预计算的弹簧系数（频率与阻尼在创建时确定）
	Spring harmonica.Spring
}
