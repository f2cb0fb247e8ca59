package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInOutSine 正弦缓入缓出，用于来回往复的装饰动画
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutBack 回弹缓出，会短暂超过 1
// 公式：f(t) = 1 + c3(t-1)³ + c1(t-1)²
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Progress 返回 elapsed / duration，限制在 [0, 1]
// duration <= 0 时视为已完成
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01(elapsed / duration)
}

// SampleSequence 在均匀分布的关键值之间线性插值
// 例如摇晃角度 [0, -3, 3, -3, 3, 0]，t 为整个序列的进度
func SampleSequence(values []float64, t float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	t = Clamp01(t)
	pos := t * float64(len(values)-1)
	i := int(pos)
	if i >= len(values)-1 {
		return values[len(values)-1]
	}
	return Lerp(values[i], values[i+1], pos-float64(i))
}

// Pulse 周期为 period 秒的 0→1→0 正弦脉冲
// 用于 [1, 1.1, 1] 这类无限循环的缩放动画
func Pulse(elapsed, period float64) float64 {
	if period <= 0 {
		return 0
	}
	phase := math.Mod(elapsed, period) / period
	return (1 - math.Cos(2*math.Pi*phase)) / 2
}
