package particle

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Keyframe 动画曲线上的一个点，用于透明度、缩放等随寿命变化的属性
type Keyframe struct {
	Time  float64 // 归一化时间 0~1
	Value float64
}

// interpolationKeywords 支持的插值关键字
var interpolationKeywords = []string{"Linear", "EaseIn", "EaseOut", "FastInOutWeak"}

// ParseValue 解析粒子配置中的数值字符串
//
// 支持的写法：
//   - 固定值 "1500"：min = max = 1500
//   - 范围 "[0.7 0.9]"，单值范围 "[5]"
//   - 关键帧 "0,0 0.5,1 1,0"：按时间排序后返回
//   - 关键帧加插值方式 "0,1 1,0 EaseOut"
//
// 无法解析的输入返回零值。
func ParseValue(s string) (min, max float64, keyframes []Keyframe, interpolation string) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return 0, 0, nil, ""
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		min, max = parseRange(s[1 : len(s)-1])
		return min, max, nil, ""
	}

	body, interpolation := splitInterpolation(s)
	if strings.Contains(body, ",") {
		keyframes = parseKeyframes(body)
		if len(keyframes) == 0 {
			return 0, 0, nil, ""
		}
		return 0, 0, keyframes, interpolation
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, nil, ""
	}
	return v, v, nil, ""
}

// parseRange 解析方括号内的一个或两个数，顺序颠倒时自动交换
func parseRange(inner string) (lo, hi float64) {
	fields := strings.Fields(inner)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0
		}
		vals[i] = v
	}
	lo, hi = vals[0], vals[len(vals)-1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// splitInterpolation 拆出末尾的插值关键字
func splitInterpolation(s string) (body, interpolation string) {
	for _, keyword := range interpolationKeywords {
		if rest, ok := strings.CutSuffix(s, keyword); ok {
			return strings.TrimSpace(rest), keyword
		}
	}
	return s, ""
}

// parseKeyframes 解析 "time,value" 对，跳过格式错误的项
func parseKeyframes(s string) []Keyframe {
	var out []Keyframe
	for _, part := range strings.Fields(s) {
		ts, vs, ok := strings.Cut(part, ",")
		if !ok || strings.Contains(vs, ",") {
			continue
		}
		t, err1 := strconv.ParseFloat(ts, 64)
		v, err2 := strconv.ParseFloat(vs, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Keyframe{Time: t, Value: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Sample 解析配置值并返回一次随机采样
// 关键帧格式返回 t=0 处的值
func Sample(s string) float64 {
	min, max, keyframes, interp := ParseValue(s)
	if keyframes != nil {
		return EvaluateKeyframes(keyframes, 0, interp)
	}
	return RandomInRange(min, max)
}

// SampleOr 与 Sample 相同，但空字符串返回默认值
func SampleOr(s string, fallback float64) float64 {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return Sample(s)
}

// EvaluateKeyframes 在已排序的关键帧上取 t（0~1）处的值
// t 早于第一帧取第一帧的值，晚于最后一帧取最后一帧的值。
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	// Clamp t to [0, 1]
	t = math.Max(0, math.Min(1, t))

	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	// Find the keyframe interval containing t
	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := (t - k0.Time) / duration

			switch interpolation {
			case "EaseIn":
				ratio = ratio * ratio // Quadratic ease-in
			case "EaseOut":
				ratio = 1 - (1-ratio)*(1-ratio) // Quadratic ease-out
			case "FastInOutWeak":
				ratio = ratio * ratio * (3 - 2*ratio)
			}
			return k0.Value + ratio*(k1.Value-k0.Value)
		}
	}

	// If t is beyond the last keyframe, return the last value
	return keyframes[len(keyframes)-1].Value
}

// RandomInRange returns a random float64 in the range [min, max].
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}
