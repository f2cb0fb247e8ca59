package particle

import (
	"math"
	"testing"
)

// TestParseValue_FixedValue tests parsing of fixed value format
func TestParseValue_FixedValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Integer", "1500", 1500, 1500},
		{"Float", "3.14", 3.14, 3.14},
		{"Negative", "-10.5", -10.5, -10.5},
		{"Zero", "0", 0, 0},
		{"Empty", "", 0, 0},
		{"Garbage", "abc", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, keyframes, interp := ParseValue(tt.input)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseValue(%q) = (%v, %v), want (%v, %v)", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
			if keyframes != nil {
				t.Errorf("ParseValue(%q) keyframes = %v, want nil", tt.input, keyframes)
			}
			if interp != "" {
				t.Errorf("ParseValue(%q) interpolation = %q, want empty", tt.input, interp)
			}
		})
	}
}

// TestParseValue_Range tests parsing of range format
func TestParseValue_Range(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Float range", "[0.7 0.9]", 0.7, 0.9},
		{"Integer range", "[10 20]", 10, 20},
		{"Negative range", "[-5 -2]", -5, -2},
		{"Reversed range", "[20 10]", 10, 20},
		{"Single value", "[5]", 5, 5},
		{"Broken range", "[a b]", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, keyframes, _ := ParseValue(tt.input)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseValue(%q) = (%v, %v), want (%v, %v)", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
			if keyframes != nil {
				t.Errorf("ParseValue(%q) should not produce keyframes", tt.input)
			}
		})
	}
}

// TestParseValue_Keyframes tests parsing of keyframe format
func TestParseValue_Keyframes(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantCount  int
		wantFirst  Keyframe
		wantLast   Keyframe
		wantInterp string
	}{
		{"Fade in out", "0,0 0.5,1 1,0", 3, Keyframe{0, 0}, Keyframe{1, 0}, ""},
		{"With interpolation", "0,1 0.6,1 1,0 EaseOut", 3, Keyframe{0, 1}, Keyframe{1, 0}, "EaseOut"},
		{"Unsorted input", "1,5 0,2", 2, Keyframe{0, 2}, Keyframe{1, 5}, ""},
		{"Skips broken pairs", "0,1 x,y 1,2", 2, Keyframe{0, 1}, Keyframe{1, 2}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, keyframes, interp := ParseValue(tt.input)
			if len(keyframes) != tt.wantCount {
				t.Fatalf("ParseValue(%q) got %d keyframes, want %d", tt.input, len(keyframes), tt.wantCount)
			}
			if keyframes[0] != tt.wantFirst {
				t.Errorf("first keyframe = %+v, want %+v", keyframes[0], tt.wantFirst)
			}
			if keyframes[len(keyframes)-1] != tt.wantLast {
				t.Errorf("last keyframe = %+v, want %+v", keyframes[len(keyframes)-1], tt.wantLast)
			}
			if interp != tt.wantInterp {
				t.Errorf("interpolation = %q, want %q", interp, tt.wantInterp)
			}
		})
	}
}

// TestEvaluateKeyframes 测试关键帧插值
func TestEvaluateKeyframes(t *testing.T) {
	kf := []Keyframe{{Time: 0, Value: 0}, {Time: 0.5, Value: 1}, {Time: 1, Value: 0}}

	tests := []struct {
		name   string
		t      float64
		interp string
		want   float64
	}{
		{"起点", 0, "", 0},
		{"线性四分之一", 0.25, "Linear", 0.5},
		{"峰值", 0.5, "", 1},
		{"终点", 1, "", 0},
		{"超出范围被截断", 2, "", 0},
		{"EaseIn 前半段", 0.25, "EaseIn", 0.25},
		{"EaseOut 前半段", 0.25, "EaseOut", 0.75},
		{"FastInOutWeak 中点", 0.25, "FastInOutWeak", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateKeyframes(kf, tt.t, tt.interp)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EvaluateKeyframes(t=%v, %q) = %v, want %v", tt.t, tt.interp, got, tt.want)
			}
		})
	}

	if got := EvaluateKeyframes(nil, 0.5, ""); got != 0 {
		t.Errorf("empty keyframes should evaluate to 0, got %v", got)
	}
	if got := EvaluateKeyframes([]Keyframe{{Time: 0, Value: 7}}, 0.5, ""); got != 7 {
		t.Errorf("single keyframe should be constant, got %v", got)
	}
}

// TestSample 测试随机采样落在范围内
func TestSample(t *testing.T) {
	for i := 0; i < 200; i++ {
		v := Sample("[2 4]")
		if v < 2 || v > 4 {
			t.Fatalf("Sample([2 4]) = %v, out of range", v)
		}
	}

	if v := Sample("0,3 1,0"); v != 3 {
		t.Errorf("Sample of keyframes should return t=0 value, got %v", v)
	}
	if v := SampleOr("", 9); v != 9 {
		t.Errorf("SampleOr empty = %v, want fallback 9", v)
	}
	if v := SampleOr("1.5", 9); v != 1.5 {
		t.Errorf("SampleOr fixed = %v, want 1.5", v)
	}
}

// TestRandomInRange 测试退化范围
func TestRandomInRange(t *testing.T) {
	if v := RandomInRange(5, 5); v != 5 {
		t.Errorf("RandomInRange(5,5) = %v", v)
	}
	if v := RandomInRange(5, 1); v != 5 {
		t.Errorf("RandomInRange(5,1) should return min, got %v", v)
	}
}
