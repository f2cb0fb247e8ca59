package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// 页面固定配色
var (
	// 拆礼物页面背景（purple-50 / pink-50 / blue-50）
	UnwrapBackgroundColors = []color.RGBA{
		{R: 250, G: 245, B: 255, A: 255},
		{R: 253, G: 242, B: 248, A: 255},
		{R: 239, G: 246, B: 255, A: 255},
	}

	// 提示文字渐变（gradient-text）
	PromptTextColors = []color.RGBA{
		{R: 102, G: 126, B: 234, A: 255},
		{R: 118, G: 75, B: 162, A: 255},
		{R: 240, G: 147, B: 251, A: 255},
	}

	// 贺卡页面底色与上下遮罩（purple-900/40 → 透明 → pink-900/40）
	MessageBackgroundColor = color.RGBA{R: 10, G: 6, B: 28, A: 255}
	OverlayTopColor        = color.NRGBA{R: 88, G: 28, B: 135, A: 102}
	OverlayBottomColor     = color.NRGBA{R: 131, G: 24, B: 67, A: 102}

	// 中央球体颜色 #8b5cf6 与爱心颜色 #ff1493 / #ff69b4
	SphereColor        = color.RGBA{R: 139, G: 92, B: 246, A: 255}
	HeartColor         = color.RGBA{R: 255, G: 20, B: 147, A: 255}
	HeartEmissiveColor = color.RGBA{R: 255, G: 105, B: 180, A: 255}

	// 玻璃卡片（非预乘透明度）
	GlassFillColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	GlassBorderColor = color.NRGBA{R: 255, G: 255, B: 255, A: 51}
	TabBarColor      = color.NRGBA{R: 0, G: 0, B: 0, A: 51}
	TextColor        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	TextDimColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 153}
	SparkleColor     = color.RGBA{R: 253, G: 224, B: 71, A: 255}
)

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA"
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q must start with '#'", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q must have 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// WithAlpha 返回替换了透明度的非预乘颜色
// c 必须是不透明色（配置中的颜色都是）
func WithAlpha(c color.RGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha*255 + 0.5)}
}
