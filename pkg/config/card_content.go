package config

import (
	"fmt"
	"image/color"

	"github.com/decker502/giftcard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// CardContent 贺卡的全部文本与配色（data/card.yaml）
type CardContent struct {
	Title       string         `yaml:"title"`       // 窗口标题
	Description string         `yaml:"description"` // 副标题，仅用于日志
	Unwrap      UnwrapContent  `yaml:"unwrap"`
	Message     MessageContent `yaml:"message"`
}

// IconText 一段文字加一个装饰图标
// 图标名称见 utils.DrawGlyph，未知名称画成闪光
type IconText struct {
	Text string `yaml:"text"`
	Icon string `yaml:"icon"`
}

// UnwrapContent 拆礼物页面的内容
type UnwrapContent struct {
	Prompts []IconText   `yaml:"prompts"` // 第 n 次点击前显示的提示，共 UnwrapSteps 条
	Opening IconText     `yaml:"opening"` // 第五次点击之后的提示
	Layers  []GiftLayer  `yaml:"layers"`  // 包装层，共 UnwrapSteps 层
	Opened  OpenedLayout `yaml:"opened"`
}

// GiftLayer 一层包装纸
type GiftLayer struct {
	Gradient []string `yaml:"gradient"` // 三色渐变
	Pattern  string   `yaml:"pattern"`  // 4x4 底纹图标
	Ribbon   []string `yaml:"ribbon"`   // 丝带两色渐变
}

// OpenedLayout 拆开后的礼盒
type OpenedLayout struct {
	Gradient []string `yaml:"gradient"`
}

// MessageContent 贺卡页面的内容
type MessageContent struct {
	Hero     HeroContent     `yaml:"hero"`
	Tabs     []TabContent    `yaml:"tabs"`
	Notes    []string        `yaml:"notes"`
	Memories []MemoryContent `yaml:"memories"`
	Wishes   WishesContent   `yaml:"wishes"`
	Footer   FooterContent   `yaml:"footer"`
}

// HeroContent 顶部横幅
type HeroContent struct {
	Icon     string   `yaml:"icon"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Gradient []string `yaml:"gradient"`
}

// TabContent 标签页标题
type TabContent struct {
	Icon     string   `yaml:"icon"`
	Title    string   `yaml:"title"`
	Gradient []string `yaml:"gradient"`
}

// MemoryContent 回忆卡片
type MemoryContent struct {
	Icon     string   `yaml:"icon"`
	Title    string   `yaml:"title"`
	Text     string   `yaml:"text"`
	Gradient []string `yaml:"gradient"`
	Border   string   `yaml:"border"`
}

// WishesContent 祝福标签页
type WishesContent struct {
	Header    []string      `yaml:"header"`
	PoemTitle string        `yaml:"poemTitle"`
	Items     []WishContent `yaml:"items"`
}

// WishContent 一条祝福和它的诗
type WishContent struct {
	Icon     string   `yaml:"icon"`
	Text     string   `yaml:"text"`
	Gradient []string `yaml:"gradient"`
	Poem     string   `yaml:"poem"`
}

// FooterContent 页脚
type FooterContent struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// LoadCardContent 从嵌入资源加载贺卡内容
// 参数：
//
//	path - 资源路径（通常为 CardContentPath）
//
// 返回：
//
//	*CardContent - 解析并校验后的内容
//	error - 读取、解析或校验失败
func LoadCardContent(path string) (*CardContent, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card content %s: %w", path, err)
	}

	content, err := ParseCardContent(data)
	if err != nil {
		return nil, fmt.Errorf("invalid card content in %s: %w", path, err)
	}
	return content, nil
}

// ParseCardContent 解析并校验贺卡内容 YAML
func ParseCardContent(data []byte) (*CardContent, error) {
	var content CardContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateCardContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// validateCardContent 校验固定数量的列表与颜色格式
func validateCardContent(c *CardContent) error {
	if len(c.Unwrap.Prompts) != UnwrapSteps {
		return fmt.Errorf("unwrap.prompts: expected %d entries, got %d", UnwrapSteps, len(c.Unwrap.Prompts))
	}
	if len(c.Unwrap.Layers) != UnwrapSteps {
		return fmt.Errorf("unwrap.layers: expected %d entries, got %d", UnwrapSteps, len(c.Unwrap.Layers))
	}
	for i, layer := range c.Unwrap.Layers {
		if err := validateGradient(layer.Gradient, 2); err != nil {
			return fmt.Errorf("unwrap.layers[%d].gradient: %w", i, err)
		}
		if err := validateGradient(layer.Ribbon, 2); err != nil {
			return fmt.Errorf("unwrap.layers[%d].ribbon: %w", i, err)
		}
	}
	if err := validateGradient(c.Unwrap.Opened.Gradient, 2); err != nil {
		return fmt.Errorf("unwrap.opened.gradient: %w", err)
	}

	if err := validateGradient(c.Message.Hero.Gradient, 2); err != nil {
		return fmt.Errorf("message.hero.gradient: %w", err)
	}
	if len(c.Message.Tabs) != TabCount {
		return fmt.Errorf("message.tabs: expected %d entries, got %d", TabCount, len(c.Message.Tabs))
	}
	for i, tab := range c.Message.Tabs {
		if tab.Title == "" {
			return fmt.Errorf("message.tabs[%d]: title is required", i)
		}
		if err := validateGradient(tab.Gradient, 2); err != nil {
			return fmt.Errorf("message.tabs[%d].gradient: %w", i, err)
		}
	}
	if len(c.Message.Notes) == 0 {
		return fmt.Errorf("message.notes: at least one note is required")
	}
	for i, m := range c.Message.Memories {
		if err := validateGradient(m.Gradient, 2); err != nil {
			return fmt.Errorf("message.memories[%d].gradient: %w", i, err)
		}
		if _, err := ParseHexColor(m.Border); err != nil {
			return fmt.Errorf("message.memories[%d].border: %w", i, err)
		}
	}
	if len(c.Message.Wishes.Items) != WishCount {
		return fmt.Errorf("message.wishes.items: expected %d entries, got %d", WishCount, len(c.Message.Wishes.Items))
	}
	for i, w := range c.Message.Wishes.Items {
		if w.Poem == "" {
			return fmt.Errorf("message.wishes.items[%d]: poem is required", i)
		}
		if err := validateGradient(w.Gradient, 2); err != nil {
			return fmt.Errorf("message.wishes.items[%d].gradient: %w", i, err)
		}
	}
	return nil
}

// validateGradient 检查渐变至少有 minStops 个合法颜色
func validateGradient(stops []string, minStops int) error {
	if len(stops) < minStops {
		return fmt.Errorf("expected at least %d colors, got %d", minStops, len(stops))
	}
	for _, s := range stops {
		if _, err := ParseHexColor(s); err != nil {
			return err
		}
	}
	return nil
}

// Colors 将十六进制颜色列表转换为 color.RGBA
// 非法颜色转换为白色（内容在加载时已校验）
func Colors(hex []string) []color.RGBA {
	out := make([]color.RGBA, len(hex))
	for i, h := range hex {
		c, err := ParseHexColor(h)
		if err != nil {
			c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		out[i] = c
	}
	return out
}
