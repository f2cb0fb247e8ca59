package config

import (
	"image/color"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// loadRepoCard 读取仓库中的 data/card.yaml
func loadRepoCard(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../../data/card.yaml")
	if err != nil {
		t.Fatalf("Failed to read card.yaml: %v", err)
	}
	return data
}

func TestParseCardContent_RepoFile(t *testing.T) {
	content, err := ParseCardContent(loadRepoCard(t))
	if err != nil {
		t.Fatalf("ParseCardContent failed: %v", err)
	}

	if len(content.Unwrap.Prompts) != UnwrapSteps {
		t.Errorf("prompts: got %d, want %d", len(content.Unwrap.Prompts), UnwrapSteps)
	}
	if content.Unwrap.Prompts[0].Text != "Nhấn để mở quà nha cục dàng!" {
		t.Errorf("first prompt = %q", content.Unwrap.Prompts[0].Text)
	}
	if len(content.Message.Tabs) != TabCount {
		t.Errorf("tabs: got %d, want %d", len(content.Message.Tabs), TabCount)
	}
	if len(content.Message.Wishes.Items) != WishCount {
		t.Errorf("wishes: got %d, want %d", len(content.Message.Wishes.Items), WishCount)
	}
	if content.Message.Hero.Title != "Happy 20/10" {
		t.Errorf("hero title = %q", content.Message.Hero.Title)
	}

	// 诗保留换行
	poem := content.Message.Wishes.Items[0].Poem
	if lines := strings.Split(poem, "\n"); len(lines) != 4 {
		t.Errorf("first poem should have 4 lines, got %d: %q", len(lines), poem)
	}
}

// TestParseCardContent_Validation 每次破坏一处，确认校验能发现
func TestParseCardContent_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *CardContent)
		wantErr string
	}{
		{"提示数量不对", func(c *CardContent) { c.Unwrap.Prompts = c.Unwrap.Prompts[:4] }, "unwrap.prompts"},
		{"包装层数量不对", func(c *CardContent) { c.Unwrap.Layers = append(c.Unwrap.Layers, c.Unwrap.Layers[0]) }, "unwrap.layers"},
		{"丝带颜色非法", func(c *CardContent) { c.Unwrap.Layers[2].Ribbon[0] = "yellow" }, "unwrap.layers[2].ribbon"},
		{"标签页数量不对", func(c *CardContent) { c.Message.Tabs = c.Message.Tabs[:2] }, "message.tabs"},
		{"标签页缺标题", func(c *CardContent) { c.Message.Tabs[1].Title = "" }, "title is required"},
		{"没有留言", func(c *CardContent) { c.Message.Notes = nil }, "message.notes"},
		{"祝福数量不对", func(c *CardContent) { c.Message.Wishes.Items = c.Message.Wishes.Items[:5] }, "message.wishes.items"},
		{"祝福缺诗", func(c *CardContent) { c.Message.Wishes.Items[3].Poem = "" }, "poem is required"},
		{"回忆边框颜色非法", func(c *CardContent) { c.Message.Memories[0].Border = "#12" }, "message.memories[0].border"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c CardContent
			if err := yaml.Unmarshal(loadRepoCard(t), &c); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			tt.mutate(&c)

			err := validateCardContent(&c)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseCardContent_BadYAML(t *testing.T) {
	if _, err := ParseCardContent([]byte("unwrap: [")); err == nil {
		t.Error("expected YAML error")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#667eea", color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 255}, false},
		{"#FFD700", color.RGBA{R: 255, G: 215, B: 0, A: 255}, false},
		{" #000000 ", color.RGBA{A: 255}, false},
		{"#11223344", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, false},
		{"667eea", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorsAndAlpha(t *testing.T) {
	cs := Colors([]string{"#ff0000", "bad"})
	if cs[0] != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Colors[0] = %v", cs[0])
	}
	if cs[1] != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("invalid color should fall back to white, got %v", cs[1])
	}

	c := WithAlpha(color.RGBA{R: 10, G: 20, B: 30, A: 255}, 0.2)
	if c.A != 51 || c.R != 10 {
		t.Errorf("WithAlpha = %v", c)
	}
	if WithAlpha(color.RGBA{}, 3).A != 255 || WithAlpha(color.RGBA{}, -1).A != 0 {
		t.Error("WithAlpha should clamp alpha")
	}
}

func TestGiftBoxSize(t *testing.T) {
	tests := []struct {
		width int
		want  float64
	}{
		{375, 256},
		{639, 256},
		{640, 320},
		{767, 320},
		{768, 384},
		{1920, 384},
	}
	for _, tt := range tests {
		if got := GiftBoxSize(tt.width); got != tt.want {
			t.Errorf("GiftBoxSize(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}
