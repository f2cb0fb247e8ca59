package modules

import (
	"math"
	"os"
	"testing"
	"unicode/utf8"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/game"
)

// fixedMeasurer 每个字符宽度为字号的一半
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(s string, _ game.FontStyle, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.5
}

func loadTestContent(t *testing.T) *config.CardContent {
	t.Helper()
	data, err := os.ReadFile("../../data/card.yaml")
	if err != nil {
		t.Fatalf("failed to read card.yaml: %v", err)
	}
	content, err := config.ParseCardContent(data)
	if err != nil {
		t.Fatalf("failed to parse card.yaml: %v", err)
	}
	return content
}

func layoutFor(t *testing.T, in LayoutInput) *MessageLayout {
	t.Helper()
	if in.ExpandedPoem == 0 && in.CollapsingPoem == 0 {
		in.ExpandedPoem, in.CollapsingPoem = config.NoPoem, config.NoPoem
	}
	return LayoutMessage(&loadTestContent(t).Message, in, fixedMeasurer{})
}

func center(r Rect) (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func TestLayoutMessage_CardWidth(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		compact bool
		want    float64
	}{
		{"宽屏限制最大宽度", 1600, false, config.ContentMaxWidth},
		{"常规视口", 900, false, 900 - 64},
		{"手机", 375, true, 375 - 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layoutFor(t, LayoutInput{Width: tt.width, Compact: tt.compact})
			if l.Card.W != tt.want {
				t.Errorf("card width = %v, want %v", l.Card.W, tt.want)
			}
			if math.Abs(l.Card.X+l.Card.W/2-tt.width/2) > 1e-9 {
				t.Error("card should be horizontally centered")
			}
		})
	}
}

func TestLayoutMessage_TabHitTest(t *testing.T) {
	l := layoutFor(t, LayoutInput{Width: 1024})

	for i, tab := range l.Tabs {
		x, y := center(tab)
		hit := l.HitTest(x, y)
		if hit.Kind != HitTab || hit.Index != i {
			t.Errorf("tab %d: hit = %+v", i, hit)
		}
	}

	if hit := l.HitTest(-10, -10); hit.Kind != HitNone {
		t.Errorf("outside click hit %+v", hit)
	}
}

func TestLayoutMessage_WishGrid(t *testing.T) {
	t.Run("常规视口两列", func(t *testing.T) {
		l := layoutFor(t, LayoutInput{Width: 1024, ActiveTab: config.WishTabIndex})
		if len(l.Wishes) != config.WishCount {
			t.Fatalf("wishes = %d, want %d", len(l.Wishes), config.WishCount)
		}
		if l.Wishes[0].Rect.Y != l.Wishes[1].Rect.Y || l.Wishes[0].Rect.X >= l.Wishes[1].Rect.X {
			t.Error("wishes 0 and 1 should share a row")
		}
		if l.Wishes[2].Rect.Y <= l.Wishes[0].Rect.Y {
			t.Error("wish 2 should start a new row")
		}
	})

	t.Run("紧凑视口一列", func(t *testing.T) {
		l := layoutFor(t, LayoutInput{Width: 375, Compact: true, ActiveTab: config.WishTabIndex})
		for i := 1; i < len(l.Wishes); i++ {
			if l.Wishes[i].Rect.X != l.Wishes[0].Rect.X {
				t.Errorf("wish %d not in the single column", i)
			}
			if l.Wishes[i].Rect.Y <= l.Wishes[i-1].Rect.Y {
				t.Errorf("wish %d should be below wish %d", i, i-1)
			}
		}
	})
}

func TestLayoutMessage_WishHitTest(t *testing.T) {
	l := layoutFor(t, LayoutInput{Width: 1024, ActiveTab: config.WishTabIndex})

	for _, wish := range l.Wishes {
		x, y := center(wish.Rect)
		hit := l.HitTest(x, y)
		if hit.Kind != HitWish || hit.Index != wish.Index {
			t.Errorf("wish %d: hit = %+v", wish.Index, hit)
		}
	}

	// 其他标签页不响应祝福卡片位置的点击
	x, y := center(l.Wishes[5].Rect)
	other := layoutFor(t, LayoutInput{Width: 1024, ActiveTab: 0})
	if hit := other.HitTest(x, y); hit.Kind == HitWish {
		t.Error("wish cards must not be clickable on other tabs")
	}
}

func TestLayoutMessage_PoemExpansion(t *testing.T) {
	closed := layoutFor(t, LayoutInput{Width: 1024, ActiveTab: config.WishTabIndex})
	open := layoutFor(t, LayoutInput{
		Width:          1024,
		ActiveTab:      config.WishTabIndex,
		ExpandedPoem:   0,
		CollapsingPoem: config.NoPoem,
		PoemProgress:   1,
	})

	poem := open.Wishes[0]
	if poem.PoemOpen != 1 || poem.Poem.H <= 0 {
		t.Fatalf("poem 0 should be fully open, got open=%v h=%v", poem.PoemOpen, poem.Poem.H)
	}
	if len(poem.PoemLines.Lines) != 4 {
		t.Errorf("poem lines = %d, want 4", len(poem.PoemLines.Lines))
	}
	if poem.Poem.Y < poem.Rect.Bottom() {
		t.Error("poem card should be below its wish")
	}
	if open.Wishes[2].Rect.Y <= closed.Wishes[2].Rect.Y {
		t.Error("the expanded poem should push the next row down")
	}
	if open.Height <= closed.Height {
		t.Error("content height should grow when a poem is open")
	}
	for i := 1; i < len(open.Wishes); i++ {
		if open.Wishes[i].PoemOpen != 0 {
			t.Errorf("wish %d poem should be closed", i)
		}
	}
}

func TestLayoutMessage_PoemCollapse(t *testing.T) {
	mid := layoutFor(t, LayoutInput{
		Width:          1024,
		ActiveTab:      config.WishTabIndex,
		ExpandedPoem:   config.NoPoem,
		CollapsingPoem: 3,
		PoemProgress:   0.5,
	})
	if open := mid.Wishes[3].PoemOpen; open <= 0 || open >= 1 {
		t.Errorf("collapsing poem openness = %v, want between 0 and 1", open)
	}

	done := layoutFor(t, LayoutInput{
		Width:          1024,
		ActiveTab:      config.WishTabIndex,
		ExpandedPoem:   config.NoPoem,
		CollapsingPoem: 3,
		PoemProgress:   1,
	})
	if done.Wishes[3].PoemOpen != 0 {
		t.Errorf("collapsed poem openness = %v, want 0", done.Wishes[3].PoemOpen)
	}
}

func TestLayoutMessage_Tabs(t *testing.T) {
	notes := layoutFor(t, LayoutInput{Width: 1024, ActiveTab: 0})
	if len(notes.Notes) != 3 || len(notes.Memories) != 0 || len(notes.Wishes) != 0 {
		t.Errorf("tab 0: notes=%d memories=%d wishes=%d", len(notes.Notes), len(notes.Memories), len(notes.Wishes))
	}

	memories := layoutFor(t, LayoutInput{Width: 1024, ActiveTab: 1})
	if len(memories.Memories) != 2 {
		t.Errorf("tab 1: memories = %d, want 2", len(memories.Memories))
	}
	for _, m := range memories.Memories {
		if m.Text.Y+m.Text.Height() > m.Rect.Bottom() {
			t.Error("memory text overflows its card")
		}
	}

	if notes.Footer.Y <= notes.Card.Bottom() {
		t.Error("footer should be below the card")
	}
}

func TestMessageLayout_MaxScroll(t *testing.T) {
	l := layoutFor(t, LayoutInput{Width: 375, Compact: true, ActiveTab: 1})
	if got := l.MaxScroll(l.Height + 100); got != 0 {
		t.Errorf("MaxScroll = %v when content fits, want 0", got)
	}
	if got := l.MaxScroll(300); got != l.Height-300 {
		t.Errorf("MaxScroll = %v, want %v", got, l.Height-300)
	}
}

func TestScrollEffect(t *testing.T) {
	tests := []struct {
		progress             float64
		wantOpacity, wantScl float64
	}{
		{0, 1, 1},
		{0.1, 0.9, 0.99},
		{0.2, 0.8, 0.98},
		{0.5, 0.8, 0.95},
		{1, 0.8, 0.95},
		{-1, 1, 1},
	}

	for _, tt := range tests {
		opacity, scale := ScrollEffect(tt.progress)
		if math.Abs(opacity-tt.wantOpacity) > 1e-9 || math.Abs(scale-tt.wantScl) > 1e-9 {
			t.Errorf("ScrollEffect(%v) = (%v, %v), want (%v, %v)", tt.progress, opacity, scale, tt.wantOpacity, tt.wantScl)
		}
	}
}

func TestScreenToContent(t *testing.T) {
	// 视口中心不受缩放影响
	x, y := ScreenToContent(400, 300, 800, 600, 0.95, 120)
	if x != 400 || y != 420 {
		t.Errorf("center maps to (%v, %v), want (400, 420)", x, y)
	}

	x, y = ScreenToContent(0, 0, 800, 600, 0.5, 0)
	if x != -400 || y != -300 {
		t.Errorf("corner maps to (%v, %v), want (-400, -300)", x, y)
	}
}
