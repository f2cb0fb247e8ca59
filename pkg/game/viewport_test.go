package game

import "testing"

// TestClassifyViewport 768 为分界，768 本身属于常规视口
func TestClassifyViewport(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  ViewportClass
	}{
		{"手机竖屏", 375, ViewportCompact},
		{"分界前一像素", 767, ViewportCompact},
		{"分界", 768, ViewportRegular},
		{"桌面", 1920, ViewportRegular},
		{"零宽度", 0, ViewportCompact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyViewport(tt.width); got != tt.want {
				t.Errorf("ClassifyViewport(%d) = %s, want %s", tt.width, got, tt.want)
			}
		})
	}
}

// TestViewportObserver_Subscribe 订阅时立即收到当前值，之后收到每次变化
func TestViewportObserver_Subscribe(t *testing.T) {
	vo := NewViewportObserver()

	if _, ok := vo.Current(); ok {
		t.Fatal("observer should start without a viewport")
	}

	var early []ViewportInfo
	vo.Subscribe(func(v ViewportInfo) { early = append(early, v) })
	if len(early) != 0 {
		t.Fatal("no viewport yet, subscriber should not be called")
	}

	if !vo.Observe(1024, 768) {
		t.Fatal("first Observe should report a change")
	}

	var late []ViewportInfo
	unsubscribe := vo.Subscribe(func(v ViewportInfo) { late = append(late, v) })
	if len(late) != 1 || late[0].Class != ViewportRegular {
		t.Fatalf("late subscriber should receive the current viewport, got %v", late)
	}

	vo.Observe(375, 667)
	if len(early) != 2 || early[1].Class != ViewportCompact {
		t.Errorf("early subscriber got %v", early)
	}
	if len(late) != 2 || !late[1].Compact() {
		t.Errorf("late subscriber got %v", late)
	}

	unsubscribe()
	vo.Observe(800, 600)
	if len(late) != 2 {
		t.Errorf("unsubscribed callback must not be called, got %d calls", len(late))
	}
	if len(early) != 3 {
		t.Errorf("remaining subscriber should still be called, got %d calls", len(early))
	}
}

// TestViewportObserver_Idempotent 同一尺寸重复观察不通知，最后一次写入生效
func TestViewportObserver_Idempotent(t *testing.T) {
	vo := NewViewportObserver()
	calls := 0
	vo.Subscribe(func(ViewportInfo) { calls++ })

	vo.Observe(500, 800)
	if vo.Observe(500, 800) {
		t.Error("same size should not report a change")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	vo.Observe(900, 800)
	vo.Observe(500, 800)
	info, _ := vo.Current()
	if info.Width != 500 || info.Class != ViewportCompact {
		t.Errorf("last write should win, got %+v", info)
	}

	// 同一分类内的尺寸变化也会通知（布局依赖具体尺寸）
	vo.Observe(510, 800)
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}
