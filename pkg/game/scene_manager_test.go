package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
// It also implements Disposable and ViewportAware.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	disposed     int
	viewports    []ViewportInfo
	onUpdate     func()
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
	if m.onUpdate != nil {
		m.onUpdate()
	}
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Dispose() {
	m.disposed++
}

func (m *MockScene) OnViewportChange(v ViewportInfo) {
	m.viewports = append(m.viewports, v)
}

// plainScene 只实现 Scene
type plainScene struct{ updates int }

func (p *plainScene) Update(float64)     { p.updates++ }
func (p *plainScene) Draw(*ebiten.Image) {}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil || sm.GetOverlay() != nil {
		t.Error("Expected no scene and no overlay initially")
	}
	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(nil)
}

// TestSceneManagerSwitchTo_DisposesPrevious 切换场景时销毁旧场景
func TestSceneManagerSwitchTo_DisposesPrevious(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first) // 切换到自身不销毁
	if first.disposed != 0 {
		t.Fatalf("switching to the same scene must not dispose it")
	}

	sm.SwitchTo(second)
	if first.disposed != 1 {
		t.Errorf("previous scene disposed %d times, want 1", first.disposed)
	}
	if sm.GetCurrentScene() != second {
		t.Error("SwitchTo did not set the current scene")
	}

	// 非 Disposable 场景也可以被替换
	sm.SwitchTo(&plainScene{})
	if second.disposed != 1 {
		t.Errorf("second scene disposed %d times, want 1", second.disposed)
	}
}

// TestSceneManagerOverlay 覆盖层在场景切换后继续更新和绘制
func TestSceneManagerOverlay(t *testing.T) {
	sm := NewSceneManager()
	overlay := &MockScene{}
	sm.SetOverlay(overlay)

	sm.SwitchTo(&MockScene{})
	sm.SwitchTo(&MockScene{})

	sm.Update(1.0 / 60)
	sm.Draw(nil)

	if overlay.disposed != 0 {
		t.Error("overlay must survive scene switches")
	}
	if !overlay.updateCalled || !overlay.drawCalled {
		t.Error("overlay should be updated and drawn")
	}

	sm.Dispose()
	if overlay.disposed != 1 {
		t.Errorf("overlay disposed %d times on shutdown, want 1", overlay.disposed)
	}
}

// TestSceneManagerLoad 通过工厂切换场景
func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()

	// 未设置工厂时忽略
	sm.Load(SceneMessage)
	if sm.GetCurrentScene() != nil {
		t.Fatal("Load without factory should do nothing")
	}

	created := map[SceneID]*MockScene{}
	sm.SetSceneFactory(func(id SceneID) Scene {
		if id == "missing" {
			return nil
		}
		s := &MockScene{}
		created[id] = s
		return s
	})

	sm.Load(SceneUnwrap)
	sm.Load(SceneMessage)
	if sm.CurrentID() != SceneMessage || sm.GetCurrentScene() != created[SceneMessage] {
		t.Errorf("current scene = %v, want message", sm.CurrentID())
	}
	if created[SceneUnwrap].disposed != 1 {
		t.Error("unwrap scene should be disposed after switching to message")
	}

	sm.Load("missing")
	if sm.CurrentID() != SceneMessage {
		t.Error("nil from factory must keep the current scene")
	}
}

// TestSceneManagerSwitchDuringUpdate 场景在自己的 Update 中触发切换
func TestSceneManagerSwitchDuringUpdate(t *testing.T) {
	sm := NewSceneManager()
	next := &MockScene{}
	first := &MockScene{}
	first.onUpdate = func() { sm.SwitchTo(next) }

	sm.SwitchTo(first)
	sm.Update(1.0 / 60)

	if first.disposed != 1 || sm.GetCurrentScene() != next {
		t.Error("scene should be replaced and disposed from inside its own Update")
	}
	if next.updateCalled {
		t.Error("new scene should first update on the next tick")
	}
}

// TestSceneManagerViewport 视口变化转发给场景与覆盖层，新场景立即收到当前视口
func TestSceneManagerViewport(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	overlay := &MockScene{}
	sm.SwitchTo(scene)
	sm.SetOverlay(overlay)

	if len(scene.viewports) != 0 {
		t.Fatal("no viewport known yet, nothing should be delivered")
	}

	v := ViewportInfo{Width: 375, Height: 667, Class: ViewportCompact}
	sm.OnViewportChange(v)
	if len(scene.viewports) != 1 || scene.viewports[0] != v {
		t.Errorf("scene viewports = %v", scene.viewports)
	}
	if len(overlay.viewports) != 1 {
		t.Errorf("overlay viewports = %v", overlay.viewports)
	}

	next := &MockScene{}
	sm.SwitchTo(next)
	if len(next.viewports) != 1 || next.viewports[0] != v {
		t.Errorf("new scene should receive current viewport on switch, got %v", next.viewports)
	}
}
