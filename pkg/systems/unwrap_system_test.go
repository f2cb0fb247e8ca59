package systems

import (
	"testing"

	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
)

func newTestUnwrap() (*ecs.EntityManager, *TimerSystem, *UnwrapSystem) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)
	return em, timers, NewUnwrapSystem(em, timers)
}

func TestUnwrapSystem_InitialState(t *testing.T) {
	_, _, us := newTestUnwrap()

	if us.State() != components.UnwrapWrapped {
		t.Errorf("State = %s, want wrapped", us.State())
	}
	if us.Progress() != 0 {
		t.Errorf("Progress = %d, want 0", us.Progress())
	}
	if us.VisibleLayer() != 4 {
		t.Errorf("VisibleLayer = %d, want 4", us.VisibleLayer())
	}
}

func TestUnwrapSystem_ActivationSequence(t *testing.T) {
	_, _, us := newTestUnwrap()

	tests := []struct {
		name         string
		wantProgress int
		wantState    components.UnwrapState
		wantLayer    int
	}{
		{"第一次点击", 1, components.UnwrapWrapped, 3},
		{"第二次点击", 2, components.UnwrapWrapped, 2},
		{"第三次点击", 3, components.UnwrapWrapped, 1},
		{"第四次点击", 4, components.UnwrapWrapped, 0},
		{"第五次点击", 5, components.UnwrapOpening, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !us.Activate() {
				t.Fatal("Activate should change state")
			}
			if us.Progress() != tt.wantProgress {
				t.Errorf("Progress = %d, want %d", us.Progress(), tt.wantProgress)
			}
			if us.State() != tt.wantState {
				t.Errorf("State = %s, want %s", us.State(), tt.wantState)
			}
			if us.VisibleLayer() != tt.wantLayer {
				t.Errorf("VisibleLayer = %d, want %d", us.VisibleLayer(), tt.wantLayer)
			}
		})
	}
}

func TestUnwrapSystem_ShakeOnlyBeforeOpening(t *testing.T) {
	_, _, us := newTestUnwrap()

	us.Activate()
	if !us.Component().Shaking {
		t.Error("clicks 1-4 should shake the box")
	}

	tick(int(config.BoxShakeDuration*60)+1, us.Update)
	if us.Component().Shaking {
		t.Error("shake should stop after BoxShakeDuration")
	}

	for i := 0; i < 4; i++ {
		us.Activate()
	}
	if us.Component().Shaking {
		t.Error("the fifth click opens the box instead of shaking it")
	}
}

// 飞出方向：n 为偶数时 -15°，奇数时 +15°
func TestUnwrapSystem_LayerExitDirection(t *testing.T) {
	_, _, us := newTestUnwrap()

	for i := 0; i < config.UnwrapSteps; i++ {
		us.Activate()
	}

	exits := us.ExitingLayers()
	if len(exits) != config.UnwrapSteps {
		t.Fatalf("exiting layers = %d, want %d", len(exits), config.UnwrapSteps)
	}
	for n, exit := range exits {
		wantLayer := config.UnwrapSteps - 1 - n
		wantDir := -1.0
		if n%2 == 1 {
			wantDir = 1.0
		}
		if exit.LayerIndex != wantLayer {
			t.Errorf("exit %d: layer = %d, want %d", n, exit.LayerIndex, wantLayer)
		}
		if exit.Direction != wantDir {
			t.Errorf("exit %d: direction = %v, want %v", n, exit.Direction, wantDir)
		}
	}
}

func TestUnwrapSystem_LayerExitFinishes(t *testing.T) {
	em, _, us := newTestUnwrap()

	us.Activate()
	if len(us.ExitingLayers()) != 1 {
		t.Fatal("activation should spawn a layer exit")
	}

	tick(int(config.LayerExitDuration*60)+1, us.Update)
	em.RemoveMarkedEntities()
	if n := len(us.ExitingLayers()); n != 0 {
		t.Errorf("exiting layers = %d after the animation, want 0", n)
	}
}

func TestUnwrapSystem_RevealAfterDelay(t *testing.T) {
	_, timers, us := newTestUnwrap()

	reveals := 0
	us.OnReveal = func() { reveals++ }

	for i := 0; i < config.UnwrapSteps; i++ {
		us.Activate()
	}

	update := func(dt float64) {
		timers.Update(dt)
		us.Update(dt)
	}

	// 600ms = 36 帧
	tick(35, update)
	if us.State() != components.UnwrapOpening {
		t.Fatalf("State = %s after 35 ticks, want opening", us.State())
	}
	tick(1, update)
	if us.State() != components.UnwrapRevealed {
		t.Fatalf("State = %s after 36 ticks, want revealed", us.State())
	}

	tick(120, update)
	if reveals != 1 {
		t.Errorf("OnReveal called %d times, want 1", reveals)
	}
}

func TestUnwrapSystem_IgnoredAfterOpening(t *testing.T) {
	_, timers, us := newTestUnwrap()

	celebrations := 0
	advances := 0
	us.OnCelebrate = func() { celebrations++ }
	us.OnAdvance = func(int) { advances++ }

	for i := 0; i < config.UnwrapSteps; i++ {
		us.Activate()
	}

	// Opening 状态下的点击
	for i := 0; i < 3; i++ {
		if us.Activate() {
			t.Error("activation in opening state must be a no-op")
		}
	}

	tick(36, timers.Update)
	if us.State() != components.UnwrapRevealed {
		t.Fatalf("State = %s, want revealed", us.State())
	}

	// Revealed 状态下的点击
	if us.Activate() {
		t.Error("activation in revealed state must be a no-op")
	}

	if us.Progress() != config.UnwrapSteps {
		t.Errorf("Progress = %d, want %d", us.Progress(), config.UnwrapSteps)
	}
	if celebrations != 1 {
		t.Errorf("OnCelebrate called %d times, want 1", celebrations)
	}
	if advances != config.UnwrapSteps {
		t.Errorf("OnAdvance called %d times, want %d", advances, config.UnwrapSteps)
	}
	if timers.Pending() != 0 {
		t.Errorf("extra activations scheduled %d events", timers.Pending())
	}
}

// 页面销毁（CancelAll + Clear）后到期的回调不会执行
func TestUnwrapSystem_TeardownCancelsReveal(t *testing.T) {
	em, timers, us := newTestUnwrap()

	revealed := false
	us.OnReveal = func() { revealed = true }

	for i := 0; i < config.UnwrapSteps; i++ {
		us.Activate()
	}
	timers.CancelAll()
	em.Clear()

	tick(60, timers.Update)
	if revealed {
		t.Error("reveal fired after teardown")
	}
	if us.Activate() {
		t.Error("activation after teardown must be a no-op")
	}
}
