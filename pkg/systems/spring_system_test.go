package systems

import (
	"math"
	"testing"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
)

func TestSpringSystem_SettlesOnTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	ss := NewSpringSystem(em)

	id := em.CreateEntity()
	ss.Attach(id, 1, config.BoxSpringFrequency, config.BoxSpringDamping)
	ss.SetTarget(id, config.BoxHoverScale)

	for i := 0; i < 120; i++ {
		ss.Update()
	}
	if got := ss.Value(id, 0); math.Abs(got-config.BoxHoverScale) > 1e-3 {
		t.Errorf("Value = %v after 2s, want %v", got, config.BoxHoverScale)
	}
}

// 阻尼比小于 1 时会越过目标再回弹
func TestSpringSystem_Overshoot(t *testing.T) {
	em := ecs.NewEntityManager()
	ss := NewSpringSystem(em)

	id := em.CreateEntity()
	ss.Attach(id, 0, config.OpenedSpringFrequency, config.OpenedSpringDamping)
	ss.SetTarget(id, 1)

	peak := 0.0
	for i := 0; i < 120; i++ {
		ss.Update()
		peak = math.Max(peak, ss.Value(id, 0))
	}
	if peak <= 1 {
		t.Errorf("peak = %v, want an overshoot above 1", peak)
	}
}

func TestSpringSystem_SnapAndFallback(t *testing.T) {
	em := ecs.NewEntityManager()
	ss := NewSpringSystem(em)

	id := em.CreateEntity()
	ss.Attach(id, 0, 10, 1)
	ss.SetTarget(id, 5)
	ss.Update()
	ss.Snap(id, 2)
	ss.Update()

	if got := ss.Value(id, 0); got != 2 {
		t.Errorf("Value = %v after Snap, want 2", got)
	}
	if got := ss.Value(em.CreateEntity(), 7); got != 7 {
		t.Errorf("Value without a spring = %v, want fallback 7", got)
	}
}
