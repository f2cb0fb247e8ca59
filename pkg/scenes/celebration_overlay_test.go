package scenes

import (
	"testing"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/game"
)

func TestCelebrationOverlay_Lifecycle(t *testing.T) {
	o := NewCelebrationOverlay(newTestResources(t))
	o.OnViewportChange(viewportOf(1024, 768))
	t.Cleanup(o.Dispose)

	if o.Active() {
		t.Fatal("overlay active before trigger")
	}
	if !o.Trigger() {
		t.Fatal("first Trigger should start the celebration")
	}
	if !o.Active() {
		t.Fatal("celebration should be active right after Trigger")
	}
	if o.Trigger() {
		t.Error("celebration is one-shot, second Trigger should be ignored")
	}

	// 5s = 300 帧
	for i := 0; i < 299; i++ {
		o.Update(config.FixedDeltaTime)
	}
	if !o.Active() {
		t.Fatal("celebration ended early")
	}
	o.Update(config.FixedDeltaTime)
	if o.Active() {
		t.Error("celebration should end after 5 seconds")
	}
}

func TestCelebrationOverlay_SurvivesSceneSwitch(t *testing.T) {
	rm := newTestResources(t)
	overlay := NewCelebrationOverlay(rm)

	loaded := &[]game.SceneID{}
	sm := recordingManager(loaded)
	sm.SetOverlay(overlay)
	t.Cleanup(sm.Dispose)

	unwrap := NewUnwrapScene(rm, sm, overlay)
	sm.SwitchTo(unwrap)
	x, y := boxCenterPoint(unwrap)
	for i := 0; i < config.UnwrapSteps; i++ {
		tapAt(unwrap.update, x, y)
	}
	if !overlay.Active() {
		t.Fatal("fifth tap should start the celebration")
	}

	// 页面切换后彩纸继续
	for i := 0; i < 60; i++ {
		unwrap.update(config.FixedDeltaTime, noInput())
		overlay.Update(config.FixedDeltaTime)
	}
	if len(*loaded) != 1 || !unwrap.disposed {
		t.Fatal("unwrap scene should be disposed after the reveal")
	}
	if !overlay.Active() {
		t.Error("celebration should outlive the unwrap scene")
	}
}
