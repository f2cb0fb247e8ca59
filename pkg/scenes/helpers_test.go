package scenes

import (
	"os"
	"testing"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/embedded"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// newTestResources 从仓库 data/ 目录加载资源，不创建音频上下文
func newTestResources(t *testing.T) *game.ResourceManager {
	t.Helper()
	embedded.Init(os.DirFS("../.."))
	t.Cleanup(func() { embedded.Init(nil) })

	rm := game.NewResourceManager(nil)
	if err := rm.LoadAll(game.ResourceOptions{Muted: true}); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	return rm
}

// stubScene 记录是否被销毁
type stubScene struct {
	disposed bool
}

func (s *stubScene) Update(float64)     {}
func (s *stubScene) Draw(*ebiten.Image) {}
func (s *stubScene) Dispose()           { s.disposed = true }

// recordingManager 场景管理器，工厂只记录被加载的场景
func recordingManager(loaded *[]game.SceneID) *game.SceneManager {
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(id game.SceneID) game.Scene {
		*loaded = append(*loaded, id)
		return &stubScene{}
	})
	return sm
}

// viewportOf 构造视口信息
func viewportOf(w, h int) game.ViewportInfo {
	return game.ViewportInfo{Width: w, Height: h, Class: game.ClassifyViewport(w)}
}

// pointerAt 指针停在 (x, y)，没有按键
func pointerAt(x, y int) frameInput {
	in := noInput()
	in.Pointer = utils.InputState{X: x, Y: y}
	return in
}

// pressAt 本帧在 (x, y) 按下
func pressAt(x, y int) frameInput {
	in := noInput()
	in.Pointer = utils.InputState{X: x, Y: y, JustPressed: true, Pressed: true}
	return in
}

// holdAt 按住并移动到 (x, y)
func holdAt(x, y int) frameInput {
	in := noInput()
	in.Pointer = utils.InputState{X: x, Y: y, Pressed: true}
	return in
}

// releaseAt 本帧在 (x, y) 松开
func releaseAt(x, y int) frameInput {
	in := noInput()
	in.Pointer = utils.InputState{X: x, Y: y, JustReleased: true}
	return in
}

// tapAt 一次完整的点击：按下一帧、松开一帧
func tapAt(update func(dt float64, in frameInput), x, y int) {
	update(config.FixedDeltaTime, pressAt(x, y))
	update(config.FixedDeltaTime, releaseAt(x, y))
}

// idle 推进 n 帧，没有任何输入
func idle(update func(dt float64, in frameInput), n int) {
	for i := 0; i < n; i++ {
		update(config.FixedDeltaTime, noInput())
	}
}
