package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneID 场景标识
type SceneID string

const (
	// SceneUnwrap 拆礼物页面
	SceneUnwrap SceneID = "unwrap"
	// SceneMessage 贺卡页面
	SceneMessage SceneID = "message"
)

// SceneFactory 场景工厂函数类型
// 用于按 ID 创建场景，避免 game 与 scenes 之间的循环依赖
type SceneFactory func(id SceneID) Scene

// SceneManager controls which scene is active.
// Only one scene's Update and Draw methods are called at any given time,
// plus an optional overlay that is drawn on top and survives scene switches
// (the confetti celebration starts on the unwrap screen and continues on the
// message screen).
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	overlay      Scene
	sceneFactory SceneFactory

	viewport    ViewportInfo
	hasViewport bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Load to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is disposed if it implements Disposable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if old, ok := sm.currentScene.(Disposable); ok && sm.currentScene != scene {
		old.Dispose()
	}
	sm.currentScene = scene

	if aware, ok := scene.(ViewportAware); ok && sm.hasViewport {
		aware.OnViewportChange(sm.viewport)
	}
}

// Load 通过工厂创建并切换到指定场景
func (sm *SceneManager) Load(id SceneID) {
	log.Printf("[SceneManager] Loading scene: %s", id)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return
	}

	newScene := sm.sceneFactory(id)
	if newScene == nil {
		log.Printf("[SceneManager] Error: factory returned nil for scene %s", id)
		return
	}
	sm.SwitchTo(newScene)
	sm.currentID = id
	log.Printf("[SceneManager] Switched to scene: %s", id)
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 返回最近一次通过 Load 切换到的场景 ID
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// SetOverlay 设置页面级覆盖层
func (sm *SceneManager) SetOverlay(overlay Scene) {
	if old, ok := sm.overlay.(Disposable); ok && sm.overlay != overlay {
		old.Dispose()
	}
	sm.overlay = overlay
	if aware, ok := overlay.(ViewportAware); ok && sm.hasViewport {
		aware.OnViewportChange(sm.viewport)
	}
}

// GetOverlay 返回覆盖层
func (sm *SceneManager) GetOverlay() Scene {
	return sm.overlay
}

// OnViewportChange 转发视口变化给当前场景与覆盖层
func (sm *SceneManager) OnViewportChange(viewport ViewportInfo) {
	sm.viewport = viewport
	sm.hasViewport = true

	if aware, ok := sm.currentScene.(ViewportAware); ok {
		aware.OnViewportChange(viewport)
	}
	if aware, ok := sm.overlay.(ViewportAware); ok {
		aware.OnViewportChange(viewport)
	}
}

// Update updates the active scene, then the overlay.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	if sm.overlay != nil {
		sm.overlay.Update(deltaTime)
	}
}

// Draw renders the active scene, then the overlay on top.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
	if sm.overlay != nil {
		sm.overlay.Draw(screen)
	}
}

// Dispose 程序退出时销毁当前场景与覆盖层
func (sm *SceneManager) Dispose() {
	if d, ok := sm.currentScene.(Disposable); ok {
		d.Dispose()
	}
	if d, ok := sm.overlay.(Disposable); ok {
		d.Dispose()
	}
	sm.currentScene = nil
	sm.overlay = nil
}
