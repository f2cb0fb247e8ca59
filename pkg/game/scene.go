package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the card (the unwrap screen, the message screen)
// or a page-level overlay. Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换或程序退出时调用 Dispose
//
// Dispose 是场景取消延迟事件的唯一入口：调用之后，
// 场景安排的任何回调都不会再执行。
type Disposable interface {
	Dispose()
}

// ViewportAware 是一个可选接口，接收窗口尺寸与视口分类的变化
//
// 场景切换时，新场景会立即收到一次当前视口。
type ViewportAware interface {
	OnViewportChange(viewport ViewportInfo)
}
