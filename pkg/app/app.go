// Package app 提供贺卡应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Muted 关闭所有音效
	Muted bool
	// FontPath 可选的 TTF 字体，优先于内置字体使用
	FontPath string
	// SkipUnwrap 跳过拆礼物页面，直接显示贺卡
	SkipUnwrap bool
	// ExitOnEscape 按 Esc 退出（展台模式）
	ExitOnEscape bool
}

// App 是贺卡应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	viewport        *game.ViewportObserver
	overlay         *scenes.CelebrationOverlay

	verbose                  bool
	exitOnEscape             bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化贺卡应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 音效由程序合成，静音时不创建音频上下文
	var audioContext *audio.Context
	if !cfg.Muted {
		audioContext = audio.NewContext(game.SampleRate)
	}
	return newApp(cfg, audioContext)
}

// newApp 使用给定的音频上下文（可为 nil）创建应用
func newApp(cfg Config, audioContext *audio.Context) (*App, error) {
	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadAll(game.ResourceOptions{
		FontPath: cfg.FontPath,
		Muted:    cfg.Muted,
	}); err != nil {
		return nil, fmt.Errorf("资源加载失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	overlay := scenes.NewCelebrationOverlay(resourceManager)
	sceneManager.SetOverlay(overlay)

	sceneManager.SetSceneFactory(func(id game.SceneID) game.Scene {
		switch id {
		case game.SceneUnwrap:
			return scenes.NewUnwrapScene(resourceManager, sceneManager, overlay)
		case game.SceneMessage:
			return scenes.NewMessageScene(resourceManager)
		}
		log.Printf("[App] Unknown scene: %s", id)
		return nil
	})

	// 视口变化转发给当前场景与覆盖层
	viewport := game.NewViewportObserver()
	viewport.Subscribe(sceneManager.OnViewportChange)

	// 根据配置决定启动场景
	if cfg.SkipUnwrap {
		log.Printf("[App] SkipUnwrap enabled, starting on the message screen")
		sceneManager.Load(game.SceneMessage)
	} else {
		sceneManager.Load(game.SceneUnwrap)
	}

	return &App{
		resourceManager: resourceManager,
		sceneManager:    sceneManager,
		viewport:        viewport,
		overlay:         overlay,
		verbose:         cfg.Verbose,
		exitOnEscape:    cfg.ExitOnEscape,
	}, nil
}

// Update 更新贺卡逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if a.exitOnEscape && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[App] Escape pressed, exiting")
		return ebiten.Termination
	}

	a.sceneManager.Update(config.FixedDeltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 窗口小于最小尺寸时逻辑屏幕会被缩小显示，空白处填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口（浏览器中即页面）尺寸，不小于最小尺寸；
// 尺寸变化时重新分类视口并通知场景。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(outsideWidth, config.MinWindowWidth)
	h := max(outsideHeight, config.MinWindowHeight)
	if a.viewport.Observe(w, h) {
		info, _ := a.viewport.Current()
		log.Printf("[App] Viewport %dx%d (%s)", info.Width, info.Height, info.Class)
	}
	return w, h
}

// Title 窗口标题（来自 data/card.yaml）
func (a *App) Title() string {
	return a.resourceManager.Content().Title
}

// Celebrating 彩纸庆祝是否正在进行
func (a *App) Celebrating() bool {
	return a.overlay.Active()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 销毁场景与覆盖层，取消所有延迟事件
func (a *App) Close() {
	a.sceneManager.Dispose()
}
