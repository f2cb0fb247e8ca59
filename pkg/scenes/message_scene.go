package scenes

import (
	"log"
	"math"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
	"github.com/decker502/giftcard/pkg/entities"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/modules"
	"github.com/decker502/giftcard/pkg/systems"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// backdropSeed 背景装饰的随机种子，每次打开贺卡布局一致
const backdropSeed = 20251020

// MessageScene 贺卡页面
//
// 背景之上是一张可滚动的主卡片：标题横幅、三个标签页、祝福折叠卡片与页脚。
// 滚动时整张卡片按滚动进度淡出并缩小。
type MessageScene struct {
	resourceManager *game.ResourceManager
	content         *config.MessageContent

	entityManager *ecs.EntityManager
	timers        *systems.TimerSystem
	tabs          *systems.TabSystem
	particles     *systems.ParticleSystem

	backdrop *modules.BackdropModule
	panel    *modules.MessagePanelModule
	measure  modules.TextMeasurer

	// dustEmitter 标题浮尘发射器（0 表示尚未开始）
	dustEmitter ecs.EntityID

	viewport game.ViewportInfo
	drag     utils.DragTracker
	scroll   float64
	hover    modules.Hit

	layout    *modules.MessageLayout
	layoutKey modules.LayoutInput

	elapsed  float64
	disposed bool
}

// NewMessageScene 创建贺卡页面
func NewMessageScene(rm *game.ResourceManager) *MessageScene {
	em := ecs.NewEntityManager()
	viewport := game.ViewportInfo{
		Width:  config.GameWindowWidth,
		Height: config.GameWindowHeight,
		Class:  game.ClassifyViewport(config.GameWindowWidth),
	}

	s := &MessageScene{
		resourceManager: rm,
		content:         &rm.Content().Message,
		entityManager:   em,
		timers:          systems.NewTimerSystem(em),
		tabs:            systems.NewTabSystem(em),
		particles:       systems.NewParticleSystem(em),
		backdrop:        modules.NewBackdropModule(viewport, backdropSeed),
		panel:           modules.NewMessagePanelModule(&rm.Content().Message, rm.Fonts()),
		measure:         modules.FontMeasurer{Fonts: rm.Fonts()},
		viewport:        viewport,
		hover:           modules.Hit{Kind: modules.HitNone, Index: -1},
	}
	s.timers.Schedule("hero-dust", config.HeroDustDelay, s.startHeroDust)

	log.Println("[MessageScene] Created")
	return s
}

// startHeroDust 在标题横幅内开始飘浮尘
func (s *MessageScene) startHeroDust() {
	hero := s.currentLayout().Hero
	id, err := entities.CreateParticleEffect(s.entityManager, s.resourceManager.Particles(), config.HeroDustEmitterName, hero.X, hero.Y, hero.W, hero.H)
	if err != nil {
		log.Printf("[MessageScene] Hero dust: %v", err)
		return
	}
	s.dustEmitter = id
}

// ActiveTab 当前标签页
func (s *MessageScene) ActiveTab() int {
	return s.tabs.ActiveTab()
}

// ExpandedPoem 展开的祝福序号，没有时为 config.NoPoem
func (s *MessageScene) ExpandedPoem() int {
	return s.tabs.ExpandedPoem()
}

// Scroll 当前滚动距离
func (s *MessageScene) Scroll() float64 {
	return s.scroll
}

// Layout 当前布局
func (s *MessageScene) Layout() *modules.MessageLayout {
	return s.currentLayout()
}

// OnViewportChange 实现 game.ViewportAware
func (s *MessageScene) OnViewportChange(viewport game.ViewportInfo) {
	s.viewport = viewport
	s.backdrop.OnViewportChange(viewport)
	if viewport.Compact() {
		s.hover = modules.Hit{Kind: modules.HitNone, Index: -1}
	}
	s.clampScroll()
}

// layoutInput 由视口和标签页状态得到布局输入
func (s *MessageScene) layoutInput() modules.LayoutInput {
	in := modules.LayoutInput{
		Width:          float64(s.viewport.Width),
		Compact:        s.viewport.Compact(),
		ExpandedPoem:   config.NoPoem,
		CollapsingPoem: config.NoPoem,
		PoemProgress:   1,
	}
	if comp := s.tabs.Component(); comp != nil {
		in.ActiveTab = comp.ActiveTab
		in.ExpandedPoem = comp.ExpandedPoem
		in.CollapsingPoem = comp.CollapsingPoem
		in.PoemProgress = utils.Progress(comp.PoemElapsed, config.PoemExpandDuration)
	}
	return in
}

// currentLayout 输入不变时复用上一次的布局
func (s *MessageScene) currentLayout() *modules.MessageLayout {
	in := s.layoutInput()
	if s.layout == nil || in != s.layoutKey {
		s.layout = modules.LayoutMessage(s.content, in, s.measure)
		s.layoutKey = in
	}
	return s.layout
}

// maxScroll 当前布局下的最大滚动距离
func (s *MessageScene) maxScroll() float64 {
	return s.currentLayout().MaxScroll(float64(s.viewport.Height))
}

func (s *MessageScene) clampScroll() {
	s.scroll = math.Max(0, math.Min(s.scroll, s.maxScroll()))
}

// scrollEffect 当前滚动进度对应的透明度与缩放
func (s *MessageScene) scrollEffect() (opacity, scale float64) {
	progress := 0.0
	if limit := s.maxScroll(); limit > 0 {
		progress = s.scroll / limit
	}
	return modules.ScrollEffect(progress)
}

// Update 实现 game.Scene
func (s *MessageScene) Update(deltaTime float64) {
	s.update(deltaTime, readFrameInput())
}

func (s *MessageScene) update(dt float64, in frameInput) {
	s.elapsed += dt

	s.timers.Update(dt)
	if s.disposed {
		return
	}

	s.tabs.Update(dt)
	s.handleInput(in)

	if s.dustEmitter != 0 {
		hero := s.currentLayout().Hero
		s.particles.SetPosition(s.dustEmitter, hero.X, hero.Y)
		s.particles.SetArea(s.dustEmitter, hero.W, hero.H)
	}

	s.backdrop.Update(dt)
	s.panel.Update(dt)
	s.particles.Update(dt)
	s.entityManager.RemoveMarkedEntities()
}

// handleInput 滚轮/拖动滚动，点击标签页与祝福卡片，方向键和数字键切换标签页
func (s *MessageScene) handleInput(in frameInput) {
	res := s.drag.Update(in.Pointer)

	if in.WheelY != 0 {
		s.scroll -= in.WheelY * config.ScrollWheelStep
	}
	if res.DeltaY != 0 {
		s.scroll -= float64(res.DeltaY)
	}
	s.clampScroll()

	if res.Tapped {
		s.tap(float64(res.TapX), float64(res.TapY))
	}

	switch {
	case in.TabKey >= 0:
		s.selectTab(in.TabKey)
	case in.TabDelta != 0:
		s.selectTab((s.tabs.ActiveTab() + in.TabDelta + config.TabCount) % config.TabCount)
	}

	s.hover = modules.Hit{Kind: modules.HitNone, Index: -1}
	if in.Pointer.CanHover() && !s.viewport.Compact() && !s.drag.Dragging() {
		s.hover = s.hitAt(float64(in.Pointer.X), float64(in.Pointer.Y))
	}
}

// hitAt 屏幕坐标处的可点击元素
func (s *MessageScene) hitAt(sx, sy float64) modules.Hit {
	_, scale := s.scrollEffect()
	x, y := modules.ScreenToContent(sx, sy, float64(s.viewport.Width), float64(s.viewport.Height), scale, s.scroll)
	return s.currentLayout().HitTest(x, y)
}

func (s *MessageScene) tap(sx, sy float64) {
	hit := s.hitAt(sx, sy)
	switch hit.Kind {
	case modules.HitTab:
		s.selectTab(hit.Index)
	case modules.HitWish:
		s.tabs.TogglePoem(hit.Index)
		s.resourceManager.Audio().PlaySound(game.SoundTap)
	}
}

func (s *MessageScene) selectTab(i int) {
	if i == s.tabs.ActiveTab() {
		return
	}
	s.tabs.SelectTab(i)
	s.resourceManager.Audio().PlaySound(game.SoundTap)
}

// Draw 实现 game.Scene
func (s *MessageScene) Draw(screen *ebiten.Image) {
	s.backdrop.Draw(screen)

	opacity, scale := s.scrollEffect()
	fade := utils.EaseOutCubic(utils.Progress(s.elapsed, config.MessageFadeInDuration))

	s.panel.Draw(screen, modules.PanelState{
		Layout:  s.currentLayout(),
		Tabs:    s.tabs.Component(),
		Compact: s.viewport.Compact(),
		Scroll:  s.scroll,
		Opacity: opacity * fade,
		Scale:   scale,
		Hover:   s.hover,
		DrawHeroEffects: func(dst *ebiten.Image, dy float64) {
			s.particles.DrawOffset(dst, 1, 0, dy)
		},
	})
}

// Dispose 实现 game.Disposable
func (s *MessageScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.timers.CancelAll()
	s.entityManager.Clear()
	s.backdrop.Dispose()
	s.panel.Dispose()
	log.Println("[MessageScene] Disposed")
}
