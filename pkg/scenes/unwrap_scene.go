package scenes

import (
	"log"
	"math"

	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
	"github.com/decker502/giftcard/pkg/entities"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/modules"
	"github.com/decker502/giftcard/pkg/systems"
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// UnwrapScene 拆礼物页面
//
// 礼物盒需要点击五次才能拆开：前四次每次拆掉一层包装并摇晃，
// 第五次开始庆祝，RevealDelay 后切换到贺卡页面。
// 页面销毁时取消全部延迟事件，之后不会再切换场景。
type UnwrapScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	celebrator      Celebrator

	entityManager *ecs.EntityManager
	timers        *systems.TimerSystem
	unwrap        *systems.UnwrapSystem
	springs       *systems.SpringSystem
	particles     *systems.ParticleSystem

	giftBox *modules.GiftBoxModule

	// 悬停/按下缩放与拆开后的弹出都由弹簧驱动
	boxSpring    ecs.EntityID
	openedSpring ecs.EntityID

	drag     utils.DragTracker
	viewport game.ViewportInfo
	hovering bool
	pressing bool

	elapsed  float64
	disposed bool
}

// NewUnwrapScene 创建拆礼物页面
// celebrator 为 nil 时第五次点击只切换页面，不放彩纸
func NewUnwrapScene(rm *game.ResourceManager, sm *game.SceneManager, celebrator Celebrator) *UnwrapScene {
	em := ecs.NewEntityManager()
	timers := systems.NewTimerSystem(em)

	s := &UnwrapScene{
		resourceManager: rm,
		sceneManager:    sm,
		celebrator:      celebrator,
		entityManager:   em,
		timers:          timers,
		unwrap:          systems.NewUnwrapSystem(em, timers),
		springs:         systems.NewSpringSystem(em),
		particles:       systems.NewParticleSystem(em),
		viewport: game.ViewportInfo{
			Width:  config.GameWindowWidth,
			Height: config.GameWindowHeight,
			Class:  game.ClassifyViewport(config.GameWindowWidth),
		},
	}
	s.giftBox = modules.NewGiftBoxModule(&rm.Content().Unwrap, s.viewport.Width)

	s.boxSpring = em.CreateEntity()
	s.springs.Attach(s.boxSpring, 1, config.BoxSpringFrequency, config.BoxSpringDamping)
	s.openedSpring = em.CreateEntity()
	s.springs.Attach(s.openedSpring, 0, config.OpenedSpringFrequency, config.OpenedSpringDamping)

	s.unwrap.OnAdvance = s.onAdvance
	s.unwrap.OnCelebrate = s.onCelebrate
	s.unwrap.OnReveal = s.onReveal

	log.Println("[UnwrapScene] Created")
	return s
}

// onAdvance 每次有效点击：音效和一团闪光
func (s *UnwrapScene) onAdvance(progress int) {
	s.resourceManager.Audio().PlaySound(game.UnwrapStepSound(progress))

	cx, cy := s.boxCenter()
	if _, err := entities.CreateParticleEffect(s.entityManager, s.resourceManager.Particles(), config.SparkleEmitterName, cx, cy, 0, 0); err != nil {
		log.Printf("[UnwrapScene] Sparkle burst: %v", err)
	}
	if progress == config.UnwrapSteps {
		s.springs.SetTarget(s.openedSpring, 1)
	}
}

func (s *UnwrapScene) onCelebrate() {
	if s.celebrator != nil {
		s.celebrator.Trigger()
	}
}

func (s *UnwrapScene) onReveal() {
	log.Println("[UnwrapScene] Revealed, switching to message screen")
	s.sceneManager.Load(game.SceneMessage)
}

// State 当前拆礼物状态
func (s *UnwrapScene) State() components.UnwrapState {
	return s.unwrap.State()
}

// Progress 已点击次数
func (s *UnwrapScene) Progress() int {
	return s.unwrap.Progress()
}

// OnViewportChange 实现 game.ViewportAware
func (s *UnwrapScene) OnViewportChange(viewport game.ViewportInfo) {
	s.viewport = viewport
	s.giftBox.Resize(viewport.Width)
}

// boxCenter 礼物盒中心，略高于窗口中心，给下方提示文字留出空间
func (s *UnwrapScene) boxCenter() (float64, float64) {
	w, h := float64(s.viewport.Width), float64(s.viewport.Height)
	return w / 2, h/2 - s.promptSize()
}

// promptSize 提示文字字号（text-xl / sm:text-2xl / md:text-3xl）
func (s *UnwrapScene) promptSize() float64 {
	return config.ResponsiveSize(s.viewport.Width, 20, 24, 30)
}

// Update 实现 game.Scene
func (s *UnwrapScene) Update(deltaTime float64) {
	s.update(deltaTime, readFrameInput())
}

func (s *UnwrapScene) update(dt float64, in frameInput) {
	s.elapsed += dt

	// 计时器先于输入：回调可能切换场景并销毁本页面
	s.timers.Update(dt)
	if s.disposed {
		return
	}

	s.handleInput(in)

	s.unwrap.Update(dt)
	s.springs.Update()
	s.giftBox.Update(dt)
	s.particles.Update(dt)
	s.entityManager.RemoveMarkedEntities()
}

// handleInput 点击礼物盒或按空格/回车拆一层
func (s *UnwrapScene) handleInput(in frameInput) {
	cx, cy := s.boxCenter()
	px, py := float64(in.Pointer.X), float64(in.Pointer.Y)
	wrapped := s.unwrap.State() == components.UnwrapWrapped

	res := s.drag.Update(in.Pointer)
	over := s.giftBox.Contains(cx, cy, 1, px, py)

	s.hovering = wrapped && over && in.Pointer.CanHover() && !s.viewport.Compact()
	s.pressing = wrapped && over && in.Pointer.Pressed

	target := 1.0
	switch {
	case s.pressing:
		target = config.BoxPressScale
	case s.hovering:
		target = config.BoxHoverScale
	}
	s.springs.SetTarget(s.boxSpring, target)

	if res.Tapped && s.giftBox.Contains(cx, cy, 1, float64(res.TapX), float64(res.TapY)) {
		s.unwrap.Activate()
		return
	}
	if in.Activate {
		s.unwrap.Activate()
	}
}

// Draw 实现 game.Scene
func (s *UnwrapScene) Draw(screen *ebiten.Image) {
	w, h := float64(s.viewport.Width), float64(s.viewport.Height)
	utils.DrawGradientRect(screen, 0, 0, w, h, utils.GradientToBottomRight, config.UnwrapBackgroundColors, 1)

	cx, cy := s.boxCenter()
	comp := s.unwrap.Component()

	if layer := s.unwrap.VisibleLayer(); layer >= 0 {
		pose := modules.IdentityPose
		if comp != nil && comp.Shaking {
			pose = modules.ShakePose(comp.ShakeElapsed)
		}
		pose.Scale *= s.springs.Value(s.boxSpring, 1)
		s.giftBox.DrawLayer(screen, layer, cx, cy, pose)
	} else {
		pop := math.Max(0, s.springs.Value(s.openedSpring, 1))
		pose := modules.Pose{Scale: pop, Alpha: utils.Clamp01(pop)}
		pulse := 1 + 0.1*utils.Pulse(s.elapsed, 1)
		s.giftBox.DrawOpened(screen, cx, cy, pose, pulse)
	}

	for _, exit := range s.unwrap.ExitingLayers() {
		s.giftBox.DrawLayer(screen, exit.LayerIndex, cx, cy, modules.LayerExitPose(exit))
	}

	s.drawPrompt(screen, cx, cy+s.giftBox.Size()/2)
	s.particles.Draw(screen, 1)
}

// drawPrompt 礼物盒下方的提示文字，切换时淡入并上移
func (s *UnwrapScene) drawPrompt(screen *ebiten.Image, cx, top float64) {
	content := &s.resourceManager.Content().Unwrap
	prompt := content.Opening
	elapsed := 0.0
	if comp := s.unwrap.Component(); comp != nil {
		elapsed = comp.PromptElapsed
		if comp.Progress < len(content.Prompts) {
			prompt = content.Prompts[comp.Progress]
		}
	}

	t := utils.EaseOutCubic(utils.Progress(elapsed, config.PromptFadeDuration))
	alpha := t
	y := top + s.promptSize()*1.6 + (1-t)*config.PromptSlideDistance

	size := s.promptSize()
	face := s.resourceManager.Fonts().Face(game.FontScript, size)
	width, _ := text.Measure(prompt.Text, face, 0)

	iconSize := size * 1.2
	gap := size * 0.4
	total := iconSize + gap + width
	left := cx - total/2

	utils.DrawGlyph(screen, prompt.Icon, left+iconSize/2, y+size*0.6, iconSize, 0, config.PromptTextColors[0], alpha)

	op := &text.DrawOptions{}
	op.GeoM.Translate(left+iconSize+gap, y)
	op.ColorScale.ScaleWithColor(config.PromptTextColors[1])
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, prompt.Text, face, op)
}

// Dispose 实现 game.Disposable：取消所有延迟事件并释放图片
func (s *UnwrapScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.timers.CancelAll()
	s.entityManager.Clear()
	s.giftBox.Dispose()
	log.Println("[UnwrapScene] Disposed")
}
