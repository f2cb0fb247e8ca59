package scenes

import (
	"log"

	"github.com/decker502/giftcard/pkg/ecs"
	"github.com/decker502/giftcard/pkg/game"
	"github.com/decker502/giftcard/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// Celebrator 开始一次性的庆祝效果
type Celebrator interface {
	Trigger() bool
}

// CelebrationOverlay 页面级的彩纸覆盖层
//
// 由 SceneManager 作为覆盖层持有，在拆礼物页面触发，
// 切换到贺卡页面后继续播放，直到 CelebrationDuration 结束。
type CelebrationOverlay struct {
	entityManager *ecs.EntityManager
	timers        *systems.TimerSystem
	particles     *systems.ParticleSystem
	celebration   *systems.CelebrationSystem
	audio         *game.AudioManager

	viewport game.ViewportInfo
}

// NewCelebrationOverlay 创建覆盖层
func NewCelebrationOverlay(rm *game.ResourceManager) *CelebrationOverlay {
	em := ecs.NewEntityManager()
	timers := systems.NewTimerSystem(em)
	particles := systems.NewParticleSystem(em)

	o := &CelebrationOverlay{
		entityManager: em,
		timers:        timers,
		particles:     particles,
		celebration:   systems.NewCelebrationSystem(em, timers, particles, rm.Particles()),
		audio:         rm.Audio(),
	}
	o.celebration.OnEnd = func() {
		log.Println("[CelebrationOverlay] Confetti finished")
	}
	return o
}

// Trigger 开始庆祝（只有第一次有效）
func (o *CelebrationOverlay) Trigger() bool {
	if !o.celebration.Trigger(float64(o.viewport.Width), float64(o.viewport.Height)) {
		return false
	}
	o.audio.PlaySound(game.SoundFanfare)
	return true
}

// Active 庆祝是否正在进行
func (o *CelebrationOverlay) Active() bool {
	return o.celebration.Active()
}

// OnViewportChange 实现 game.ViewportAware，彩纸始终铺满窗口
func (o *CelebrationOverlay) OnViewportChange(viewport game.ViewportInfo) {
	o.viewport = viewport
	o.celebration.Resize(float64(viewport.Width), float64(viewport.Height))
}

// Update 推进计时器、庆祝状态与彩纸
func (o *CelebrationOverlay) Update(deltaTime float64) {
	o.timers.Update(deltaTime)
	o.celebration.Update(deltaTime)
	o.particles.Update(deltaTime)
	o.entityManager.RemoveMarkedEntities()
}

// Draw 在所有页面之上绘制彩纸
func (o *CelebrationOverlay) Draw(screen *ebiten.Image) {
	o.particles.Draw(screen, 1)
}

// Dispose 实现 game.Disposable
func (o *CelebrationOverlay) Dispose() {
	o.timers.CancelAll()
	o.entityManager.Clear()
}
