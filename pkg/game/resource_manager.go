package game

import (
	"fmt"
	"log"

	"github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// ResourceManager is responsible for centralized management of card resources.
// Everything is loaded once at startup and shared by both screens:
// - Card text and palette (data/card.yaml)
// - Particle emitter definitions (data/particles.yaml)
// - Font faces (built-in Go fonts plus an optional user font)
// - Synthesized sound effects
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is only accessed from the
// Ebitengine game loop.
//
// Usage:
//
//	audioContext := audio.NewContext(SampleRate)
//	rm := NewResourceManager(audioContext)
//	if err := rm.LoadAll(ResourceOptions{FontPath: fontPath}); err != nil {
//	    log.Fatalf("Failed to load resources: %v", err)
//	}
type ResourceManager struct {
	audioContext *audio.Context

	content   *config.CardContent
	particles *particle.ParticleConfig
	fonts     *FontManager
	audio     *AudioManager
}

// ResourceOptions 启动参数中与资源相关的部分
type ResourceOptions struct {
	FontPath string // 可选的用户字体
	Muted    bool   // 静音
}

// NewResourceManager creates a ResourceManager. audioContext may be nil,
// in which case sound is disabled.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{audioContext: audioContext}
}

// LoadAll loads every resource the card needs. The embedded package must
// already be initialized.
func (rm *ResourceManager) LoadAll(opts ResourceOptions) error {
	content, err := config.LoadCardContent(config.CardContentPath)
	if err != nil {
		return fmt.Errorf("failed to load card content: %w", err)
	}

	particles, err := particle.LoadParticleConfig(config.ParticleConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load particle effects: %w", err)
	}
	for _, name := range []string{config.ConfettiEmitterName, config.HeroDustEmitterName, config.SparkleEmitterName} {
		if _, ok := particles.Find(name); !ok {
			return fmt.Errorf("particle effect %q not defined in %s", name, config.ParticleConfigPath)
		}
	}

	fonts, err := NewFontManager(opts.FontPath)
	if err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}

	rm.content = content
	rm.particles = particles
	rm.fonts = fonts
	rm.audio = NewAudioManager(rm.audioContext, opts.Muted)

	log.Printf("[ResourceManager] Loaded card %q (%d emitters)", content.Title, len(particles.Emitters))
	return nil
}

// Content 贺卡文本与配色
func (rm *ResourceManager) Content() *config.CardContent {
	return rm.content
}

// Particles 粒子效果定义
func (rm *ResourceManager) Particles() *particle.ParticleConfig {
	return rm.particles
}

// Fonts 字体管理器
func (rm *ResourceManager) Fonts() *FontManager {
	return rm.fonts
}

// Audio 音效管理器
func (rm *ResourceManager) Audio() *AudioManager {
	return rm.audio
}
