// Package main provides a particle effect viewer for tuning the emitters
// declared in data/particles.yaml.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--effect <name>   Start with a specific emitter (e.g., --effect=Confetti)
//	--auto-play       Respawn the current emitter every 3 seconds
//	--watch           Respawn the current emitter whenever the file is saved
//	--verbose         Enable verbose logging
//
// Controls:
//
//	Mouse Click       - Spawn the emitter at the cursor
//	Left/Right Arrow  - Switch to previous/next emitter
//	Space             - Spawn the emitter at the window center
//	R                 - Clear all particles
//	Q/Escape          - Quit
//
// The file is re-read on every spawn, so edits to data/particles.yaml show up
// without restarting.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
	"github.com/decker502/giftcard/pkg/embedded"
	"github.com/decker502/giftcard/pkg/entities"
	"github.com/decker502/giftcard/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
)

const (
	screenWidth  = config.GameWindowWidth
	screenHeight = config.GameWindowHeight

	autoPlayInterval = 3.0
)

var (
	effectFlag   string
	autoPlayFlag bool
	watchFlag    bool
	verboseFlag  bool
)

// ParticleViewerGame implements ebiten.Game for the particle viewer
type ParticleViewerGame struct {
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem

	effectNames  []string
	currentIndex int

	autoPlay      bool
	watcher       *configWatcher
	sinceSpawn    float64
	statusMessage string
}

// NewParticleViewerGame loads the emitter list and spawns the first one
func NewParticleViewerGame(startEffect string, autoPlay bool) (*ParticleViewerGame, error) {
	pc, err := particle.LoadParticleConfig(config.ParticleConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load particle effects: %w", err)
	}

	names := effectNames(pc)
	em := ecs.NewEntityManager()
	g := &ParticleViewerGame{
		entityManager:  em,
		particleSystem: systems.NewParticleSystem(em),
		effectNames:    names,
		currentIndex:   indexOf(names, startEffect),
		autoPlay:       autoPlay,
	}

	log.Printf("Particle Viewer initialized: %d effects", len(names))
	g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	return g, nil
}

// effectNames returns emitter names in file order
func effectNames(pc *particle.ParticleConfig) []string {
	names := make([]string, 0, len(pc.Emitters))
	for _, e := range pc.Emitters {
		names = append(names, e.Name)
	}
	return names
}

// indexOf finds an emitter by case-insensitive name, 0 when absent
func indexOf(names []string, name string) int {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	if name != "" {
		log.Printf("Warning: effect %q not found, starting with %s", name, names[0])
	}
	return 0
}

// Update updates the viewer state
func (g *ParticleViewerGame) Update() error {
	dt := config.FixedDeltaTime

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.currentIndex = (g.currentIndex - 1 + len(g.effectNames)) % len(g.effectNames)
		g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.currentIndex = (g.currentIndex + 1) % len(g.effectNames)
		g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.entityManager.Clear()
		g.statusMessage = "Cleared"
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		g.spawnCurrentEffect(float64(x), float64(y))
	}

	if g.watcher != nil && g.watcher.Changed() {
		log.Printf("%s changed, respawning", config.ParticleConfigPath)
		g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	}

	g.sinceSpawn += dt
	if g.autoPlay && g.sinceSpawn >= autoPlayInterval {
		g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	}

	g.particleSystem.Update(dt)
	g.entityManager.RemoveMarkedEntities()
	return nil
}

// spawnCurrentEffect re-reads the config and spawns the selected emitter at (x, y).
// Window-wide emitters (confetti, hero dust) get the whole window as their area.
func (g *ParticleViewerGame) spawnCurrentEffect(x, y float64) {
	pc, err := particle.LoadParticleConfig(config.ParticleConfigPath)
	if err != nil {
		g.statusMessage = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	name := g.effectNames[g.currentIndex]

	if cfg, ok := pc.Find(name); ok && cfg.AreaRelative {
		x, y = 0, 0
	}
	if _, err := entities.CreateParticleEffect(g.entityManager, pc, name, x, y, screenWidth, screenHeight); err != nil {
		g.statusMessage = fmt.Sprintf("Spawn failed: %v", err)
		return
	}
	g.sinceSpawn = 0
	g.statusMessage = fmt.Sprintf("Spawned %s at (%.0f, %.0f)", name, x, y)
}

// Draw renders the particles and the HUD
func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(config.MessageBackgroundColor)
	g.particleSystem.Draw(screen, 1)

	particles := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EmitterComponent](g.entityManager) {
		particles += g.particleSystem.ParticleCount(id)
	}

	hud := fmt.Sprintf("Effect %d/%d: %s\nParticles: %d  Auto-play: %v\n%s\n\nClick/Space spawn  Left/Right switch  R clear  Q quit",
		g.currentIndex+1, len(g.effectNames), g.effectNames[g.currentIndex], particles, g.autoPlay, g.statusMessage)
	ebitenutil.DebugPrint(screen, hud)
}

// Layout returns the viewer's logical screen size
func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

var rootCmd = &cobra.Command{
	Use:          "particles",
	Short:        "Preview the emitters in data/particles.yaml",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !verboseFlag {
			log.SetOutput(io.Discard)
		}
		// 从仓库根目录运行，直接读取 data/
		embedded.Init(os.DirFS("."))

		g, err := NewParticleViewerGame(effectFlag, autoPlayFlag)
		if err != nil {
			return err
		}

		if watchFlag {
			w, err := newConfigWatcher(config.ParticleConfigPath)
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", config.ParticleConfigPath, err)
			}
			defer w.Close()
			g.watcher = w
		}

		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle("Particle Viewer")
		return ebiten.RunGame(g)
	},
}

func init() {
	rootCmd.Flags().StringVar(&effectFlag, "effect", "", "Start with specific effect name")
	rootCmd.Flags().BoolVar(&autoPlayFlag, "auto-play", false, "Respawn the current effect every 3 seconds")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "Respawn the current effect when data/particles.yaml is saved")
	rootCmd.Flags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose logging (default off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
