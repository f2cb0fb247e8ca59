package main

import (
	"fmt"
	"os"

	"github.com/decker502/giftcard/pkg/app"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var cfg app.Config
var fullscreen bool

// rootCmd 启动贺卡窗口
var rootCmd = &cobra.Command{
	Use:   "giftcard",
	Short: "An animated greeting card: unwrap the gift, read the message",
	Long: `Opens the card in a resizable window.

Click the gift (or press Space) five times to unwrap it. The message screen
has three tabs; the wishes tab folds out a short poem under each wish.
Press F11 to toggle fullscreen.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// dataFS 在 embed.go 中声明
		embedded.Init(dataFS)

		gameApp, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("贺卡初始化失败: %w", err)
		}
		defer gameApp.Close()

		ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
		ebiten.SetWindowSizeLimits(config.MinWindowWidth, config.MinWindowHeight, -1, -1)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowTitle(gameApp.Title())
		ebiten.SetFullscreen(fullscreen)

		return ebiten.RunGame(gameApp)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Start in fullscreen")
	rootCmd.Flags().BoolVar(&cfg.Muted, "mute", false, "Disable sound")
	rootCmd.Flags().StringVar(&cfg.FontPath, "font", "", "TTF font used ahead of the built-in fonts")
	rootCmd.Flags().BoolVar(&cfg.SkipUnwrap, "skip-unwrap", false, "Start on the message screen")
	rootCmd.Flags().BoolVar(&cfg.ExitOnEscape, "exit-on-escape", false, "Quit when Escape is pressed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
