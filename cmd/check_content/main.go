// check_content 校验 data/ 下的贺卡内容与粒子配置
//
// 在仓库根目录运行：
//
//	go run ./cmd/check_content
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/embedded"
	"github.com/decker502/giftcard/pkg/utils"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func reportOK(format string, args ...any) {
	fmt.Println(okStyle.Render("✅ " + fmt.Sprintf(format, args...)))
}

func reportWarn(format string, args ...any) {
	fmt.Println(warnStyle.Render("⚠️  " + fmt.Sprintf(format, args...)))
}

func reportFail(format string, args ...any) {
	fmt.Println(failStyle.Render("❌ " + fmt.Sprintf(format, args...)))
}

func main() {
	embedded.Init(os.DirFS("."))

	files, err := embedded.Glob("data/*.yaml")
	if err != nil || len(files) == 0 {
		reportFail("data/ 下没有 YAML 文件，请在仓库根目录运行")
		os.Exit(1)
	}
	reportOK("找到 %d 个数据文件: %v", len(files), files)

	content, err := config.LoadCardContent(config.CardContentPath)
	if err != nil {
		reportFail("%v", err)
		os.Exit(1)
	}
	reportOK("%s: %q", config.CardContentPath, content.Title)
	reportOK("提示 %d 条，包装层 %d 层，标签页 %d 个，祝福 %d 条",
		len(content.Unwrap.Prompts), len(content.Unwrap.Layers), len(content.Message.Tabs), len(content.Message.Wishes.Items))

	unknown := 0
	for _, icon := range contentIcons(content) {
		if !utils.KnownGlyph(icon) {
			reportWarn("未知图标 %q，将画成闪光", icon)
			unknown++
		}
	}

	pc, err := particle.LoadParticleConfig(config.ParticleConfigPath)
	if err != nil {
		reportFail("%v", err)
		os.Exit(1)
	}
	reportOK("%s: %d 个发射器", config.ParticleConfigPath, len(pc.Emitters))

	missing := 0
	for _, name := range []string{config.ConfettiEmitterName, config.HeroDustEmitterName, config.SparkleEmitterName} {
		if _, ok := pc.Find(name); !ok {
			reportFail("缺少发射器 %s", name)
			missing++
		}
	}
	if missing > 0 {
		os.Exit(1)
	}
	if unknown == 0 {
		reportOK("所有图标都有对应的图形")
	}
}

// contentIcons 列出贺卡中用到的全部图标名
func contentIcons(c *config.CardContent) []string {
	var icons []string
	for _, p := range c.Unwrap.Prompts {
		icons = append(icons, p.Icon)
	}
	icons = append(icons, c.Unwrap.Opening.Icon)
	for _, l := range c.Unwrap.Layers {
		icons = append(icons, l.Pattern)
	}
	icons = append(icons, c.Message.Hero.Icon)
	for _, t := range c.Message.Tabs {
		icons = append(icons, t.Icon)
	}
	for _, m := range c.Message.Memories {
		icons = append(icons, m.Icon)
	}
	for _, w := range c.Message.Wishes.Items {
		icons = append(icons, w.Icon)
	}
	return icons
}
