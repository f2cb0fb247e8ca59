package game

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/embedded"
)

// 使用仓库中的 data/ 目录代替 embed.FS
func initRepoData(t *testing.T) {
	t.Helper()
	embedded.Init(os.DirFS("../.."))
	t.Cleanup(func() { embedded.Init(nil) })
}

func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(nil)
	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.Content() != nil || rm.Particles() != nil {
		t.Error("resources should not be loaded before LoadAll")
	}
}

func TestResourceManager_LoadAll(t *testing.T) {
	initRepoData(t)

	rm := NewResourceManager(nil)
	if err := rm.LoadAll(ResourceOptions{Muted: true}); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if got := len(rm.Content().Unwrap.Prompts); got != config.UnwrapSteps {
		t.Errorf("prompts = %d, want %d", got, config.UnwrapSteps)
	}
	if _, ok := rm.Particles().Find(config.ConfettiEmitterName); !ok {
		t.Error("confetti emitter missing")
	}
	if rm.Fonts() == nil || rm.Audio() == nil {
		t.Fatal("fonts and audio should be ready after LoadAll")
	}
	if !rm.Audio().IsMuted() {
		t.Error("audio should honour the muted option")
	}
}

func TestResourceManager_LoadAllErrors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{
			name: "缺少贺卡内容",
			fs:   fstest.MapFS{},
		},
		{
			name: "贺卡内容格式错误",
			fs: fstest.MapFS{
				"data/card.yaml": {Data: []byte("title: [")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedded.Init(tt.fs)
			defer embedded.Init(nil)

			if err := NewResourceManager(nil).LoadAll(ResourceOptions{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestResourceManager_MissingEmitter(t *testing.T) {
	card, err := os.ReadFile("../../data/card.yaml")
	if err != nil {
		t.Fatal(err)
	}
	embedded.Init(fstest.MapFS{
		"data/card.yaml": {Data: card},
		"data/particles.yaml": {Data: []byte(`
emitters:
  - name: Confetti
    spawnRate: "10"
`)},
	})
	defer embedded.Init(nil)

	if err := NewResourceManager(nil).LoadAll(ResourceOptions{}); err == nil {
		t.Error("missing hero dust emitter should be reported")
	}
}
