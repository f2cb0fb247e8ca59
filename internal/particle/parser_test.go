package particle

import (
	"os"
	"strings"
	"testing"
)

// TestParseParticleConfig_DataFile 解析仓库中的 data/particles.yaml
func TestParseParticleConfig_DataFile(t *testing.T) {
	data, err := os.ReadFile("../../data/particles.yaml")
	if err != nil {
		t.Fatalf("Failed to read particles.yaml: %v", err)
	}

	config, err := ParseParticleConfig(data)
	if err != nil {
		t.Fatalf("ParseParticleConfig failed: %v", err)
	}

	for _, name := range []string{"Confetti", "HeroDust", "SparkleBurst"} {
		if _, ok := config.Find(name); !ok {
			t.Errorf("emitter %s not found", name)
		}
	}

	confetti, _ := config.Find("Confetti")
	if confetti.Shape != ShapeConfetti {
		t.Errorf("Confetti shape = %q, want confetti", confetti.Shape)
	}
	if len(confetti.Colors) != 5 {
		t.Errorf("Confetti should have 5 colors, got %d", len(confetti.Colors))
	}
	if min, max, _, _ := ParseValue(confetti.SpawnMaxLaunched); min != 250 || max != 250 {
		t.Errorf("Confetti spawnMaxLaunched = [%v %v], want 250", min, max)
	}
	if len(confetti.Fields) != 3 || confetti.Fields[0].Type != FieldAcceleration {
		t.Errorf("Confetti fields = %+v", confetti.Fields)
	}

	dust, _ := config.Find("HeroDust")
	if !dust.ParticleLoops || !dust.AreaRelative {
		t.Errorf("HeroDust should loop and be area relative: %+v", dust)
	}
}

// TestParseParticleConfig_Defaults 测试缺省值填充
func TestParseParticleConfig_Defaults(t *testing.T) {
	config, err := ParseParticleConfig([]byte("emitters:\n  - name: Plain\n"))
	if err != nil {
		t.Fatalf("ParseParticleConfig failed: %v", err)
	}
	e := config.Emitters[0]
	if e.Shape != ShapeRect {
		t.Errorf("default shape = %q, want rect", e.Shape)
	}
	if len(e.Colors) != 1 || e.Colors[0] != "#ffffff" {
		t.Errorf("default colors = %v", e.Colors)
	}
}

// TestParseParticleConfig_Errors 测试非法配置
func TestParseParticleConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"没有发射器", "emitters: []\n", "no emitters"},
		{"缺少名称", "emitters:\n  - shape: rect\n", "has no name"},
		{"重复名称", "emitters:\n  - name: A\n  - name: A\n", "duplicate"},
		{"未知形状", "emitters:\n  - name: A\n    shape: hexagon\n", "unknown shape"},
		{"未知力场", "emitters:\n  - name: A\n    fields:\n      - { type: Magnet }\n", "unknown field"},
		{"YAML 语法错误", "emitters: [\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParticleConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}
