package game

import (
	"encoding/binary"
	"math"
	"testing"
)

// TestSynthesizeNotes_Length PCM 长度覆盖最后一个音符
func TestSynthesizeNotes_Length(t *testing.T) {
	notes := []Note{
		{Freq: 440, Start: 0, Duration: 0.1, Gain: 0.5},
		{Freq: 660, Start: 0.125, Duration: 0.125, Gain: 0.5},
	}
	pcm := SynthesizeNotes(notes, 1000)

	// 0.25 秒 * 1000Hz = 250 帧，每帧 4 字节
	if len(pcm) != 250*4 {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), 250*4)
	}

	// 左右声道相同
	for i := 0; i < len(pcm); i += 4 {
		if pcm[i] != pcm[i+2] || pcm[i+1] != pcm[i+3] {
			t.Fatalf("frame %d: left and right channels differ", i/4)
		}
	}
}

// TestSynthesizeNotes_Amplitude 有声音且不会削波
func TestSynthesizeNotes_Amplitude(t *testing.T) {
	// 多个满音量音符叠加
	notes := []Note{
		{Freq: 440, Duration: 0.2, Gain: 1},
		{Freq: 550, Duration: 0.2, Gain: 1},
		{Freq: 660, Duration: 0.2, Gain: 1},
	}
	pcm := SynthesizeNotes(notes, SampleRate)

	peak := 0
	for i := 0; i < len(pcm); i += 4 {
		s := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak == 0 {
		t.Fatal("synthesized sound is silent")
	}
	if peak > math.MaxInt16 {
		t.Errorf("peak %d exceeds int16 range", peak)
	}

	// 起音从 0 开始，避免爆音
	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	if first != 0 {
		t.Errorf("first sample = %d, want 0", first)
	}
}

func TestSynthesizeNotes_Empty(t *testing.T) {
	if SynthesizeNotes(nil, SampleRate) != nil {
		t.Error("no notes should produce nil")
	}
}

// TestSoundNotes 所有音效都有定义
func TestSoundNotes(t *testing.T) {
	ids := []SoundID{SoundTap, SoundFanfare}
	for i := 1; i <= 5; i++ {
		ids = append(ids, UnwrapStepSound(i))
	}
	for _, id := range ids {
		if len(soundNotes(id)) == 0 {
			t.Errorf("sound %s has no notes", id)
		}
	}
	if soundNotes(UnwrapStepSound(6)) != nil {
		t.Error("unwrap_6 should not exist")
	}

	// 音高逐次升高
	prev := 0.0
	for i := 1; i <= 5; i++ {
		f := soundNotes(UnwrapStepSound(i))[0].Freq
		if f <= prev {
			t.Errorf("step %d frequency %.2f should be higher than %.2f", i, f, prev)
		}
		prev = f
	}
}

// TestAudioManager_Degraded 没有音频上下文或静音时不播放
func TestAudioManager_Degraded(t *testing.T) {
	am := NewAudioManager(nil, false)
	if am.PlaySound(SoundTap) {
		t.Error("PlaySound without audio context should return false")
	}

	am.SetMuted(true)
	if !am.IsMuted() {
		t.Error("SetMuted(true) not applied")
	}

	var nilManager *AudioManager
	if nilManager.PlaySound(SoundFanfare) {
		t.Error("nil manager should not play")
	}

	// 合成缓存
	pcm := am.soundPCM(SoundFanfare)
	if len(pcm) == 0 {
		t.Fatal("fanfare PCM is empty")
	}
	if again := am.soundPCM(SoundFanfare); &again[0] != &pcm[0] {
		t.Error("PCM should be cached")
	}
	if am.soundPCM("unknown") != nil {
		t.Error("unknown sound should have no PCM")
	}
}
