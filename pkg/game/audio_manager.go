package game

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频采样率（16 位立体声）
const SampleRate = 48000

// SoundID 音效标识
type SoundID string

const (
	// SoundTap 切换标签页、展开诗
	SoundTap SoundID = "tap"
	// SoundFanfare 第五次点击
	SoundFanfare SoundID = "fanfare"
)

// UnwrapStepSound 第 progress 次点击礼物的音效，音高逐次升高
func UnwrapStepSound(progress int) SoundID {
	return SoundID(fmt.Sprintf("unwrap_%d", progress))
}

// Note 合成音符
type Note struct {
	Freq     float64 // 频率（Hz）
	Start    float64 // 开始时间（秒）
	Duration float64 // 持续时间（秒）
	Gain     float64 // 音量 [0, 1]
}

// 五声音阶 C5 D5 E5 G5 A5，对应第 1~5 次点击
var unwrapScale = []float64{523.25, 587.33, 659.25, 783.99, 880.00}

// soundNotes 返回音效的音符，未知 ID 返回 nil
func soundNotes(id SoundID) []Note {
	switch id {
	case SoundTap:
		return []Note{{Freq: 1318.51, Duration: 0.08, Gain: 0.25}}
	case SoundFanfare:
		return []Note{
			{Freq: 523.25, Start: 0.00, Duration: 0.30, Gain: 0.4},
			{Freq: 659.25, Start: 0.12, Duration: 0.30, Gain: 0.4},
			{Freq: 783.99, Start: 0.24, Duration: 0.30, Gain: 0.4},
			{Freq: 1046.50, Start: 0.36, Duration: 0.90, Gain: 0.5},
		}
	}
	for i, freq := range unwrapScale {
		if id == UnwrapStepSound(i+1) {
			return []Note{
				{Freq: freq, Duration: 0.28, Gain: 0.45},
				{Freq: freq * 1.5, Start: 0.06, Duration: 0.22, Gain: 0.2},
			}
		}
	}
	return nil
}

// SynthesizeNotes 将音符合成为 16 位小端立体声 PCM
//
// 每个音符是带二次谐波的正弦波，5ms 起音后指数衰减，
// 混音后用 tanh 软限幅，避免多个音符叠加时削波。
func SynthesizeNotes(notes []Note, sampleRate int) []byte {
	if len(notes) == 0 || sampleRate <= 0 {
		return nil
	}

	total := 0.0
	for _, n := range notes {
		total = math.Max(total, n.Start+n.Duration)
	}
	samples := int(math.Ceil(total * float64(sampleRate)))
	buf := make([]byte, samples*4)

	const attack = 0.005
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sampleRate)
		v := 0.0
		for _, n := range notes {
			local := t - n.Start
			if local < 0 || local >= n.Duration {
				continue
			}
			env := math.Exp(-5 * local / n.Duration)
			if local < attack {
				env *= local / attack
			}
			phase := 2 * math.Pi * n.Freq * local
			v += n.Gain * env * (math.Sin(phase) + 0.3*math.Sin(2*phase))
		}
		s := int16(math.Tanh(v) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存所有音效（贺卡没有音频资源文件）
//   - 统一管理播放与静音
//
// 音频上下文为 nil 时进入降级模式：所有播放调用直接返回 false。
type AudioManager struct {
	context *audio.Context
	muted   bool
	volume  float64
	pcm     map[SoundID][]byte
	players map[SoundID]*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil
//   - muted: 是否静音（--mute）
func NewAudioManager(ctx *audio.Context, muted bool) *AudioManager {
	if ctx == nil {
		log.Println("[AudioManager] No audio context, sound disabled")
	}
	return &AudioManager{
		context: ctx,
		muted:   muted,
		volume:  0.6,
		pcm:     make(map[SoundID][]byte),
		players: make(map[SoundID]*audio.Player),
	}
}

// PlaySound 播放音效，返回是否成功播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am == nil || am.context == nil || am.muted {
		return false
	}

	player, ok := am.players[id]
	if !ok {
		pcm := am.soundPCM(id)
		if pcm == nil {
			log.Printf("[AudioManager] Unknown sound: %s", id)
			return false
		}
		player = am.context.NewPlayerFromBytes(pcm)
		am.players[id] = player
	}

	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// soundPCM 返回缓存的 PCM，首次使用时合成
func (am *AudioManager) soundPCM(id SoundID) []byte {
	if pcm, ok := am.pcm[id]; ok {
		return pcm
	}
	pcm := SynthesizeNotes(soundNotes(id), SampleRate)
	if pcm != nil {
		am.pcm[id] = pcm
	}
	return pcm
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if muted {
		for _, p := range am.players {
			p.Pause()
		}
	}
}

// IsMuted 是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}

// SetVolume 设置音量 [0, 1]
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}
