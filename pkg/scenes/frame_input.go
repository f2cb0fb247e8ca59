package scenes

import (
	"github.com/decker502/giftcard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// frameInput 一帧内场景关心的全部输入
// 场景的 update 只依赖它，测试可以直接构造
type frameInput struct {
	Pointer utils.InputState

	// WheelY 鼠标滚轮（向上为正）
	WheelY float64

	// Activate 空格或回车
	Activate bool
	// TabDelta 左右方向键切换标签页：-1 / +1
	TabDelta int
	// TabKey 数字键 1~3 直接选择标签页，-1 表示未按
	TabKey int
}

// readFrameInput 读取当前帧的输入
func readFrameInput() frameInput {
	in := frameInput{
		Pointer: utils.GetInputState(),
		TabKey:  -1,
	}
	_, in.WheelY = ebiten.Wheel()

	in.Activate = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		in.TabDelta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		in.TabDelta++
	}
	for i, key := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3} {
		if inpututil.IsKeyJustPressed(key) {
			in.TabKey = i
		}
	}
	return in
}

// noInput 没有任何输入的一帧
func noInput() frameInput {
	return frameInput{TabKey: -1}
}
