// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的指针状态
// 统一处理鼠标和触摸输入，触摸优先
type InputState struct {
	// X, Y 指针位置（逻辑像素）
	X, Y int
	// JustPressed 本帧刚按下
	JustPressed bool
	// Pressed 正在按住
	Pressed bool
	// JustReleased 本帧刚松开
	JustReleased bool
	// IsTouching 本帧的输入来自触摸
	IsTouching bool
}

// CanHover 指针是否可以悬停（只有鼠标可以）
func (s InputState) CanHover() bool {
	return !s.IsTouching && !IsMobile()
}

// 最后一次触摸位置（触摸松开时 TouchPosition 已不可用）
var lastTouchX, lastTouchY int

// GetInputState 获取当前帧的指针状态
// 每帧只应调用一次
func GetInputState() InputState {
	state := InputState{}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		state.X, state.Y = ebiten.TouchPosition(ids[0])
		lastTouchX, lastTouchY = state.X, state.Y
		state.JustPressed = true
		state.Pressed = true
		state.IsTouching = true
		return state
	}

	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		state.X, state.Y = ebiten.TouchPosition(ids[0])
		lastTouchX, lastTouchY = state.X, state.Y
		state.Pressed = true
		state.IsTouching = true
		return state
	}

	if ids := inpututil.AppendJustReleasedTouchIDs(nil); len(ids) > 0 {
		state.X, state.Y = lastTouchX, lastTouchY
		state.JustReleased = true
		state.IsTouching = true
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}

// TapSlop 按下到松开移动不超过此距离才算点击，否则算拖动
const TapSlop = 10

// DragTracker 跟踪一次按下-拖动-松开的过程
// 用于贺卡页面的触摸滚动，同时区分点击和拖动
type DragTracker struct {
	active   bool
	dragging bool
	startX   int
	startY   int
	lastY    int
}

// DragResult 一帧的拖动结果
type DragResult struct {
	// DeltaY 本帧竖直移动距离（拖动中）
	DeltaY int
	// Tapped 本帧松开且移动很小，视为点击
	Tapped bool
	// TapX, TapY 点击位置
	TapX, TapY int
}

// Update 根据本帧输入推进拖动状态
func (d *DragTracker) Update(in InputState) DragResult {
	var res DragResult

	switch {
	case in.JustPressed:
		d.active = true
		d.dragging = false
		d.startX, d.startY = in.X, in.Y
		d.lastY = in.Y

	case in.Pressed && d.active:
		if !d.dragging && (abs(in.X-d.startX) > TapSlop || abs(in.Y-d.startY) > TapSlop) {
			d.dragging = true
		}
		if d.dragging {
			res.DeltaY = in.Y - d.lastY
		}
		d.lastY = in.Y

	case in.JustReleased && d.active:
		if !d.dragging {
			res.Tapped = true
			res.TapX, res.TapY = d.startX, d.startY
		}
		d.active = false
		d.dragging = false
	}
	return res
}

// Dragging 是否处于拖动中
func (d *DragTracker) Dragging() bool {
	return d.dragging
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
