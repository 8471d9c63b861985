// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的指针输入快照
// 每个 tick 读取一次，所有系统共享同一份，测试中可以直接构造
type InputState struct {
	// X, Y 指针位置
	X, Y int
	// HasCursor 指针是否在窗口内
	HasCursor bool
	// Pressed 左键（或触摸）是否按住
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚松开
	JustReleased bool
	// WheelX, WheelY 本帧滚轮增量（行）
	WheelX, WheelY float64
}

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{}
	state.WheelX, state.WheelY = ebiten.Wheel()

	// 首先检查触摸输入（移动设备）
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.HasCursor = true
		state.Pressed = true
		state.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		lastTouchX, lastTouchY = state.X, state.Y
		return state
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		state.X, state.Y = lastTouchX, lastTouchY
		state.HasCursor = true
		state.JustReleased = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	state.X, state.Y = ebiten.CursorPosition()
	state.HasCursor = ebiten.IsFocused()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}

// 保存最后一次触摸位置（用于触摸释放时获取位置）
var lastTouchX, lastTouchY int

// Rect 屏幕空间矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 检查点是否在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Intersect 返回两个矩形的交集；不相交时宽高为 0
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty 矩形是否没有面积
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
