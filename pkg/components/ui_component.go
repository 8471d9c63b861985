package components

import "image/color"

// UIState 指针与 UI 元素的交互状态
type UIState int

const (
	// UINormal 指针不在元素上
	UINormal UIState = iota
	// UIHovered 指针悬停在元素上
	UIHovered
	// UIClicked 元素被按下（按下后保持到松开）
	UIClicked
)

// UIComponent 标记可交互的 UI 元素并跟踪交互状态
type UIComponent struct {
	// State 当前交互状态
	State UIState

	// Changed 本 tick 状态是否发生变化（只在变化时触发交互处理）
	Changed bool
}

// UIRectComponent UI 元素的矩形，坐标相对父元素
type UIRectComponent struct {
	X, Y          float64
	Width, Height float64
}

// TextComponent UI 文本
type TextComponent struct {
	Text  string
	Color color.RGBA
}

// BackgroundColorComponent UI 元素背景色；Alpha 为 0 时不绘制
type BackgroundColorComponent struct {
	Color color.RGBA
}

// DraggablePanelComponent 可拖拽的面板（根 UI 元素）
type DraggablePanelComponent struct{}

// PanelDragAreaComponent 面板标题栏，按下后开始拖拽
type PanelDragAreaComponent struct{}

// ScrollAreaComponent 动画列表滚动区
type ScrollAreaComponent struct {
	// Offset 向下滚动的像素
	Offset float64

	// ContentHeight 内容总高度（由 UISyncSystem 重建列表时更新）
	ContentHeight float64
}

// OpenButtonComponent "打开模型"按钮
type OpenButtonComponent struct{}

// PlayPauseButtonComponent 播放/暂停按钮
type PlayPauseButtonComponent struct{}

// ModelLabelComponent 当前模型文件名标签
type ModelLabelComponent struct{}

// AnimationLabelComponent 当前选中动画标签
type AnimationLabelComponent struct{}

// AnimationListContainerComponent 动画列表容器，列表行挂在它下面
type AnimationListContainerComponent struct{}

// AnimationListItemComponent 动画列表行，Index 指向动画索引
type AnimationListItemComponent struct {
	Index int
}

// NoAnimationsTextComponent "No animations" 占位行
type NoAnimationsTextComponent struct{}
