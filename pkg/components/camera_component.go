package components

// CameraComponent 轨道相机：围绕 Target 按 Yaw/Pitch/Distance 观察场景。
// 指针位于面板或列表滚动区上方时 Enabled 为 false，拖拽与滚轮不作用于相机。
type CameraComponent struct {
	// Target 观察中心（世界坐标）
	Target [3]float64

	// Yaw 水平旋转角（弧度）
	Yaw float64

	// Pitch 俯仰角（弧度），限制在 (-π/2, π/2) 内
	Pitch float64

	// Distance 相机到观察中心的距离
	Distance float64

	// Enabled 是否响应指针输入
	Enabled bool

	// Orbiting 是否正在拖拽旋转
	Orbiting bool

	// LastX, LastY 上一帧指针位置（拖拽旋转时使用）
	LastX, LastY int
}
