package components

import "github.com/decker502/modelview/pkg/animation"

// AnimationPlayerComponent 具备播放能力的实体（播放目标）
// 由 SceneSpawnSystem 挂到被动画驱动的节点层级的根节点上。
type AnimationPlayerComponent struct {
	Player animation.Controller
}

// AnimationGraphComponent 发现完成后挂到播放目标上的编译后动画图
type AnimationGraphComponent struct {
	Graph *animation.Graph
}

// AnimationsLoadedComponent 标记播放目标已完成发现（无论剪辑数量是否为零）
type AnimationsLoadedComponent struct{}
