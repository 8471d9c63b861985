package components

import (
	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/ecs"
)

// SceneRootComponent 标记一个场景实例的根实体
// 由 ModelLoadSystem 创建，SceneSpawnSystem 在资源就绪后逐步实例化节点。
// 销毁根实体会连同整个实例一起销毁。
type SceneRootComponent struct {
	// Handle 场景所属资源的句柄
	Handle asset.Handle

	// SceneIndex 要实例化的场景；-1 表示使用资源的默认场景
	SceneIndex int

	// Started 是否已开始实例化（资源已就绪并排好队列）
	Started bool

	// Complete 全部节点是否已实例化
	Complete bool

	// Pending 等待实例化的节点，按广度优先顺序
	Pending []PendingNode

	// PlayerNodes 需要挂播放器的节点索引
	PlayerNodes map[int]bool
}

// PendingNode 等待实例化的节点及其父实体
type PendingNode struct {
	NodeIndex int
	Parent    ecs.EntityID
}

// SceneNodeComponent 场景实例中的一个节点
type SceneNodeComponent struct {
	// Name 节点名（可能为空）
	Name string

	// NodeIndex 节点在资源中的索引
	NodeIndex int

	// Translation 相对父节点的平移
	Translation [3]float64

	// HasMesh 节点是否带网格
	HasMesh bool
}
