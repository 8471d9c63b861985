// Package animation 实现动画播放引擎
//
// Graph 是由资源中的剪辑编译出的只读表，Player 是挂在播放目标实体上的
// 播放引擎，负责维护活动剪辑及其播放进度。
package animation

import "github.com/decker502/modelview/internal/gltfasset"

// NodeIndex 标识 Graph 中的一个节点
// 0 是根节点，剪辑节点从 1 开始
type NodeIndex int

// RootNode 是图的根节点，不对应任何剪辑
const RootNode NodeIndex = 0

// Graph 动画图：剪辑节点直接挂在根节点下
type Graph struct {
	clips []*gltfasset.Clip
}

// NewGraphFromClips 为每个剪辑创建一个节点
// 返回的索引与 clips 一一对应（indices[i] 对应 clips[i]）
func NewGraphFromClips(clips []*gltfasset.Clip) (*Graph, []NodeIndex) {
	g := &Graph{clips: make([]*gltfasset.Clip, 0, len(clips))}
	indices := make([]NodeIndex, 0, len(clips))
	for _, clip := range clips {
		g.clips = append(g.clips, clip)
		indices = append(indices, NodeIndex(len(g.clips)))
	}
	return g, indices
}

// Clip 返回节点对应的剪辑
func (g *Graph) Clip(idx NodeIndex) (*gltfasset.Clip, bool) {
	i := int(idx) - 1
	if g == nil || i < 0 || i >= len(g.clips) {
		return nil, false
	}
	return g.clips[i], true
}

// Len 返回剪辑节点数量
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.clips)
}
