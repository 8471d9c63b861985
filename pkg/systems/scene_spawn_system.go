package systems

import (
	"log"
	"sort"

	"github.com/decker502/modelview/internal/gltfasset"
	"github.com/decker502/modelview/pkg/animation"
	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/ecs"
)

// SceneSpawnSystem 把已解码资源的场景逐步实例化为实体层级
//
// 每个 tick 最多实例化 nodesPerTick 个节点（广度优先），因此大模型的
// 播放目标可能在资源就绪后的若干 tick 才出现。被动画驱动的层级根节点
// 会挂上 AnimationPlayerComponent，成为候选播放目标。
type SceneSpawnSystem struct {
	entityManager *ecs.EntityManager
	resolver      asset.Resolver
	nodesPerTick  int

	// newPlayer 为播放目标创建播放引擎，测试中可替换
	newPlayer func() animation.Controller
}

// NewSceneSpawnSystem 创建场景实例化系统
func NewSceneSpawnSystem(em *ecs.EntityManager, resolver asset.Resolver, nodesPerTick int) *SceneSpawnSystem {
	if nodesPerTick <= 0 {
		nodesPerTick = 1
	}
	return &SceneSpawnSystem{
		entityManager: em,
		resolver:      resolver,
		nodesPerTick:  nodesPerTick,
		newPlayer:     func() animation.Controller { return animation.NewPlayer() },
	}
}

// Update 推进所有未完成的场景实例
func (s *SceneSpawnSystem) Update(dt float64) {
	roots := ecs.GetEntitiesWith1[*components.SceneRootComponent](s.entityManager)
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	for _, root := range roots {
		if !s.entityManager.IsAlive(root) {
			continue
		}
		comp, ok := ecs.GetComponent[*components.SceneRootComponent](s.entityManager, root)
		if !ok || comp.Complete {
			continue
		}

		a, ok := s.resolver.Get(comp.Handle)
		if !ok {
			continue
		}

		if !comp.Started {
			if s.start(root, comp, a); comp.Complete {
				continue
			}
		}
		s.spawnNodes(root, comp, a)
	}
}

// start 选定场景并把场景根节点放入待实例化队列
func (s *SceneSpawnSystem) start(root ecs.EntityID, comp *components.SceneRootComponent, a *gltfasset.Asset) {
	comp.Started = true

	idx := comp.SceneIndex
	if idx < 0 {
		idx = a.DefaultScene
	}
	scene, ok := a.Scene(idx)
	if !ok {
		log.Printf("[SceneSpawnSystem] 资源 %s 没有场景 %d，跳过实例化", a.Path, idx)
		comp.Complete = true
		return
	}
	comp.SceneIndex = idx

	comp.PlayerNodes = make(map[int]bool)
	for _, n := range a.PlayerNodes(idx) {
		comp.PlayerNodes[n] = true
	}

	comp.Pending = comp.Pending[:0]
	for _, r := range scene.Roots {
		comp.Pending = append(comp.Pending, components.PendingNode{NodeIndex: r, Parent: root})
	}
	log.Printf("[SceneSpawnSystem] 开始实例化场景 %d (%d 个根节点, root=%d)", idx, len(scene.Roots), root)
}

func (s *SceneSpawnSystem) spawnNodes(root ecs.EntityID, comp *components.SceneRootComponent, a *gltfasset.Asset) {
	budget := s.nodesPerTick
	for budget > 0 && len(comp.Pending) > 0 {
		p := comp.Pending[0]
		comp.Pending = comp.Pending[1:]
		budget--

		node := a.Nodes[p.NodeIndex]
		id := s.entityManager.CreateChild(p.Parent)
		ecs.AddComponent(s.entityManager, id, &components.SceneNodeComponent{
			Name:        node.Name,
			NodeIndex:   node.Index,
			Translation: node.Translation,
			HasMesh:     node.HasMesh,
		})
		if comp.PlayerNodes[node.Index] {
			ecs.AddComponent(s.entityManager, id, &components.AnimationPlayerComponent{Player: s.newPlayer()})
		}

		for _, c := range node.Children {
			comp.Pending = append(comp.Pending, components.PendingNode{NodeIndex: c, Parent: id})
		}
	}

	if len(comp.Pending) == 0 && !comp.Complete {
		comp.Complete = true
		comp.Pending = nil
		log.Printf("[SceneSpawnSystem] 场景实例化完成 (root=%d)", root)
	}
}
