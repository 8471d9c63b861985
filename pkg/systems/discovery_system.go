package systems

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/modelview/internal/gltfasset"
	"github.com/decker502/modelview/pkg/animation"
	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/viewer"
)

// DiscoveryState 播放目标发现状态
type DiscoveryState int

const (
	// DiscoveryNoModel 尚未加载模型
	DiscoveryNoModel DiscoveryState = iota
	// DiscoveryWaitingForAsset 等待资源解码完成
	DiscoveryWaitingForAsset
	// DiscoveryWaitingForPlayerEntity 资源已就绪，等待实例化出播放目标
	DiscoveryWaitingForPlayerEntity
	// DiscoveryResolved 本加载周期已完成（动画索引可能为空）
	DiscoveryResolved
	// DiscoveryFailed 本加载周期已失败（仅在配置了超时或解码错误上报时出现）
	DiscoveryFailed
)

func (s DiscoveryState) String() string {
	switch s {
	case DiscoveryNoModel:
		return "NoModel"
	case DiscoveryWaitingForAsset:
		return "WaitingForAsset"
	case DiscoveryWaitingForPlayerEntity:
		return "WaitingForPlayerEntity"
	case DiscoveryResolved:
		return "Resolved"
	case DiscoveryFailed:
		return "Failed"
	default:
		return fmt.Sprintf("DiscoveryState(%d)", int(s))
	}
}

// DiscoverySystem 每个 tick 轮询一次资源与实例化层级，直到找到播放目标
//
// 找到目标后构建动画索引、把动画图挂到目标实体上并写入 Session，
// 之后本加载周期内不再做任何工作。默认对解码失败和找不到目标无限重试。
type DiscoverySystem struct {
	entityManager *ecs.EntityManager
	session       *viewer.Session
	resolver      asset.Resolver
	policy        config.DiscoveryConfig

	// cycle 当前加载周期的模型实体；模型变化时重置轮询计数
	cycle     ecs.EntityID
	hasCycle  bool
	pollTicks int
	state     DiscoveryState
}

// NewDiscoverySystem 创建发现系统
func NewDiscoverySystem(em *ecs.EntityManager, session *viewer.Session, resolver asset.Resolver, policy config.DiscoveryConfig) *DiscoverySystem {
	return &DiscoverySystem{
		entityManager: em,
		session:       session,
		resolver:      resolver,
		policy:        policy,
		state:         DiscoveryNoModel,
	}
}

// State 返回最近一次 Update 之后的状态
func (s *DiscoverySystem) State() DiscoveryState {
	return s.state
}

// Update 推进一步状态机
func (s *DiscoverySystem) Update(dt float64) {
	model, ok := s.session.ModelRef()
	if !ok {
		s.state = DiscoveryNoModel
		return
	}
	if !s.hasCycle || s.cycle != model {
		s.cycle, s.hasCycle = model, true
		s.pollTicks = 0
	}

	if s.session.Resolved() {
		if s.session.Err() != nil {
			s.state = DiscoveryFailed
		} else {
			s.state = DiscoveryResolved
		}
		return
	}

	s.pollTicks++
	handle := s.session.AssetHandle()

	a, ready := s.resolver.Get(handle)
	if !ready {
		s.state = DiscoveryWaitingForAsset
		if s.policy.SurfaceDecodeErrors && s.resolver.State(handle) == asset.StateFailed {
			s.fail(viewer.ErrAssetDecode, s.resolver.Err(handle))
			return
		}
		s.checkTimeout(viewer.ErrAssetDecode)
		return
	}

	s.state = DiscoveryWaitingForPlayerEntity
	target, found := s.entityManager.Walk(model, func(id ecs.EntityID) bool {
		return ecs.HasComponent[*components.AnimationPlayerComponent](s.entityManager, id)
	})
	if !found {
		s.checkTimeout(viewer.ErrNoPlaybackTarget)
		return
	}

	s.resolve(target, a)
}

// resolve 在播放目标上完成发现
func (s *DiscoverySystem) resolve(target ecs.EntityID, a *gltfasset.Asset) {
	graph, nodes := animation.NewGraphFromClips(a.Animations)
	entries := buildAnimationIndex(a, nodes)

	ecs.AddComponent(s.entityManager, target, &components.AnimationGraphComponent{Graph: graph})
	ecs.AddComponent(s.entityManager, target, &components.AnimationsLoadedComponent{})

	if s.session.CompleteDiscovery(target, entries) {
		s.state = DiscoveryResolved
		log.Printf("[DiscoverySystem] 找到播放目标 %d: %d 个剪辑, %d 个条目 (%d ticks)",
			target, len(a.Animations), len(entries), s.pollTicks)
	}
}

func (s *DiscoverySystem) checkTimeout(cause error) {
	if s.policy.TimeoutTicks <= 0 || s.pollTicks < s.policy.TimeoutTicks {
		return
	}
	s.fail(cause, nil)
}

func (s *DiscoverySystem) fail(cause, detail error) {
	path, _ := s.session.AssetPath()
	err := &viewer.DiscoveryError{Path: path, Ticks: s.pollTicks, Err: cause}
	if s.session.FailDiscovery(err) {
		s.state = DiscoveryFailed
		if detail != nil {
			log.Printf("[DiscoverySystem] %v: %v", err, detail)
		} else {
			log.Printf("[DiscoverySystem] %v", err)
		}
	}
}

// buildAnimationIndex 构建动画索引
//
// 命名剪辑按名字排序（区分大小写，按码点）；重名时以最后声明的剪辑为准。
// 只有未命名剪辑时，按声明顺序生成 "Animation 1"、"Animation 2"…
// nodes[i] 是第 i 个声明剪辑在图中的节点。
func buildAnimationIndex(a *gltfasset.Asset, nodes []animation.NodeIndex) []viewer.AnimationEntry {
	if len(a.Animations) == 0 {
		return nil
	}

	entries := make([]viewer.AnimationEntry, 0, len(a.NamedAnimations))
	for name, clip := range a.NamedAnimations {
		entries = append(entries, viewer.AnimationEntry{Name: name, Clip: nodes[clip.Index]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	if len(entries) > 0 {
		return entries
	}

	for i := range a.Animations {
		entries = append(entries, viewer.AnimationEntry{
			Name: fmt.Sprintf("Animation %d", i+1),
			Clip: nodes[i],
		})
	}
	return entries
}
