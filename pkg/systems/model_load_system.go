package systems

import (
	"log"

	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/viewer"
)

// AssetLoader 是 ModelLoadSystem 发起异步加载所需的接口，由 asset.Server 实现
type AssetLoader interface {
	Load(path string) asset.Handle
	Forget(h asset.Handle)
}

// ModelLoadSystem 处理文件选择事件：释放旧模型、重置会话、发起新资源的加载和实例化
//
// 加载和实例化都是异步的，本系统不等待结果；就绪状态由 DiscoverySystem 逐 tick 轮询。
type ModelLoadSystem struct {
	entityManager *ecs.EntityManager
	session       *viewer.Session
	events        *viewer.EventQueue
	loader        AssetLoader
}

// NewModelLoadSystem 创建模型加载系统
func NewModelLoadSystem(em *ecs.EntityManager, session *viewer.Session, events *viewer.EventQueue, loader AssetLoader) *ModelLoadSystem {
	return &ModelLoadSystem{
		entityManager: em,
		session:       session,
		events:        events,
		loader:        loader,
	}
}

// Update 处理本 tick 到达的全部文件选择事件（按到达顺序，最后一个生效）
func (s *ModelLoadSystem) Update(dt float64) {
	for _, ev := range s.events.DrainFileChosen() {
		s.load(ev.Path)
	}
}

func (s *ModelLoadSystem) load(path string) {
	// 释放旧模型：销毁根实体会连同整个场景实例一起拆除
	if model, ok := s.session.ModelRef(); ok {
		s.entityManager.DestroyEntity(model)
		log.Printf("[ModelLoadSystem] 释放旧模型实体 %d", model)
	}
	if old := s.session.AssetHandle(); old.IsValid() {
		s.loader.Forget(old)
	}

	handle := s.loader.Load(path)

	root := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, root, &components.SceneRootComponent{
		Handle:     handle,
		SceneIndex: -1,
	})

	s.session.BeginLoad(path, handle, root)
	log.Printf("[ModelLoadSystem] 请求加载模型: %s (%s, root=%d)", path, handle, root)
}
