package systems

import (
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/ecs"
)

// AnimationPlayerSystem 推进所有已完成发现的播放引擎的时钟
type AnimationPlayerSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationPlayerSystem 创建播放时钟系统
func NewAnimationPlayerSystem(em *ecs.EntityManager) *AnimationPlayerSystem {
	return &AnimationPlayerSystem{entityManager: em}
}

// Update 以 dt 推进每个播放引擎
func (s *AnimationPlayerSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.AnimationPlayerComponent, *components.AnimationGraphComponent](s.entityManager)
	for _, id := range ids {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		player, _ := ecs.GetComponent[*components.AnimationPlayerComponent](s.entityManager, id)
		graph, _ := ecs.GetComponent[*components.AnimationGraphComponent](s.entityManager, id)
		if player.Player != nil {
			player.Player.Tick(dt, graph.Graph)
		}
	}
}
