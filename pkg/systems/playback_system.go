package systems

import (
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/viewer"
)

// PlaybackSystem 每个 tick 把播放目标上的引擎调整到会话 (selection, playing) 所描述的状态
//
// 操作是幂等的：选择与播放意图不变时只会发出 ResumeAll/PauseAll，
// 不会重复 StopAll/Play。
type PlaybackSystem struct {
	entityManager *ecs.EntityManager
	session       *viewer.Session
}

// NewPlaybackSystem 创建播放协调系统
func NewPlaybackSystem(em *ecs.EntityManager, session *viewer.Session) *PlaybackSystem {
	return &PlaybackSystem{entityManager: em, session: session}
}

// Update 协调一次播放状态
func (s *PlaybackSystem) Update(dt float64) {
	entry, ok := s.session.SelectedAnimation()
	if !ok {
		return
	}
	target, ok := s.session.PlayerRef()
	if !ok || !s.entityManager.IsAlive(target) {
		return
	}
	playerComp, ok := ecs.GetComponent[*components.AnimationPlayerComponent](s.entityManager, target)
	if !ok || playerComp.Player == nil {
		return
	}

	player := playerComp.Player
	if !s.session.Playing() {
		player.PauseAll()
		return
	}

	if !player.IsPlayingAnimation(entry.Clip) {
		player.StopAll()
		player.Play(entry.Clip).Repeat()
	}
	player.ResumeAll()
}
