package systems

import (
	"testing"

	"github.com/decker502/modelview/pkg/animation"
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
)

// resolvedFixture 返回已完成发现的夹具和目标上的播放引擎
func resolvedFixture(t *testing.T, names ...string) (*discoveryFixture, *fakeController) {
	t.Helper()
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("fox.glb")
	f.resolver.assets[h] = clipAsset(names...)
	_, ctrl := f.addPlayer(root)
	f.tick(1)
	if !f.session.DiscoveryDone() {
		t.Fatal("discovery did not complete")
	}
	return f, ctrl
}

func TestPlayback_StartsSelectedClipLooping(t *testing.T) {
	f, ctrl := resolvedFixture(t, "Walk", "Idle")
	ps := NewPlaybackSystem(f.em, f.session)

	ps.Update(1.0 / 60)

	// 选中项 0 是 "Idle"，即第二个声明的剪辑（节点 2）
	active, ok := ctrl.active[animation.NodeIndex(2)]
	if !ok {
		t.Fatalf("expected Idle to be playing, active = %v", ctrl.active)
	}
	if active.Mode != animation.RepeatForever {
		t.Error("selected clip should loop")
	}
	if ctrl.count("stop") != 1 || ctrl.count("play") != 1 || ctrl.count("resume") != 1 {
		t.Errorf("calls = %v", ctrl.calls)
	}
}

func TestPlayback_IsIdempotent(t *testing.T) {
	f, ctrl := resolvedFixture(t, "Walk", "Idle")
	ps := NewPlaybackSystem(f.em, f.session)

	for i := 0; i < 10; i++ {
		ps.Update(1.0 / 60)
	}

	if ctrl.count("stop") != 1 || ctrl.count("play") != 1 {
		t.Errorf("unchanged intent should not restart the clip: %v", ctrl.calls)
	}
	if ctrl.count("resume") != 10 {
		t.Errorf("resume should be issued every tick, got %d", ctrl.count("resume"))
	}
}

func TestPlayback_PauseDoesNotStop(t *testing.T) {
	f, ctrl := resolvedFixture(t, "Walk")
	ps := NewPlaybackSystem(f.em, f.session)
	ps.Update(1.0 / 60)

	f.session.TogglePlaying()
	ctrl.calls = nil
	ps.Update(1.0 / 60)

	if len(ctrl.calls) != 1 || ctrl.calls[0] != "pause" {
		t.Errorf("pause tick calls = %v, want [pause]", ctrl.calls)
	}
	if a := ctrl.active[1]; a == nil || !a.Paused {
		t.Error("clip should stay active and paused")
	}

	// 恢复播放不重新开始剪辑
	f.session.TogglePlaying()
	ctrl.calls = nil
	ps.Update(1.0 / 60)
	if ctrl.count("stop") != 0 || ctrl.count("play") != 0 || ctrl.count("resume") != 1 {
		t.Errorf("resume tick calls = %v", ctrl.calls)
	}
}

func TestPlayback_SwitchingSelection(t *testing.T) {
	f, ctrl := resolvedFixture(t, "Idle", "Run")
	ps := NewPlaybackSystem(f.em, f.session)
	ps.Update(1.0 / 60)

	f.session.Select(1)
	ctrl.calls = nil
	ps.Update(1.0 / 60)

	if ctrl.count("stop") != 1 || ctrl.count("play") != 1 {
		t.Errorf("switch calls = %v", ctrl.calls)
	}
	if _, ok := ctrl.active[2]; !ok || len(ctrl.active) != 1 {
		t.Errorf("only Run should be active, got %v", ctrl.active)
	}
}

func TestPlayback_NoopWithoutAnimations(t *testing.T) {
	f, ctrl := resolvedFixture(t)
	ps := NewPlaybackSystem(f.em, f.session)

	ps.Update(1.0 / 60)

	if len(ctrl.calls) != 0 {
		t.Errorf("empty index should not touch the engine: %v", ctrl.calls)
	}
}

func TestAnimationPlayerSystem_TicksResolvedPlayers(t *testing.T) {
	f, ctrl := resolvedFixture(t, "Walk")
	_, idle := f.addPlayer(f.em.CreateEntity())
	aps := NewAnimationPlayerSystem(f.em)

	aps.Update(1.0 / 60)
	aps.Update(1.0 / 60)

	if ctrl.ticks != 2 {
		t.Errorf("resolved player ticked %d times, want 2", ctrl.ticks)
	}
	if idle.ticks != 0 {
		t.Error("players without a graph should not tick")
	}

	// 目标实体上确实挂了图
	target, _ := f.session.PlayerRef()
	if !ecs.HasComponent[*components.AnimationGraphComponent](f.em, target) {
		t.Error("target should carry the graph")
	}
}
