package systems

import (
	"errors"
	"reflect"
	"testing"

	"github.com/decker502/modelview/pkg/animation"
	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/viewer"
)

type discoveryFixture struct {
	em       *ecs.EntityManager
	session  *viewer.Session
	resolver *fakeResolver
	loader   *fakeLoader
	system   *DiscoverySystem
}

func newDiscoveryFixture(policy config.DiscoveryConfig) *discoveryFixture {
	f := &discoveryFixture{
		em:       ecs.NewEntityManager(),
		session:  viewer.NewSession(),
		resolver: newFakeResolver(),
		loader:   newFakeLoader(),
	}
	f.system = NewDiscoverySystem(f.em, f.session, f.resolver, policy)
	return f
}

// load 模拟一次加载请求，返回模型根实体与句柄
func (f *discoveryFixture) load(path string) (ecs.EntityID, asset.Handle) {
	h := f.loader.Load(path)
	root := f.em.CreateEntity()
	f.session.BeginLoad(path, h, root)
	return root, h
}

// addPlayer 在 parent 下创建带播放器的实体
func (f *discoveryFixture) addPlayer(parent ecs.EntityID) (ecs.EntityID, *fakeController) {
	id := f.em.CreateChild(parent)
	ctrl := newFakeController()
	ecs.AddComponent(f.em, id, &components.AnimationPlayerComponent{Player: ctrl})
	return id, ctrl
}

func (f *discoveryFixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.system.Update(1.0 / 60)
	}
}

func TestDiscovery_NoModel(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	f.tick(3)

	if f.system.State() != DiscoveryNoModel {
		t.Errorf("state = %v, want NoModel", f.system.State())
	}
	if f.resolver.getCalls != 0 {
		t.Errorf("resolver polled %d times without a model", f.resolver.getCalls)
	}
}

func TestDiscovery_WaitsForAssetForever(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, _ := f.load("fox.glb")
	f.addPlayer(root)

	f.tick(1000)

	if f.system.State() != DiscoveryWaitingForAsset {
		t.Errorf("state = %v, want WaitingForAsset", f.system.State())
	}
	if f.session.DiscoveryDone() || f.session.Err() != nil {
		t.Error("discovery should keep retrying without a timeout")
	}
	if f.resolver.getCalls != 1000 {
		t.Errorf("expected one poll per tick, got %d", f.resolver.getCalls)
	}
}

func TestDiscovery_WaitsForPlayerEntity(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("fox.glb")
	f.resolver.assets[h] = clipAsset("Walk")

	f.tick(5)
	if f.system.State() != DiscoveryWaitingForPlayerEntity {
		t.Fatalf("state = %v, want WaitingForPlayerEntity", f.system.State())
	}

	// 层级流式实例化后出现播放目标
	mid := f.em.CreateChild(root)
	player, _ := f.addPlayer(mid)
	f.tick(1)

	if f.system.State() != DiscoveryResolved {
		t.Fatalf("state = %v, want Resolved", f.system.State())
	}
	if ref, _ := f.session.PlayerRef(); ref != player {
		t.Errorf("PlayerRef = %d, want %d", ref, player)
	}
	if !ecs.HasComponent[*components.AnimationGraphComponent](f.em, player) ||
		!ecs.HasComponent[*components.AnimationsLoadedComponent](f.em, player) {
		t.Error("graph and loaded marker should be attached to the target")
	}
}

func TestDiscovery_NamedClipsAreSorted(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("fox.glb")
	f.resolver.assets[h] = clipAsset("Walk", "Idle", "Run")
	f.addPlayer(root)

	f.tick(1)

	if got := f.session.AnimationNames(); !reflect.DeepEqual(got, []string{"Idle", "Run", "Walk"}) {
		t.Fatalf("names = %v", got)
	}
	// 每个名字指向自己的剪辑节点（剪辑 i 对应节点 i+1）
	want := map[string]animation.NodeIndex{"Walk": 1, "Idle": 2, "Run": 3}
	for i := 0; i < f.session.AnimationCount(); i++ {
		entry, _ := f.session.AnimationAt(i)
		if entry.Clip != want[entry.Name] {
			t.Errorf("%s -> node %d, want %d", entry.Name, entry.Clip, want[entry.Name])
		}
	}
	if !f.session.Playing() || f.session.Selection() != 0 {
		t.Error("discovery with clips should start playing the first entry")
	}
}

func TestDiscovery_SortIsCaseSensitive(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("fox.glb")
	f.resolver.assets[h] = clipAsset("walk", "Walk", "_idle")
	f.addPlayer(root)

	f.tick(1)

	if got := f.session.AnimationNames(); !reflect.DeepEqual(got, []string{"Walk", "_idle", "walk"}) {
		t.Errorf("names = %v", got)
	}
}

func TestDiscovery_UnnamedClipsGetPlaceholders(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("anon.glb")
	f.resolver.assets[h] = clipAsset("", "")
	f.addPlayer(root)

	f.tick(1)

	if got := f.session.AnimationNames(); !reflect.DeepEqual(got, []string{"Animation 1", "Animation 2"}) {
		t.Fatalf("names = %v", got)
	}
	second, _ := f.session.AnimationAt(1)
	if second.Clip != 2 {
		t.Errorf("Animation 2 -> node %d, want 2", second.Clip)
	}
}

func TestDiscovery_MixedClipsKeepOnlyNamed(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("mixed.glb")
	f.resolver.assets[h] = clipAsset("", "Run", "")
	f.addPlayer(root)

	f.tick(1)

	if got := f.session.AnimationNames(); !reflect.DeepEqual(got, []string{"Run"}) {
		t.Errorf("names = %v", got)
	}
}

func TestDiscovery_ZeroClipsIsTerminal(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("rock.glb")
	f.resolver.assets[h] = clipAsset()
	player, _ := f.addPlayer(root)

	f.tick(1)

	if !f.session.DiscoveryDone() || f.session.AnimationCount() != 0 || f.session.Playing() {
		t.Fatal("zero clips should latch done with an empty index")
	}
	if !ecs.HasComponent[*components.AnimationsLoadedComponent](f.em, player) {
		t.Error("target should be marked as loaded")
	}

	calls := f.resolver.getCalls
	rev := f.session.Revision()
	f.tick(50)
	if f.resolver.getCalls != calls {
		t.Errorf("resolved discovery kept polling: %d extra calls", f.resolver.getCalls-calls)
	}
	if f.session.Revision() != rev {
		t.Error("resolved discovery should not touch the session")
	}
}

func TestDiscovery_FirstTargetInPreOrderWins(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("pair.glb")
	f.resolver.assets[h] = clipAsset("Walk")

	a := f.em.CreateChild(root)
	b := f.em.CreateChild(root)
	_, _ = f.addPlayer(b)
	deep, _ := f.addPlayer(a)

	f.tick(1)

	// a 先于 b 挂到 root 下，a 的子树先被访问
	if ref, _ := f.session.PlayerRef(); ref != deep {
		t.Errorf("PlayerRef = %d, want %d", ref, deep)
	}
}

func TestDiscovery_NewLoadStartsNewCycle(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{})
	root, h := f.load("a.glb")
	f.resolver.assets[h] = clipAsset("Idle", "Run")
	f.addPlayer(root)
	f.tick(1)
	f.session.Select(1)

	root2, h2 := f.load("b.glb")
	if f.session.Playing() || f.session.AnimationCount() != 0 || f.session.Selection() != 0 {
		t.Fatal("load should reset the session")
	}

	f.tick(1)
	if f.system.State() != DiscoveryWaitingForAsset {
		t.Errorf("state = %v, want WaitingForAsset", f.system.State())
	}

	f.resolver.assets[h2] = clipAsset("Jump")
	f.addPlayer(root2)
	f.tick(1)

	if got := f.session.AnimationNames(); !reflect.DeepEqual(got, []string{"Jump"}) {
		t.Errorf("names = %v", got)
	}
	if !f.session.Playing() {
		t.Error("new discovery with clips should resume playing")
	}
}

func TestDiscovery_TimeoutWhileWaitingForAsset(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{TimeoutTicks: 3})
	f.load("slow.glb")

	f.tick(2)
	if f.session.Err() != nil {
		t.Fatal("should not fail before the timeout")
	}
	f.tick(1)

	if f.system.State() != DiscoveryFailed {
		t.Fatalf("state = %v, want Failed", f.system.State())
	}
	var derr *viewer.DiscoveryError
	if !errors.As(f.session.Err(), &derr) || !errors.Is(derr, viewer.ErrAssetDecode) {
		t.Fatalf("err = %v", f.session.Err())
	}
	if derr.Path != "slow.glb" || derr.Ticks != 3 {
		t.Errorf("unexpected error details: %+v", derr)
	}

	calls := f.resolver.getCalls
	f.tick(10)
	if f.resolver.getCalls != calls {
		t.Error("failed discovery should stop polling")
	}
}

func TestDiscovery_TimeoutWithoutTarget(t *testing.T) {
	f := newDiscoveryFixture(config.DiscoveryConfig{TimeoutTicks: 4})
	_, h := f.load("static.glb")
	f.resolver.assets[h] = clipAsset("Walk")

	f.tick(4)

	if !errors.Is(f.session.Err(), viewer.ErrNoPlaybackTarget) {
		t.Errorf("err = %v, want ErrNoPlaybackTarget", f.session.Err())
	}
}

func TestDiscovery_SurfaceDecodeErrors(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		f := newDiscoveryFixture(config.DiscoveryConfig{SurfaceDecodeErrors: true})
		_, h := f.load("broken.glb")
		f.resolver.failed[h] = errors.New("bad magic")

		f.tick(1)
		if !errors.Is(f.session.Err(), viewer.ErrAssetDecode) {
			t.Errorf("err = %v, want ErrAssetDecode", f.session.Err())
		}
	})

	t.Run("disabled", func(t *testing.T) {
		f := newDiscoveryFixture(config.DiscoveryConfig{})
		_, h := f.load("broken.glb")
		f.resolver.failed[h] = errors.New("bad magic")

		f.tick(100)
		if f.session.Err() != nil || f.system.State() != DiscoveryWaitingForAsset {
			t.Error("decode failures should stay silent by default")
		}
	})
}
