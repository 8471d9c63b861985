package systems

import (
	"errors"

	"github.com/decker502/modelview/internal/gltfasset"
	"github.com/decker502/modelview/pkg/animation"
	"github.com/decker502/modelview/pkg/asset"
)

// fakeResolver 记录轮询次数的资源解析器
type fakeResolver struct {
	assets map[asset.Handle]*gltfasset.Asset
	failed map[asset.Handle]error

	getCalls int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		assets: make(map[asset.Handle]*gltfasset.Asset),
		failed: make(map[asset.Handle]error),
	}
}

func (r *fakeResolver) Get(h asset.Handle) (*gltfasset.Asset, bool) {
	r.getCalls++
	a, ok := r.assets[h]
	return a, ok
}

func (r *fakeResolver) State(h asset.Handle) asset.LoadState {
	if _, ok := r.assets[h]; ok {
		return asset.StateLoaded
	}
	if _, ok := r.failed[h]; ok {
		return asset.StateFailed
	}
	return asset.StateLoading
}

func (r *fakeResolver) Err(h asset.Handle) error {
	return r.failed[h]
}

var errNotDecoded = errors.New("not decoded in tests")

// fakeLoader 按顺序分配句柄的加载器
type fakeLoader struct {
	loaded    []string
	forgotten []asset.Handle
	handles   []asset.Handle
	server    *asset.Server
}

func newFakeLoader() *fakeLoader {
	// 借用真实 Server 分配句柄；解码结果由 fakeResolver 提供
	return &fakeLoader{server: asset.NewServer(func(string) (*gltfasset.Asset, error) {
		return nil, errNotDecoded
	})}
}

func (l *fakeLoader) Load(path string) asset.Handle {
	h := l.server.Load(path)
	l.loaded = append(l.loaded, path)
	l.handles = append(l.handles, h)
	return h
}

func (l *fakeLoader) Forget(h asset.Handle) {
	l.forgotten = append(l.forgotten, h)
}

// fakeController 记录调用的播放引擎
type fakeController struct {
	active map[animation.NodeIndex]*animation.ActiveAnimation
	calls  []string
	ticks  int
}

func newFakeController() *fakeController {
	return &fakeController{active: make(map[animation.NodeIndex]*animation.ActiveAnimation)}
}

func (c *fakeController) IsPlayingAnimation(idx animation.NodeIndex) bool {
	_, ok := c.active[idx]
	return ok
}

func (c *fakeController) Play(idx animation.NodeIndex) *animation.ActiveAnimation {
	c.calls = append(c.calls, "play")
	if a, ok := c.active[idx]; ok {
		return a
	}
	a := &animation.ActiveAnimation{Speed: 1}
	c.active[idx] = a
	return a
}

func (c *fakeController) StopAll() {
	c.calls = append(c.calls, "stop")
	c.active = make(map[animation.NodeIndex]*animation.ActiveAnimation)
}

func (c *fakeController) PauseAll() {
	c.calls = append(c.calls, "pause")
	for _, a := range c.active {
		a.Paused = true
	}
}

func (c *fakeController) ResumeAll() {
	c.calls = append(c.calls, "resume")
	for _, a := range c.active {
		a.Paused = false
	}
}

func (c *fakeController) Tick(dt float64, graph *animation.Graph) {
	c.ticks++
}

func (c *fakeController) count(call string) int {
	n := 0
	for _, c := range c.calls {
		if c == call {
			n++
		}
	}
	return n
}

// fakePicker 记录打开次数
type fakePicker struct {
	opened int
}

func (p *fakePicker) Open() {
	p.opened++
}

// clipAsset 构造带剪辑的资源；空名表示未命名剪辑
func clipAsset(names ...string) *gltfasset.Asset {
	a := &gltfasset.Asset{
		Path:            "test.glb",
		NamedAnimations: make(map[string]*gltfasset.Clip),
		NamedScenes:     make(map[string]*gltfasset.Scene),
		Nodes: []*gltfasset.Node{
			{Index: 0, Name: "Armature", Parent: -1, Children: []int{1}},
			{Index: 1, Name: "Hips", Parent: 0, HasMesh: true},
		},
		Scenes: []*gltfasset.Scene{{Index: 0, Roots: []int{0}}},
	}
	for i, name := range names {
		clip := &gltfasset.Clip{Index: i, Name: name, Duration: 1, Targets: []int{1}}
		a.Animations = append(a.Animations, clip)
		if name != "" {
			a.NamedAnimations[name] = clip
		}
	}
	return a
}
