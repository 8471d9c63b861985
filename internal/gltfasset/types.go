// Package gltfasset decodes glTF 2.0 documents (.gltf and .glb) into the small
// asset model the viewer works with: animation clips, scenes and the node tree.
// Geometry, materials and textures are not retained.
package gltfasset

// Asset is a decoded glTF document.
type Asset struct {
	// Path is the file the asset was decoded from.
	Path string

	// Animations lists every clip in declaration order.
	Animations []*Clip

	// NamedAnimations maps clip names to clips. Clips without a name are absent.
	// When two clips share a name, the one declared last wins.
	NamedAnimations map[string]*Clip

	// Scenes lists every scene in declaration order.
	Scenes []*Scene

	// NamedScenes maps scene names to scenes.
	NamedScenes map[string]*Scene

	// DefaultScene is the document's "scene" property, or 0 when absent.
	DefaultScene int

	// Nodes lists every node in declaration order.
	Nodes []*Node
}

// Clip is one animation of the document.
type Clip struct {
	// Index is the position of the clip in Asset.Animations.
	Index int
	// Name is the clip name as authored; may be empty.
	Name string
	// Duration in seconds, taken from the largest sampler input max.
	Duration float64
	// Targets are the distinct node indices animated by the clip's channels.
	Targets []int
}

// Scene is a glTF scene: a list of root nodes.
type Scene struct {
	Index int
	Name  string
	Roots []int
}

// Node is a glTF node reduced to what instantiation needs.
type Node struct {
	Index int
	Name  string
	// Parent is the parent node index, or -1 for a root node.
	Parent      int
	Children    []int
	Translation [3]float64
	HasMesh     bool
}

// Scene returns the scene at index i.
func (a *Asset) Scene(i int) (*Scene, bool) {
	if i < 0 || i >= len(a.Scenes) {
		return nil, false
	}
	return a.Scenes[i], true
}

// Root returns the top-most ancestor of node i.
func (a *Asset) Root(i int) int {
	seen := 0
	for a.Nodes[i].Parent >= 0 && seen < len(a.Nodes) {
		i = a.Nodes[i].Parent
		seen++
	}
	return i
}

// PlayerNodes returns the nodes of scene s that should carry an animation player:
// the root of every node hierarchy targeted by a clip, in scene root order.
// An asset without clips still gets a player on the first root of the scene, so
// that a static model resolves to an empty animation set instead of waiting forever.
func (a *Asset) PlayerNodes(s int) []int {
	scene, ok := a.Scene(s)
	if !ok || len(scene.Roots) == 0 {
		return nil
	}
	if len(a.Animations) == 0 {
		return []int{scene.Roots[0]}
	}

	animated := make(map[int]bool)
	for _, clip := range a.Animations {
		for _, target := range clip.Targets {
			animated[a.Root(target)] = true
		}
	}

	var nodes []int
	for _, root := range scene.Roots {
		if animated[root] {
			nodes = append(nodes, root)
		}
	}
	return nodes
}
