package gltfasset

import (
	"fmt"
	"sort"

	"github.com/qmuntal/gltf"
)

// Decode reads a .gltf or .glb file and returns its asset model.
// External buffers referenced by the document are resolved relative to path.
//
// Example:
//
//	asset, err := gltfasset.Decode("models/fox.glb")
//	if err != nil {
//	    log.Printf("decode failed: %v", err)
//	}
//	fmt.Printf("clips: %d\n", len(asset.Animations))
func Decode(path string) (*Asset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf file '%s': %w", path, err)
	}

	asset, err := FromDocument(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid gltf file '%s': %w", path, err)
	}
	return asset, nil
}

// FromDocument converts an already decoded glTF document.
func FromDocument(path string, doc *gltf.Document) (*Asset, error) {
	asset := &Asset{
		Path:            path,
		NamedAnimations: make(map[string]*Clip),
		NamedScenes:     make(map[string]*Scene),
	}

	for i, n := range doc.Nodes {
		node := &Node{
			Index:  i,
			Name:   n.Name,
			Parent: -1,
			Translation: [3]float64{
				float64(n.Translation[0]),
				float64(n.Translation[1]),
				float64(n.Translation[2]),
			},
			HasMesh: n.Mesh != nil,
		}
		for _, c := range n.Children {
			node.Children = append(node.Children, int(c))
		}
		asset.Nodes = append(asset.Nodes, node)
	}
	for _, node := range asset.Nodes {
		for _, c := range node.Children {
			if c < 0 || c >= len(asset.Nodes) {
				return nil, fmt.Errorf("node %d references missing child %d", node.Index, c)
			}
			if asset.Nodes[c].Parent >= 0 {
				return nil, fmt.Errorf("node %d has more than one parent", c)
			}
			asset.Nodes[c].Parent = node.Index
		}
	}
	if err := checkAcyclic(asset.Nodes); err != nil {
		return nil, err
	}

	for i, s := range doc.Scenes {
		scene := &Scene{Index: i, Name: s.Name}
		for _, r := range s.Nodes {
			if int(r) >= len(asset.Nodes) {
				return nil, fmt.Errorf("scene %d references missing node %d", i, r)
			}
			scene.Roots = append(scene.Roots, int(r))
		}
		asset.Scenes = append(asset.Scenes, scene)
		if scene.Name != "" {
			asset.NamedScenes[scene.Name] = scene
		}
	}
	if doc.Scene != nil {
		asset.DefaultScene = int(*doc.Scene)
	}

	for i, a := range doc.Animations {
		clip := &Clip{Index: i, Name: a.Name}

		for _, s := range a.Samplers {
			in := int(s.Input)
			if in < 0 || in >= len(doc.Accessors) {
				return nil, fmt.Errorf("animation %d references missing accessor %d", i, in)
			}
			if acc := doc.Accessors[in]; len(acc.Max) > 0 && float64(acc.Max[0]) > clip.Duration {
				clip.Duration = float64(acc.Max[0])
			}
		}

		targets := make(map[int]bool)
		for _, ch := range a.Channels {
			if ch.Target.Node == nil {
				continue
			}
			n := int(*ch.Target.Node)
			if n < 0 || n >= len(asset.Nodes) {
				return nil, fmt.Errorf("animation %d targets missing node %d", i, n)
			}
			targets[n] = true
		}
		for n := range targets {
			clip.Targets = append(clip.Targets, n)
		}
		sort.Ints(clip.Targets)

		asset.Animations = append(asset.Animations, clip)
		if clip.Name != "" {
			asset.NamedAnimations[clip.Name] = clip
		}
	}

	return asset, nil
}

// checkAcyclic 沿父链向上走，超过节点总数步仍未到根说明存在环
// 每个节点至多一个父节点已在调用前保证
func checkAcyclic(nodes []*Node) error {
	for _, node := range nodes {
		cur := node.Index
		for steps := 0; nodes[cur].Parent >= 0; steps++ {
			if steps >= len(nodes) {
				return fmt.Errorf("parent chain of node %d contains a cycle", node.Index)
			}
			cur = nodes[cur].Parent
		}
	}
	return nil
}
