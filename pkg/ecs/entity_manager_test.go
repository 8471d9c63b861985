package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testNodeComponent struct {
	Name string
}

type testPlayerComponent struct {
	Clips int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", id1, id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testNodeComponent{Name: "Armature"})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testNodeComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if comp.(*testNodeComponent).Name != "Armature" {
		t.Errorf("Component data mismatch, got %q", comp.(*testNodeComponent).Name)
	}

	// 反射 API 与泛型 API 使用同一个类型键
	typed, ok := GetComponent[*testNodeComponent](em, id)
	if !ok || typed.Name != "Armature" {
		t.Error("Generic GetComponent should see component added via reflection API")
	}
}

func TestGenericComponentAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPlayerComponent](em, id) {
		t.Fatal("Should not have component before adding")
	}

	AddComponent(em, id, &testPlayerComponent{Clips: 3})
	AddComponent(em, id, &testNodeComponent{Name: "root"})

	player, ok := GetComponent[*testPlayerComponent](em, id)
	if !ok || player.Clips != 3 {
		t.Fatalf("GetComponent failed: ok=%v player=%+v", ok, player)
	}

	if got := GetEntitiesWith2[*testPlayerComponent, *testNodeComponent](em); len(got) != 1 || got[0] != id {
		t.Errorf("GetEntitiesWith2 = %v, want [%d]", got, id)
	}

	RemoveComponent[*testPlayerComponent](em, id)
	if HasComponent[*testPlayerComponent](em, id) {
		t.Error("Component should be removed")
	}
	if got := GetEntitiesWith1[*testNodeComponent](em); len(got) != 1 {
		t.Errorf("Expected node component to remain, got %v", got)
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testNodeComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在，但已不再存活
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}
	if em.IsAlive(id) {
		t.Error("Entity marked for destroy should not be alive")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) || HasComponent[*testNodeComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}

	// 重复标记不会出错
	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testNodeComponent{})
	em.AddComponent(id1, &testPlayerComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testNodeComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testPlayerComponent{})

	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testNodeComponent{}),
		reflect.TypeOf(&testPlayerComponent{}),
	)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected only id1, got %v", entities)
	}

	if nodes := em.GetEntitiesWith(reflect.TypeOf(&testNodeComponent{})); len(nodes) != 2 {
		t.Errorf("Expected 2 entities with node component, got %d", len(nodes))
	}
}

func TestHierarchy(t *testing.T) {
	em := NewEntityManager()
	root := em.CreateEntity()
	a := em.CreateChild(root)
	b := em.CreateChild(root)
	a1 := em.CreateChild(a)

	if kids := em.Children(root); len(kids) != 2 || kids[0] != a || kids[1] != b {
		t.Fatalf("Children(root) = %v, want [%d %d]", kids, a, b)
	}
	if p, ok := em.Parent(a1); !ok || p != a {
		t.Errorf("Parent(a1) = %d,%v, want %d", p, ok, a)
	}

	// 重新挂载会从原父实体移除
	em.SetParent(a1, b)
	if kids := em.Children(a); len(kids) != 0 {
		t.Errorf("a should have no children after reparent, got %v", kids)
	}
	if kids := em.Children(b); len(kids) != 1 || kids[0] != a1 {
		t.Errorf("Children(b) = %v, want [%d]", kids, a1)
	}
}

func TestWalkIsPreOrder(t *testing.T) {
	em := NewEntityManager()
	root := em.CreateEntity()
	a := em.CreateChild(root)
	a1 := em.CreateChild(a)
	b := em.CreateChild(root)

	var order []EntityID
	em.Walk(root, func(id EntityID) bool {
		order = append(order, id)
		return false
	})

	want := []EntityID{root, a, a1, b}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Walk order = %v, want %v", order, want)
	}

	found, ok := em.Walk(root, func(id EntityID) bool { return id == a1 })
	if !ok || found != a1 {
		t.Errorf("Walk should stop at a1, got %d,%v", found, ok)
	}
}

func TestDestroyRemovesDescendants(t *testing.T) {
	em := NewEntityManager()
	keep := em.CreateEntity()
	root := em.CreateEntity()
	child := em.CreateChild(root)

	em.DestroyEntity(root)
	// 标记之后才挂上去的子实体也会被清理
	late := em.CreateChild(child)

	em.RemoveMarkedEntities()

	for _, id := range []EntityID{root, child, late} {
		if em.Exists(id) {
			t.Errorf("entity %d should be removed with its ancestor", id)
		}
	}
	if !em.Exists(keep) {
		t.Error("unrelated entity should survive")
	}
	if em.EntityCount() != 1 {
		t.Errorf("EntityCount = %d, want 1", em.EntityCount())
	}
}

func TestDestroyChildDetachesFromParent(t *testing.T) {
	em := NewEntityManager()
	root := em.CreateEntity()
	a := em.CreateChild(root)
	b := em.CreateChild(root)

	em.DestroyEntity(a)
	em.RemoveMarkedEntities()

	if kids := em.Children(root); len(kids) != 1 || kids[0] != b {
		t.Errorf("Children(root) = %v, want [%d]", kids, b)
	}
}
