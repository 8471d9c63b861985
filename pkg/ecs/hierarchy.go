package ecs

// SetParent 将 child 挂到 parent 下，追加到 parent 子列表末尾
// 如果 child 已有父实体，先从原父实体移除
func (em *EntityManager) SetParent(child, parent EntityID) {
	if !em.Exists(child) || !em.Exists(parent) || child == parent {
		return
	}
	em.detach(child)
	em.parents[child] = parent
	em.children[parent] = append(em.children[parent], child)
}

// Parent 返回实体的父实体
func (em *EntityManager) Parent(id EntityID) (EntityID, bool) {
	p, ok := em.parents[id]
	return p, ok
}

// Children 返回实体的直接子实体（按挂载顺序）
// 返回的切片是副本，调用方可以安全修改
func (em *EntityManager) Children(id EntityID) []EntityID {
	kids := em.children[id]
	if len(kids) == 0 {
		return nil
	}
	out := make([]EntityID, len(kids))
	copy(out, kids)
	return out
}

// CreateChild 创建实体并挂到 parent 下
func (em *EntityManager) CreateChild(parent EntityID) EntityID {
	id := em.CreateEntity()
	em.SetParent(id, parent)
	return id
}

// Walk 以先序深度优先遍历 root 及其后代，子实体按挂载顺序访问
// visit 返回 true 时停止遍历，Walk 返回该实体
func (em *EntityManager) Walk(root EntityID, visit func(EntityID) bool) (EntityID, bool) {
	stack := []EntityID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !em.Exists(id) {
			continue
		}
		if visit(id) {
			return id, true
		}
		kids := em.children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return 0, false
}

func (em *EntityManager) detach(child EntityID) {
	parent, ok := em.parents[child]
	if !ok {
		return
	}
	delete(em.parents, child)
	siblings := em.children[parent]
	for i, id := range siblings {
		if id == child {
			em.children[parent] = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
}
