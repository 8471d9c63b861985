package systems

import (
	"math"

	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/utils"
)

var unbounded = utils.Rect{X: -math.MaxFloat32, Y: -math.MaxFloat32, W: math.MaxFloat32 * 2, H: math.MaxFloat32 * 2}

// uiLayout 计算 UI 元素的屏幕矩形和可见区域
// 元素坐标相对父元素；滚动区的子元素按 Offset 上移并裁剪到滚动区内。
func uiLayout(em *ecs.EntityManager, id ecs.EntityID) (rect, visible utils.Rect, ok bool) {
	r, ok := ecs.GetComponent[*components.UIRectComponent](em, id)
	if !ok {
		return utils.Rect{}, utils.Rect{}, false
	}

	rect = utils.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
	clip := unbounded

	if parent, has := em.Parent(id); has {
		prect, pvis, pok := uiLayout(em, parent)
		if pok {
			rect.X += prect.X
			rect.Y += prect.Y
			clip = pvis
			if scroll, isScroll := ecs.GetComponent[*components.ScrollAreaComponent](em, parent); isScroll {
				rect.Y -= scroll.Offset
				clip = pvis.Intersect(prect)
			}
		}
	}

	return rect, clip.Intersect(rect), true
}

// pointerOver 检查指针是否位于 UI 元素的可见区域内
func pointerOver(em *ecs.EntityManager, id ecs.EntityID, input *utils.InputState) bool {
	if input == nil || !input.HasCursor {
		return false
	}
	_, visible, ok := uiLayout(em, id)
	return ok && visible.Contains(float64(input.X), float64(input.Y))
}
