package systems

import (
	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/utils"
)

// PanelSystem 处理面板拖拽与动画列表的滚轮滚动
type PanelSystem struct {
	entityManager *ecs.EntityManager
	input         *utils.InputState
	lineStep      float64

	dragging           bool
	dragOffX, dragOffY float64
}

// NewPanelSystem 创建面板系统；lineStep 是滚轮一行对应的像素
func NewPanelSystem(em *ecs.EntityManager, input *utils.InputState, lineStep float64) *PanelSystem {
	return &PanelSystem{entityManager: em, input: input, lineStep: lineStep}
}

// Dragging 是否正在拖拽面板
func (s *PanelSystem) Dragging() bool {
	return s.dragging
}

// Update 更新拖拽和滚动
func (s *PanelSystem) Update(dt float64) {
	if !s.input.HasCursor {
		return
	}
	s.updateDrag()
	s.updateScroll()
}

func (s *PanelSystem) updateDrag() {
	panels := ecs.GetEntitiesWith2[*components.DraggablePanelComponent, *components.UIRectComponent](s.entityManager)
	if len(panels) == 0 {
		s.dragging = false
		return
	}
	panel, _ := ecs.GetComponent[*components.UIRectComponent](s.entityManager, panels[0])

	cx, cy := float64(s.input.X), float64(s.input.Y)

	if !s.dragging {
		for _, id := range ecs.GetEntitiesWith2[*components.PanelDragAreaComponent, *components.UIComponent](s.entityManager) {
			ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
			if ui.Changed && ui.State == components.UIClicked {
				s.dragging = true
				s.dragOffX, s.dragOffY = cx-panel.X, cy-panel.Y
				break
			}
		}
	}

	if !s.input.Pressed {
		s.dragging = false
		return
	}
	if s.dragging {
		panel.X = max(cx-s.dragOffX, 0)
		panel.Y = max(cy-s.dragOffY, 0)
	}
}

func (s *PanelSystem) updateScroll() {
	if s.input.WheelY == 0 {
		return
	}
	for _, id := range ecs.GetEntitiesWith2[*components.ScrollAreaComponent, *components.UIRectComponent](s.entityManager) {
		if !pointerOver(s.entityManager, id, s.input) {
			continue
		}
		scroll, _ := ecs.GetComponent[*components.ScrollAreaComponent](s.entityManager, id)
		r, _ := ecs.GetComponent[*components.UIRectComponent](s.entityManager, id)
		// 滚轮向上为正，内容向下移动
		scroll.Offset = clampScroll(scroll.Offset-s.input.WheelY*s.lineStep, scroll.ContentHeight, r.Height)
	}
}
