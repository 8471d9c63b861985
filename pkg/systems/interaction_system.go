package systems

import (
	"image/color"
	"log"
	"sort"

	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/utils"
	"github.com/decker502/modelview/pkg/viewer"
)

// FileDialogOpener 打开文件选择对话框；结果通过事件异步送达
type FileDialogOpener interface {
	Open()
}

// InteractionSystem 跟踪 UI 元素的指针交互状态，并把按钮和列表行的点击转为用户意图
//
// 只处理本 tick 状态发生变化的元素，按住不放不会重复触发。
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	session       *viewer.Session
	input         *utils.InputState
	picker        FileDialogOpener
	colors        config.ColorConfig
}

// NewInteractionSystem 创建交互系统
// input 由宿主每个 tick 更新；picker 为 nil 时忽略"打开"按钮
func NewInteractionSystem(em *ecs.EntityManager, session *viewer.Session, input *utils.InputState, picker FileDialogOpener, colors config.ColorConfig) *InteractionSystem {
	return &InteractionSystem{
		entityManager: em,
		session:       session,
		input:         input,
		picker:        picker,
		colors:        colors,
	}
}

// Update 更新交互状态并处理点击
func (s *InteractionSystem) Update(dt float64) {
	s.updateStates()
	s.handleOpenButton()
	s.handlePlayPause()
	s.handleListItems()
}

func (s *InteractionSystem) updateStates() {
	ids := ecs.GetEntitiesWith2[*components.UIComponent, *components.UIRectComponent](s.entityManager)
	for _, id := range ids {
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		if !s.entityManager.IsAlive(id) {
			ui.Changed = false
			continue
		}

		hovered := pointerOver(s.entityManager, id, s.input)
		next := components.UINormal
		switch {
		case hovered && s.input.JustPressed:
			next = components.UIClicked
		case ui.State == components.UIClicked && s.input.Pressed:
			next = components.UIClicked
		case hovered:
			next = components.UIHovered
		}

		ui.Changed = next != ui.State
		ui.State = next
	}
}

// changed 返回本 tick 交互状态变化的实体，按 ID 排序
func (s *InteractionSystem) changed(marker func(ecs.EntityID) bool) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.UIComponent](s.entityManager) {
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		if ui.Changed && marker(id) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *InteractionSystem) handleOpenButton() {
	ids := s.changed(func(id ecs.EntityID) bool {
		return ecs.HasComponent[*components.OpenButtonComponent](s.entityManager, id)
	})
	for _, id := range ids {
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		bg, hasBg := ecs.GetComponent[*components.BackgroundColorComponent](s.entityManager, id)

		switch ui.State {
		case components.UIClicked:
			if hasBg {
				bg.Color = s.colors.OpenPressed.Color()
			}
			if s.picker != nil {
				log.Printf("[InteractionSystem] 打开文件选择对话框")
				s.picker.Open()
			}
		case components.UIHovered:
			if hasBg {
				bg.Color = s.colors.OpenHover.Color()
			}
		default:
			if hasBg {
				bg.Color = s.colors.Open.Color()
			}
		}
	}
}

func (s *InteractionSystem) handlePlayPause() {
	ids := s.changed(func(id ecs.EntityID) bool {
		return ecs.HasComponent[*components.PlayPauseButtonComponent](s.entityManager, id)
	})
	for _, id := range ids {
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		if ui.State == components.UIClicked {
			s.session.TogglePlaying()
		}
		if bg, ok := ecs.GetComponent[*components.BackgroundColorComponent](s.entityManager, id); ok {
			bg.Color = playPauseColor(s.colors, s.session.Playing(), ui.State != components.UINormal)
		}
	}
}

func (s *InteractionSystem) handleListItems() {
	ids := s.changed(func(id ecs.EntityID) bool {
		return ecs.HasComponent[*components.AnimationListItemComponent](s.entityManager, id)
	})
	for _, id := range ids {
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		item, _ := ecs.GetComponent[*components.AnimationListItemComponent](s.entityManager, id)
		bg, hasBg := ecs.GetComponent[*components.BackgroundColorComponent](s.entityManager, id)

		switch ui.State {
		case components.UIClicked:
			if s.session.Select(item.Index) {
				log.Printf("[InteractionSystem] 选中动画 %d", item.Index)
			}
		case components.UIHovered:
			if hasBg {
				bg.Color = s.colors.HoveredRow.Color()
			}
		default:
			if hasBg {
				if item.Index == s.session.Selection() {
					bg.Color = s.colors.SelectedRow.Color()
				} else {
					bg.Color = color.RGBA{}
				}
			}
		}
	}
}
