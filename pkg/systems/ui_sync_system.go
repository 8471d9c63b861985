package systems

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/viewer"
)

const (
	noModelText      = "No model loaded"
	noSelectionText  = "Selected: None"
	noAnimationsText = "No animations"
	playText         = "Play"
	pauseText        = "Pause"
)

// UISyncSystem 在会话变化时重建动画列表与标签
//
// 只在会话 Revision 与上次观察到的不同时执行；列表每次都整体替换。
// UI 元素尚未创建时跳过本次重建，等待下一次会话变化。
type UISyncSystem struct {
	entityManager *ecs.EntityManager
	session       *viewer.Session
	colors        config.ColorConfig
	rowHeight     float64

	lastRevision uint64
	rebuilds     int
}

// NewUISyncSystem 创建 UI 同步系统
func NewUISyncSystem(em *ecs.EntityManager, session *viewer.Session, layout config.PanelConfig, colors config.ColorConfig) *UISyncSystem {
	return &UISyncSystem{
		entityManager: em,
		session:       session,
		colors:        colors,
		rowHeight:     layout.RowHeight,
	}
}

// Rebuilds 返回已执行的重建次数
func (s *UISyncSystem) Rebuilds() int {
	return s.rebuilds
}

// Update 检查会话变化并重建 UI
func (s *UISyncSystem) Update(dt float64) {
	rev := s.session.Revision()
	if rev == s.lastRevision {
		return
	}
	s.lastRevision = rev
	s.rebuilds++

	s.rebuildList()
	s.rebuildLabels()
}

func (s *UISyncSystem) rebuildList() {
	containers := ecs.GetEntitiesWith1[*components.AnimationListContainerComponent](s.entityManager)
	if len(containers) != 1 {
		return
	}
	list := containers[0]

	for _, id := range ecs.GetEntitiesWith1[*components.AnimationListItemComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.NoAnimationsTextComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}

	width := 0.0
	if r, ok := ecs.GetComponent[*components.UIRectComponent](s.entityManager, list); ok {
		width = r.Width
	}

	count := s.session.AnimationCount()
	if count == 0 {
		placeholder := uiChild(s.entityManager, list, 0, 0, width, s.rowHeight)
		ecs.AddComponent(s.entityManager, placeholder, &components.NoAnimationsTextComponent{})
		ecs.AddComponent(s.entityManager, placeholder, &components.TextComponent{
			Text:  noAnimationsText,
			Color: s.colors.MutedText.Color(),
		})
		s.updateScrollArea(list, s.rowHeight)
		return
	}

	selection := s.session.Selection()
	for i := 0; i < count; i++ {
		entry, _ := s.session.AnimationAt(i)
		row := uiChild(s.entityManager, list, 0, float64(i)*s.rowHeight, width, s.rowHeight)
		bg, fg := s.rowColors(i == selection)
		ecs.AddComponent(s.entityManager, row, &components.AnimationListItemComponent{Index: i})
		ecs.AddComponent(s.entityManager, row, &components.UIComponent{})
		ecs.AddComponent(s.entityManager, row, &components.BackgroundColorComponent{Color: bg})
		ecs.AddComponent(s.entityManager, row, &components.TextComponent{Text: entry.Name, Color: fg})
	}
	s.updateScrollArea(list, float64(count)*s.rowHeight)
}

// rowColors 返回列表行的背景色与文字色
func (s *UISyncSystem) rowColors(selected bool) (bg, fg color.RGBA) {
	if selected {
		return s.colors.SelectedRow.Color(), s.colors.Text.Color()
	}
	return color.RGBA{}, s.colors.UnselectedRow.Color()
}

// updateScrollArea 记录内容高度并把滚动偏移限制在新内容范围内
func (s *UISyncSystem) updateScrollArea(list ecs.EntityID, contentHeight float64) {
	scroll, ok := ecs.GetComponent[*components.ScrollAreaComponent](s.entityManager, list)
	if !ok {
		return
	}
	scroll.ContentHeight = contentHeight
	viewport := 0.0
	if r, ok := ecs.GetComponent[*components.UIRectComponent](s.entityManager, list); ok {
		viewport = r.Height
	}
	scroll.Offset = clampScroll(scroll.Offset, contentHeight, viewport)
}

func (s *UISyncSystem) rebuildLabels() {
	for _, id := range ecs.GetEntitiesWith2[*components.ModelLabelComponent, *components.TextComponent](s.entityManager) {
		text, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
		text.Text = modelLabelText(s.session)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.AnimationLabelComponent, *components.TextComponent](s.entityManager) {
		text, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
		if entry, ok := s.session.SelectedAnimation(); ok {
			text.Text = "Selected: " + entry.Name
		} else {
			text.Text = noSelectionText
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.PlayPauseButtonComponent](s.entityManager) {
		if text, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
			if s.session.Playing() {
				text.Text = pauseText
			} else {
				text.Text = playText
			}
		}
		if bg, ok := ecs.GetComponent[*components.BackgroundColorComponent](s.entityManager, id); ok {
			hovered := false
			if ui, ok := ecs.GetComponent[*components.UIComponent](s.entityManager, id); ok {
				hovered = ui.State != components.UINormal
			}
			bg.Color = playPauseColor(s.colors, s.session.Playing(), hovered)
		}
	}
}

func modelLabelText(session *viewer.Session) string {
	name, ok := session.AssetFileName()
	if !ok {
		return noModelText
	}
	switch err := session.Err(); {
	case err == nil:
		return "Model: " + name
	case errors.Is(err, viewer.ErrAssetDecode):
		return fmt.Sprintf("Model: %s (decode failed)", name)
	case errors.Is(err, viewer.ErrNoPlaybackTarget):
		return fmt.Sprintf("Model: %s (no playback target)", name)
	default:
		return fmt.Sprintf("Model: %s (%v)", name, err)
	}
}

// playPauseColor 播放/暂停按钮的背景色：播放中显示"暂停"配色
func playPauseColor(colors config.ColorConfig, playing, hovered bool) color.RGBA {
	switch {
	case playing && hovered:
		return colors.PauseHover.Color()
	case playing:
		return colors.Pause.Color()
	case hovered:
		return colors.PlayHover.Color()
	default:
		return colors.Play.Color()
	}
}

// clampScroll 把滚动偏移限制在 [0, contentHeight-viewport]
func clampScroll(offset, contentHeight, viewport float64) float64 {
	maxOffset := contentHeight - viewport
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
