package systems

import (
	"image/color"

	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
)

const (
	panelPadding  = 8.0
	titleHeight   = 20.0
	buttonHeight  = 22.0
	labelHeight   = 18.0
	playButtonW   = 80.0
	panelSpacing  = 4.0
	panelTitle    = "Model Viewer"
	openButtonTxt = "Open Model..."
	listHeaderTxt = "Animations:"
)

// PanelEntities 控制面板中各元素的实体
type PanelEntities struct {
	Panel           ecs.EntityID
	DragArea        ecs.EntityID
	OpenButton      ecs.EntityID
	ModelLabel      ecs.EntityID
	PlayPauseButton ecs.EntityID
	AnimationLabel  ecs.EntityID
	List            ecs.EntityID
}

// BuildPanel 创建控制面板的实体树
//
// 标签与列表的内容由 UISyncSystem 在会话变化时填充，这里只放初始文本。
func BuildPanel(em *ecs.EntityManager, layout config.PanelConfig, colors config.ColorConfig) PanelEntities {
	var p PanelEntities
	innerW := layout.Width - 2*panelPadding

	y := 0.0
	p.Panel = em.CreateEntity()
	ecs.AddComponent(em, p.Panel, &components.DraggablePanelComponent{})
	ecs.AddComponent(em, p.Panel, &components.UIComponent{})
	ecs.AddComponent(em, p.Panel, &components.BackgroundColorComponent{Color: colors.Panel.Color()})

	p.DragArea = uiChild(em, p.Panel, 0, y, layout.Width, titleHeight)
	ecs.AddComponent(em, p.DragArea, &components.PanelDragAreaComponent{})
	ecs.AddComponent(em, p.DragArea, &components.UIComponent{})
	ecs.AddComponent(em, p.DragArea, &components.TextComponent{Text: panelTitle, Color: colors.Text.Color()})
	y += titleHeight + panelSpacing

	p.OpenButton = uiChild(em, p.Panel, panelPadding, y, innerW, buttonHeight)
	ecs.AddComponent(em, p.OpenButton, &components.OpenButtonComponent{})
	ecs.AddComponent(em, p.OpenButton, &components.UIComponent{})
	ecs.AddComponent(em, p.OpenButton, &components.BackgroundColorComponent{Color: colors.Open.Color()})
	ecs.AddComponent(em, p.OpenButton, &components.TextComponent{Text: openButtonTxt, Color: colors.Text.Color()})
	y += buttonHeight + panelSpacing

	p.ModelLabel = uiChild(em, p.Panel, panelPadding, y, innerW, labelHeight)
	ecs.AddComponent(em, p.ModelLabel, &components.ModelLabelComponent{})
	ecs.AddComponent(em, p.ModelLabel, &components.TextComponent{Text: noModelText, Color: colors.Text.Color()})
	y += labelHeight + panelSpacing

	p.PlayPauseButton = uiChild(em, p.Panel, panelPadding, y, playButtonW, buttonHeight)
	ecs.AddComponent(em, p.PlayPauseButton, &components.PlayPauseButtonComponent{})
	ecs.AddComponent(em, p.PlayPauseButton, &components.UIComponent{})
	ecs.AddComponent(em, p.PlayPauseButton, &components.BackgroundColorComponent{Color: colors.Play.Color()})
	ecs.AddComponent(em, p.PlayPauseButton, &components.TextComponent{Text: playText, Color: colors.Text.Color()})
	y += buttonHeight + panelSpacing

	p.AnimationLabel = uiChild(em, p.Panel, panelPadding, y, innerW, labelHeight)
	ecs.AddComponent(em, p.AnimationLabel, &components.AnimationLabelComponent{})
	ecs.AddComponent(em, p.AnimationLabel, &components.TextComponent{Text: noSelectionText, Color: colors.Text.Color()})
	y += labelHeight + panelSpacing

	header := uiChild(em, p.Panel, panelPadding, y, innerW, labelHeight)
	ecs.AddComponent(em, header, &components.TextComponent{Text: listHeaderTxt, Color: colors.MutedText.Color()})
	y += labelHeight

	p.List = uiChild(em, p.Panel, panelPadding, y, innerW, layout.ListHeight)
	ecs.AddComponent(em, p.List, &components.AnimationListContainerComponent{})
	ecs.AddComponent(em, p.List, &components.ScrollAreaComponent{})
	ecs.AddComponent(em, p.List, &components.UIComponent{})
	ecs.AddComponent(em, p.List, &components.BackgroundColorComponent{Color: color.RGBA{A: 60}})
	y += layout.ListHeight + panelPadding

	ecs.AddComponent(em, p.Panel, &components.UIRectComponent{X: layout.X, Y: layout.Y, Width: layout.Width, Height: y})
	return p
}

func uiChild(em *ecs.EntityManager, parent ecs.EntityID, x, y, w, h float64) ecs.EntityID {
	id := em.CreateChild(parent)
	ecs.AddComponent(em, id, &components.UIRectComponent{X: x, Y: y, Width: w, Height: h})
	return id
}
