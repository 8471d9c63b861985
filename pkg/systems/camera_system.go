package systems

import (
	"math"

	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/utils"
)

const (
	maxPitch    = math.Pi/2 - 0.01
	minDistance = 0.1
)

// CameraSystem 轨道相机控制：拖拽旋转、滚轮缩放
// 指针位于面板上方时禁用，避免与面板拖拽和列表滚动冲突。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	input         *utils.InputState
	cfg           config.CameraConfig
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建相机系统并创建相机实体
func NewCameraSystem(em *ecs.EntityManager, input *utils.InputState, cfg config.CameraConfig) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		input:         input,
		cfg:           cfg,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Yaw:      cfg.Yaw,
		Pitch:    cfg.Pitch,
		Distance: cfg.Distance,
		Enabled:  true,
	})
	return cs
}

// Camera 返回相机组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return cam
}

// Update 更新相机
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.Camera()
	if cam == nil {
		return
	}

	cam.Enabled = !cs.pointerOverUI()
	if !cam.Enabled {
		cam.Orbiting = false
		return
	}

	if cs.input.JustPressed && cs.input.HasCursor {
		cam.Orbiting = true
		cam.LastX, cam.LastY = cs.input.X, cs.input.Y
	}
	if !cs.input.Pressed {
		cam.Orbiting = false
	}
	if cam.Orbiting {
		dx := float64(cs.input.X - cam.LastX)
		dy := float64(cs.input.Y - cam.LastY)
		cam.LastX, cam.LastY = cs.input.X, cs.input.Y

		cam.Yaw += dx * cs.cfg.Sensitivity
		cam.Pitch = math.Max(-maxPitch, math.Min(maxPitch, cam.Pitch+dy*cs.cfg.Sensitivity))
	}

	if cs.input.WheelY != 0 {
		cam.Distance = math.Max(minDistance, cam.Distance*(1-cs.input.WheelY*cs.cfg.ZoomStep))
	}
}

// pointerOverUI 指针是否悬停在面板或列表滚动区上
func (cs *CameraSystem) pointerOverUI() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.DraggablePanelComponent](cs.entityManager) {
		if pointerOver(cs.entityManager, id, cs.input) {
			return true
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ScrollAreaComponent](cs.entityManager) {
		if pointerOver(cs.entityManager, id, cs.input) {
			return true
		}
	}
	return false
}
