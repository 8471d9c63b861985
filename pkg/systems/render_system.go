package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/modelview/pkg/components"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/utils"
)

const (
	textInsetX = 4.0
	textInsetY = 3.0
	meshDotR   = 4.0
	nodeDotR   = 2.5
)

var (
	backgroundColor = color.RGBA{R: 40, G: 40, B: 46, A: 255}
	meshNodeColor   = color.RGBA{R: 230, G: 200, B: 90, A: 255}
	plainNodeColor  = color.RGBA{R: 140, G: 160, B: 190, A: 255}
	boneLineColor   = color.RGBA{R: 110, G: 110, B: 130, A: 255}
)

// RenderSystem 绘制场景节点原点和控制面板
//
// 场景只画出节点原点的透视投影和父子连线，用于确认实例化结果和相机操作；
// 面板按实体树先序绘制，滚动区内的元素裁剪到滚动区。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraSystem
	fov           float64
	face          text.Face
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, camera *CameraSystem, cfg config.CameraConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		fov:           cfg.FOV,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.drawScene(screen)
	s.drawUI(screen)
}

func (s *RenderSystem) drawScene(screen *ebiten.Image) {
	cam := s.camera.Camera()
	if cam == nil {
		return
	}
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	for _, id := range ecs.GetEntitiesWith1[*components.SceneNodeComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		node, _ := ecs.GetComponent[*components.SceneNodeComponent](s.entityManager, id)
		pos := s.worldPosition(id)
		x, y, ok := projectPoint(cam, pos, w, h, s.fov)
		if !ok {
			continue
		}

		if parent, has := s.entityManager.Parent(id); has && ecs.HasComponent[*components.SceneNodeComponent](s.entityManager, parent) {
			if px, py, pok := projectPoint(cam, s.worldPosition(parent), w, h, s.fov); pok {
				vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 1, boneLineColor, true)
			}
		}

		if node.HasMesh {
			vector.DrawFilledCircle(screen, float32(x), float32(y), meshDotR, meshNodeColor, true)
		} else {
			vector.DrawFilledCircle(screen, float32(x), float32(y), nodeDotR, plainNodeColor, true)
		}
	}
}

// worldPosition 沿父链累加节点平移（不含旋转与缩放）
func (s *RenderSystem) worldPosition(id ecs.EntityID) [3]float64 {
	var p [3]float64
	for {
		node, ok := ecs.GetComponent[*components.SceneNodeComponent](s.entityManager, id)
		if !ok {
			return p
		}
		p[0] += node.Translation[0]
		p[1] += node.Translation[1]
		p[2] += node.Translation[2]

		parent, has := s.entityManager.Parent(id)
		if !has {
			return p
		}
		id = parent
	}
}

func (s *RenderSystem) drawUI(screen *ebiten.Image) {
	panels := ecs.GetEntitiesWith1[*components.DraggablePanelComponent](s.entityManager)
	sort.Slice(panels, func(i, j int) bool { return panels[i] < panels[j] })

	for _, panel := range panels {
		s.entityManager.Walk(panel, func(id ecs.EntityID) bool {
			s.drawElement(screen, id)
			return false
		})
	}
}

func (s *RenderSystem) drawElement(screen *ebiten.Image, id ecs.EntityID) {
	if !s.entityManager.IsAlive(id) {
		return
	}
	rect, visible, ok := uiLayout(s.entityManager, id)
	if !ok || visible.Empty() {
		return
	}
	dst := clipTo(screen, visible)

	if bg, ok := ecs.GetComponent[*components.BackgroundColorComponent](s.entityManager, id); ok && bg.Color.A > 0 {
		vector.DrawFilledRect(dst, float32(visible.X), float32(visible.Y), float32(visible.W), float32(visible.H), bg.Color, false)
	}

	if txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok && txt.Text != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(rect.X+textInsetX, rect.Y+textInsetY)
		op.ColorScale.ScaleWithColor(txt.Color)
		text.Draw(dst, txt.Text, s.face, op)
	}
}

// clipTo 返回裁剪到 r 的子图像；子图像保持原坐标系
func clipTo(screen *ebiten.Image, r utils.Rect) *ebiten.Image {
	bounds := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H)),
	)
	return screen.SubImage(bounds).(*ebiten.Image)
}

// projectPoint 把世界坐标透视投影到屏幕
// 相机位于观察中心外 Distance 处，先绕 Y 轴转 Yaw，再绕 X 轴转 Pitch。
// 点位于相机后方时返回 false。
func projectPoint(cam *components.CameraComponent, p [3]float64, width, height, fov float64) (x, y float64, ok bool) {
	vx := p[0] - cam.Target[0]
	vy := p[1] - cam.Target[1]
	vz := p[2] - cam.Target[2]

	sinYaw, cosYaw := math.Sincos(cam.Yaw)
	x1 := vx*cosYaw - vz*sinYaw
	z1 := vx*sinYaw + vz*cosYaw

	sinPitch, cosPitch := math.Sincos(cam.Pitch)
	y2 := vy*cosPitch - z1*sinPitch
	z2 := vy*sinPitch + z1*cosPitch

	depth := cam.Distance - z2
	if depth <= 0.01 {
		return 0, 0, false
	}
	return width/2 + fov*x1/depth, height/2 - fov*y2/depth, true
}
