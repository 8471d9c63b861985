package scenes

import (
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/ecs"
	"github.com/decker502/modelview/pkg/systems"
	"github.com/decker502/modelview/pkg/utils"
	"github.com/decker502/modelview/pkg/viewer"
)

// AssetServer 异步加载并解析资源
type AssetServer interface {
	systems.AssetLoader
	asset.Resolver
}

// FilePicker 文件选择器：Open 打开对话框，Drain 非阻塞地取出选择结果
type FilePicker interface {
	Open()
	Drain() []viewer.FileChosenEvent
}

// DirectoryPrefs 记录上次选择文件的目录
type DirectoryPrefs interface {
	SetLastDirectory(dir string)
}

// ViewerDeps ViewerScene 的外部依赖
type ViewerDeps struct {
	Config *config.ViewerConfig
	Assets AssetServer
	// Picker 可为 nil（没有文件对话框，只能通过 RequestLoad 加载）
	Picker FilePicker
	// Prefs 可为 nil
	Prefs DirectoryPrefs
	// ReadInput 每个 tick 读取一次输入；nil 时使用 utils.GetInputState
	ReadInput func() utils.InputState
}

// ViewerScene 模型与动画预览场景
//
// 每个 tick 按固定顺序运行各系统：
// 文件事件 → 交互 → 加载 → 实例化 → 发现 → 播放 → UI 同步 → 面板/相机 → 清理。
type ViewerScene struct {
	entityManager *ecs.EntityManager
	session       *viewer.Session
	events        *viewer.EventQueue
	assets        AssetServer
	picker        FilePicker
	prefs         DirectoryPrefs

	input     utils.InputState
	readInput func() utils.InputState

	panel systems.PanelEntities

	interactionSystem     *systems.InteractionSystem
	modelLoadSystem       *systems.ModelLoadSystem
	sceneSpawnSystem      *systems.SceneSpawnSystem
	discoverySystem       *systems.DiscoverySystem
	playbackSystem        *systems.PlaybackSystem
	animationPlayerSystem *systems.AnimationPlayerSystem
	uiSyncSystem          *systems.UISyncSystem
	panelSystem           *systems.PanelSystem
	cameraSystem          *systems.CameraSystem
	renderSystem          *systems.RenderSystem
}

// NewViewerScene 创建预览场景并构建控制面板
func NewViewerScene(deps ViewerDeps) *ViewerScene {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultViewerConfig()
	}

	s := &ViewerScene{
		entityManager: ecs.NewEntityManager(),
		session:       viewer.NewSession(),
		events:        &viewer.EventQueue{},
		assets:        deps.Assets,
		picker:        deps.Picker,
		prefs:         deps.Prefs,
		readInput:     deps.ReadInput,
	}
	if s.readInput == nil {
		s.readInput = utils.GetInputState
	}

	s.panel = systems.BuildPanel(s.entityManager, cfg.Panel, cfg.Colors)

	var opener systems.FileDialogOpener
	if s.picker != nil {
		opener = s.picker
	}
	s.interactionSystem = systems.NewInteractionSystem(s.entityManager, s.session, &s.input, opener, cfg.Colors)
	s.modelLoadSystem = systems.NewModelLoadSystem(s.entityManager, s.session, s.events, s.assets)
	s.sceneSpawnSystem = systems.NewSceneSpawnSystem(s.entityManager, s.assets, cfg.Streaming.NodesPerTick)
	s.discoverySystem = systems.NewDiscoverySystem(s.entityManager, s.session, s.assets, cfg.Discovery)
	s.playbackSystem = systems.NewPlaybackSystem(s.entityManager, s.session)
	s.animationPlayerSystem = systems.NewAnimationPlayerSystem(s.entityManager)
	s.uiSyncSystem = systems.NewUISyncSystem(s.entityManager, s.session, cfg.Panel, cfg.Colors)
	s.panelSystem = systems.NewPanelSystem(s.entityManager, &s.input, cfg.Panel.LineStep)
	s.cameraSystem = systems.NewCameraSystem(s.entityManager, &s.input, cfg.Camera)
	s.renderSystem = systems.NewRenderSystem(s.entityManager, s.cameraSystem, cfg.Camera)

	log.Printf("[ViewerScene] 场景已创建")
	return s
}

// RequestLoad 请求加载模型，与文件对话框选中文件等效
func (s *ViewerScene) RequestLoad(path string) {
	s.events.PushFileChosen(viewer.FileChosenEvent{Path: path})
}

// Session 返回会话（只读使用）
func (s *ViewerScene) Session() *viewer.Session {
	return s.session
}

// DiscoveryState 返回发现状态机的当前状态
func (s *ViewerScene) DiscoveryState() systems.DiscoveryState {
	return s.discoverySystem.State()
}

// EntityManager 返回场景的实体管理器
func (s *ViewerScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Panel 返回控制面板实体
func (s *ViewerScene) Panel() systems.PanelEntities {
	return s.panel
}

// Update 运行一个 tick
func (s *ViewerScene) Update(deltaTime float64) {
	s.input = s.readInput()
	s.drainPicker()

	s.interactionSystem.Update(deltaTime)
	s.modelLoadSystem.Update(deltaTime)
	s.sceneSpawnSystem.Update(deltaTime)
	s.discoverySystem.Update(deltaTime)
	s.playbackSystem.Update(deltaTime)
	s.animationPlayerSystem.Update(deltaTime)
	s.uiSyncSystem.Update(deltaTime)
	s.panelSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// drainPicker 取出文件对话框的结果并记住所在目录
func (s *ViewerScene) drainPicker() {
	if s.picker == nil {
		return
	}
	for _, ev := range s.picker.Drain() {
		if s.prefs != nil {
			s.prefs.SetLastDirectory(filepath.Dir(ev.Path))
		}
		s.events.PushFileChosen(ev)
	}
}

// Draw 绘制场景
func (s *ViewerScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
}

// Close 放弃当前资源
func (s *ViewerScene) Close() {
	if h := s.session.AssetHandle(); h.IsValid() {
		s.assets.Forget(h)
	}
	log.Printf("[ViewerScene] 场景已关闭")
}
