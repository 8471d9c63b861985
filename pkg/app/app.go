// Package app 提供预览器应用的核心包装器
//
// 该包把初始化逻辑从 main 包中提取出来：加载配置、设置日志、
// 创建资源服务器、文件选择器和预览场景，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/config"
	"github.com/decker502/modelview/pkg/filepicker"
	"github.com/decker502/modelview/pkg/game"
	"github.com/decker502/modelview/pkg/prefs"
	"github.com/decker502/modelview/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出（配置文件中的 verbose 也会启用）
	Verbose bool
	// ConfigPath 配置文件路径（.yaml / .yml / .toml），为空则使用默认配置
	ConfigPath string
	// ModelPath 启动时预加载的模型，为空则等待用户打开
	ModelPath string
}

// App 是预览器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	viewerConfig *config.ViewerConfig
	assets       *asset.Server
	verbose      bool
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	viewerConfig, err := config.LoadViewerConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	verbose := cfg.Verbose || viewerConfig.Verbose
	if verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	} else {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.ConfigPath != "" {
		log.Printf("[Config] 加载配置文件: %s", cfg.ConfigPath)
	}

	store := prefs.Open()
	assets := asset.NewServer(nil)
	picker := filepicker.NewPicker(store.LastDirectory)

	viewerScene := scenes.NewViewerScene(scenes.ViewerDeps{
		Config: viewerConfig,
		Assets: assets,
		Picker: picker,
		Prefs:  store,
	})
	if cfg.ModelPath != "" {
		log.Printf("[App] 预加载模型: %s", cfg.ModelPath)
		viewerScene.RequestLoad(cfg.ModelPath)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(viewerScene)

	return &App{
		sceneManager: sceneManager,
		viewerConfig: viewerConfig,
		assets:       assets,
		verbose:      verbose,
	}, nil
}

// ConfigureWindow 按配置设置窗口（需在 ebiten.RunGame 之前调用）
func (a *App) ConfigureWindow() {
	w := a.viewerConfig.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowIcon(WindowIcons())
	ebiten.SetTPS(w.TPS)
	ebiten.SetWindowClosingHandled(true)
	log.Printf("[App] 窗口配置: %dx%d @ %d TPS", w.Width, w.Height, w.TPS)
}

// Update 运行一个 tick
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(a.viewerConfig.Window.TPS))
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑尺寸跟随窗口尺寸，面板保持像素大小
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Close 关闭当前场景
func (a *App) Close() {
	a.sceneManager.Close()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
