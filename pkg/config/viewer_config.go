package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量覆盖的前缀，如 MODELVIEW_WINDOW_WIDTH
const EnvPrefix = "MODELVIEW_"

// ViewerConfig 预览器完整配置
type ViewerConfig struct {
	Verbose   bool            `yaml:"verbose" toml:"verbose" env:"VERBOSE"`
	Window    WindowConfig    `yaml:"window" toml:"window" envPrefix:"WINDOW_"`
	Panel     PanelConfig     `yaml:"panel" toml:"panel" envPrefix:"PANEL_"`
	Camera    CameraConfig    `yaml:"camera" toml:"camera" envPrefix:"CAMERA_"`
	Streaming StreamingConfig `yaml:"streaming" toml:"streaming" envPrefix:"STREAMING_"`
	Discovery DiscoveryConfig `yaml:"discovery" toml:"discovery" envPrefix:"DISCOVERY_"`
	Colors    ColorConfig     `yaml:"colors" toml:"colors"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width" toml:"width" env:"WIDTH"`
	Height int    `yaml:"height" toml:"height" env:"HEIGHT"`
	Title  string `yaml:"title" toml:"title" env:"TITLE"`
	// TPS 每秒 tick 数
	TPS int `yaml:"tps" toml:"tps" env:"TPS"`
}

// PanelConfig 控制面板布局
type PanelConfig struct {
	X          float64 `yaml:"x" toml:"x" env:"X"`
	Y          float64 `yaml:"y" toml:"y" env:"Y"`
	Width      float64 `yaml:"width" toml:"width" env:"WIDTH"`
	RowHeight  float64 `yaml:"row_height" toml:"row_height" env:"ROW_HEIGHT"`
	ListHeight float64 `yaml:"list_height" toml:"list_height" env:"LIST_HEIGHT"`
	// LineStep 滚轮一行对应的像素
	LineStep float64 `yaml:"line_step" toml:"line_step" env:"LINE_STEP"`
}

// CameraConfig 轨道相机配置
type CameraConfig struct {
	Distance float64 `yaml:"distance" toml:"distance" env:"DISTANCE"`
	// Yaw, Pitch 初始角度（弧度）
	Yaw   float64 `yaml:"yaw" toml:"yaw" env:"YAW"`
	Pitch float64 `yaml:"pitch" toml:"pitch" env:"PITCH"`
	// Sensitivity 拖拽旋转灵敏度（弧度/像素）
	Sensitivity float64 `yaml:"sensitivity" toml:"sensitivity" env:"SENSITIVITY"`
	// ZoomStep 每行滚轮的缩放比例
	ZoomStep float64 `yaml:"zoom_step" toml:"zoom_step" env:"ZOOM_STEP"`
	// FOV 投影焦距（像素）
	FOV float64 `yaml:"fov" toml:"fov" env:"FOV"`
}

// StreamingConfig 场景实例化配置
type StreamingConfig struct {
	// NodesPerTick 每个 tick 最多实例化的节点数
	NodesPerTick int `yaml:"nodes_per_tick" toml:"nodes_per_tick" env:"NODES_PER_TICK"`
}

// DiscoveryConfig 播放目标发现的失败策略
//
// 默认值保持"无限重试"：解码失败与找不到播放目标都不会上报。
type DiscoveryConfig struct {
	// TimeoutTicks 超过该 tick 数仍未完成则判定失败，0 表示永不超时
	TimeoutTicks int `yaml:"timeout_ticks" toml:"timeout_ticks" env:"TIMEOUT_TICKS"`
	// SurfaceDecodeErrors 资源解码失败时立即终止发现并上报
	SurfaceDecodeErrors bool `yaml:"surface_decode_errors" toml:"surface_decode_errors" env:"SURFACE_DECODE_ERRORS"`
}

// RGBA 以 [r, g, b, a] 形式配置的颜色
type RGBA [4]uint8

// Color 转换为 color.RGBA
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// ColorConfig 面板配色
type ColorConfig struct {
	Panel         RGBA `yaml:"panel" toml:"panel"`
	SelectedRow   RGBA `yaml:"selected_row" toml:"selected_row"`
	HoveredRow    RGBA `yaml:"hovered_row" toml:"hovered_row"`
	Play          RGBA `yaml:"play" toml:"play"`
	PlayHover     RGBA `yaml:"play_hover" toml:"play_hover"`
	Pause         RGBA `yaml:"pause" toml:"pause"`
	PauseHover    RGBA `yaml:"pause_hover" toml:"pause_hover"`
	Open          RGBA `yaml:"open" toml:"open"`
	OpenHover     RGBA `yaml:"open_hover" toml:"open_hover"`
	OpenPressed   RGBA `yaml:"open_pressed" toml:"open_pressed"`
	Text          RGBA `yaml:"text" toml:"text"`
	MutedText     RGBA `yaml:"muted_text" toml:"muted_text"`
	UnselectedRow RGBA `yaml:"unselected_text" toml:"unselected_text"`
}

// DefaultViewerConfig 返回默认配置
func DefaultViewerConfig() *ViewerConfig {
	cfg := &ViewerConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadViewerConfig 加载配置：文件（按扩展名选择 YAML 或 TOML）→ 默认值 → 环境变量
// path 为空时只使用默认值和环境变量
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	cfg := &ViewerConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := decodeConfig(path, data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(path string, data []byte, cfg *ViewerConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// Validate 检查配置取值
func (c *ViewerConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Streaming.NodesPerTick <= 0 {
		return fmt.Errorf("streaming.nodes_per_tick must be positive, got %d", c.Streaming.NodesPerTick)
	}
	if c.Discovery.TimeoutTicks < 0 {
		return fmt.Errorf("discovery.timeout_ticks must not be negative, got %d", c.Discovery.TimeoutTicks)
	}
	return nil
}

func (c *ViewerConfig) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height == 0 {
		c.Window.Height = 720
	}
	if c.Window.Title == "" {
		c.Window.Title = "GLTF Model & Animation Preview"
	}
	if c.Window.TPS == 0 {
		c.Window.TPS = 60
	}

	if c.Panel.X == 0 && c.Panel.Y == 0 {
		c.Panel.X, c.Panel.Y = 10, 10
	}
	if c.Panel.Width == 0 {
		c.Panel.Width = 220
	}
	if c.Panel.RowHeight == 0 {
		c.Panel.RowHeight = 18
	}
	if c.Panel.ListHeight == 0 {
		c.Panel.ListHeight = 200
	}
	if c.Panel.LineStep == 0 {
		c.Panel.LineStep = 20
	}

	if c.Camera.Distance == 0 {
		c.Camera.Distance = 5
	}
	if c.Camera.Pitch == 0 {
		c.Camera.Pitch = 0.35
	}
	if c.Camera.Sensitivity == 0 {
		c.Camera.Sensitivity = 0.01
	}
	if c.Camera.ZoomStep == 0 {
		c.Camera.ZoomStep = 0.1
	}
	if c.Camera.FOV == 0 {
		c.Camera.FOV = 600
	}

	if c.Streaming.NodesPerTick == 0 {
		c.Streaming.NodesPerTick = 8
	}

	c.Colors.applyDefaults()
}

func (c *ColorConfig) applyDefaults() {
	set := func(dst *RGBA, v RGBA) {
		if *dst == (RGBA{}) {
			*dst = v
		}
	}
	set(&c.Panel, RGBA{26, 26, 31, 230})
	set(&c.SelectedRow, RGBA{51, 89, 128, 255})
	set(&c.HoveredRow, RGBA{77, 77, 128, 255})
	set(&c.Play, RGBA{51, 115, 51, 255})
	set(&c.PlayHover, RGBA{77, 153, 77, 255})
	set(&c.Pause, RGBA{128, 51, 51, 255})
	set(&c.PauseHover, RGBA{179, 77, 77, 255})
	set(&c.Open, RGBA{64, 64, 140, 255})
	set(&c.OpenHover, RGBA{102, 102, 204, 255})
	set(&c.OpenPressed, RGBA{51, 51, 128, 255})
	set(&c.Text, RGBA{255, 255, 255, 255})
	set(&c.MutedText, RGBA{102, 102, 102, 255})
	set(&c.UnselectedRow, RGBA{191, 191, 191, 255})
}
