// Package filepicker 提供原生文件选择对话框
//
// 对话框在独立的 goroutine 中打开，不阻塞 tick 循环；
// 选择结果通过 Chosen() 通道送达，由宿主在每个 tick 开始时取出。
package filepicker

import (
	"errors"
	"log"
	"sync/atomic"

	"github.com/sqweek/dialog"

	"github.com/decker502/modelview/pkg/viewer"
)

const (
	dialogTitle  = "Open glTF Model"
	filterLabel  = "glTF models"
	eventBufSize = 4
)

// ShowFunc 显示对话框并返回选中的路径；用户取消时返回 dialog.ErrCancelled
type ShowFunc func(startDir string) (string, error)

// Picker 原生文件选择器
type Picker struct {
	events   chan viewer.FileChosenEvent
	busy     atomic.Bool
	startDir func() string
	show     ShowFunc
}

// NewPicker 创建文件选择器
// startDir 在打开对话框时调用，返回起始目录（可为 nil）
func NewPicker(startDir func() string) *Picker {
	return newPicker(startDir, showNative)
}

func newPicker(startDir func() string, show ShowFunc) *Picker {
	if startDir == nil {
		startDir = func() string { return "" }
	}
	return &Picker{
		events:   make(chan viewer.FileChosenEvent, eventBufSize),
		startDir: startDir,
		show:     show,
	}
}

// Open 打开对话框；已有对话框打开时忽略
func (p *Picker) Open() {
	if !p.busy.CompareAndSwap(false, true) {
		log.Printf("[FilePicker] 对话框已打开，忽略重复请求")
		return
	}

	dir := p.startDir()
	go func() {
		defer p.busy.Store(false)

		path, err := p.show(dir)
		if errors.Is(err, dialog.ErrCancelled) {
			log.Printf("[FilePicker] 用户取消选择")
			return
		}
		if err != nil {
			log.Printf("[FilePicker] 打开对话框失败: %v", err)
			return
		}

		select {
		case p.events <- viewer.FileChosenEvent{Path: path}:
			log.Printf("[FilePicker] 选中文件: %s", path)
		default:
			log.Printf("[FilePicker] 事件队列已满，丢弃: %s", path)
		}
	}()
}

// Busy 对话框是否正在显示
func (p *Picker) Busy() bool {
	return p.busy.Load()
}

// Chosen 返回选择结果通道
func (p *Picker) Chosen() <-chan viewer.FileChosenEvent {
	return p.events
}

// Drain 非阻塞地取出所有已到达的选择结果
func (p *Picker) Drain() []viewer.FileChosenEvent {
	var out []viewer.FileChosenEvent
	for {
		select {
		case ev := <-p.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func showNative(startDir string) (string, error) {
	b := dialog.File().Filter(filterLabel, "gltf", "glb").Title(dialogTitle)
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	return b.Load()
}
