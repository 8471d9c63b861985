package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an application scene (e.g., the model viewer).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update runs one tick of the scene logic.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换或程序退出时调用 Close 释放资源
//
// 实现此接口的场景会在以下时机被调用：
//   - SceneManager.SwitchTo 切换到其他场景
//   - SceneManager.Close（窗口关闭）
type Closer interface {
	Close()
}
