// modelview 预览 glTF 模型并浏览、播放其中的动画
//
// 用法：
//
//	go run . --model=models/fox.glb --config=viewer.yaml --verbose
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/modelview/pkg/app"
)

var (
	configPath = flag.String("config", "", "配置文件路径（.yaml / .toml）")
	modelPath  = flag.String("model", "", "启动时加载的模型文件（.gltf / .glb）")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		ModelPath:  *modelPath,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	viewer.ConfigureWindow()
	log.Println("=== 启动完成，开始运行 ===")

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
