package app

import (
	"image"
	"image/color"
)

var (
	iconBackground = color.RGBA{R: 40, G: 40, B: 46, A: 255}
	iconEdge       = color.RGBA{R: 230, G: 200, B: 90, A: 255}
	iconFace       = color.RGBA{R: 64, G: 64, B: 140, A: 255}
)

// iconSizes 窗口图标尺寸，系统从中挑选最合适的一个
var iconSizes = []int{16, 32, 48}

// WindowIcons 生成窗口图标：深色底上的一个菱形（立方体正视轮廓）
func WindowIcons() []image.Image {
	icons := make([]image.Image, 0, len(iconSizes))
	for _, size := range iconSizes {
		icons = append(icons, drawIcon(size))
	}
	return icons
}

func drawIcon(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	r := c - float64(size)/8
	edge := float64(size) / 16
	if edge < 1 {
		edge = 1
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := abs(float64(x)-c) + abs(float64(y)-c)
			switch {
			case d <= r-edge:
				img.SetRGBA(x, y, iconFace)
			case d <= r:
				img.SetRGBA(x, y, iconEdge)
			default:
				img.SetRGBA(x, y, iconBackground)
			}
		}
	}
	return img
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
