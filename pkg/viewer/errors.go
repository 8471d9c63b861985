package viewer

import (
	"errors"
	"fmt"
)

var (
	// ErrAssetDecode 选中的文件不是可解码的场景资源
	ErrAssetDecode = errors.New("asset could not be decoded")
	// ErrNoPlaybackTarget 资源实例中始终没有出现可播放的实体
	ErrNoPlaybackTarget = errors.New("no playback target found")
)

// DiscoveryError 发现过程失败的详细信息
type DiscoveryError struct {
	Path  string
	Ticks int
	Err   error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery for %s failed after %d ticks: %v", e.Path, e.Ticks, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
