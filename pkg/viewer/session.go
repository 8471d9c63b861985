// Package viewer 定义预览器的会话状态 Session 及用户意图事件
//
// Session 是预览器唯一的可变状态源。字段归属：
//   - ModelLoadSystem：BeginLoad（整体重置并写入新资源）
//   - DiscoverySystem：CompleteDiscovery / FailDiscovery（每个加载周期只写一次）
//   - InteractionSystem：Select / TogglePlaying（用户意图）
//
// 其他系统只读。每次修改都会递增 Revision，UISyncSystem 据此做变更门控。
package viewer

import (
	"path/filepath"

	"github.com/decker502/modelview/pkg/animation"
	"github.com/decker502/modelview/pkg/asset"
	"github.com/decker502/modelview/pkg/ecs"
)

// AnimationEntry 动画索引中的一项：显示名与图中的剪辑节点
type AnimationEntry struct {
	Name string
	Clip animation.NodeIndex
}

// Session 预览器会话状态
type Session struct {
	assetPath   string
	modelRef    ecs.EntityID
	playerRef   ecs.EntityID
	assetHandle asset.Handle

	animations    []AnimationEntry
	discoveryDone bool
	err           error

	selection int
	playing   bool

	revision uint64
}

// NewSession 创建空会话
// 新会话的 Revision 为 1，视为"刚刚变更"
func NewSession() *Session {
	return &Session{revision: 1}
}

func (s *Session) touch() {
	s.revision++
}

// Revision 返回修改计数，每次修改递增
func (s *Session) Revision() uint64 {
	return s.revision
}

// AssetPath 返回最近一次请求加载的路径
func (s *Session) AssetPath() (string, bool) {
	return s.assetPath, s.assetPath != ""
}

// AssetFileName 返回资源的文件名部分
func (s *Session) AssetFileName() (string, bool) {
	if s.assetPath == "" {
		return "", false
	}
	return filepath.Base(s.assetPath), true
}

// ModelRef 返回当前场景实例的根实体（拥有引用）
func (s *Session) ModelRef() (ecs.EntityID, bool) {
	return s.modelRef, s.modelRef != 0
}

// PlayerRef 返回发现的播放目标实体
func (s *Session) PlayerRef() (ecs.EntityID, bool) {
	return s.playerRef, s.playerRef != 0
}

// AssetHandle 返回当前资源句柄（非拥有，仅用于轮询）
func (s *Session) AssetHandle() asset.Handle {
	return s.assetHandle
}

// AnimationCount 返回动画索引长度
func (s *Session) AnimationCount() int {
	return len(s.animations)
}

// AnimationAt 返回动画索引第 i 项
func (s *Session) AnimationAt(i int) (AnimationEntry, bool) {
	if i < 0 || i >= len(s.animations) {
		return AnimationEntry{}, false
	}
	return s.animations[i], true
}

// AnimationNames 返回动画名列表（副本）
func (s *Session) AnimationNames() []string {
	names := make([]string, len(s.animations))
	for i, e := range s.animations {
		names[i] = e.Name
	}
	return names
}

// DiscoveryDone 发现过程是否已找到播放目标
func (s *Session) DiscoveryDone() bool {
	return s.discoveryDone
}

// Err 返回发现过程的失败原因（仅在启用超时或错误上报时出现）
func (s *Session) Err() error {
	return s.err
}

// Resolved 当前加载周期的发现过程是否已终止（成功或失败）
func (s *Session) Resolved() bool {
	return s.discoveryDone || len(s.animations) > 0 || s.err != nil
}

// Selection 返回选中的动画索引
func (s *Session) Selection() int {
	return s.selection
}

// SelectedAnimation 返回选中的动画项
func (s *Session) SelectedAnimation() (AnimationEntry, bool) {
	return s.AnimationAt(s.selection)
}

// Playing 返回用户的播放意图
func (s *Session) Playing() bool {
	return s.playing
}

// BeginLoad 以新资源整体重置会话
// 调用方负责在此之前释放旧的 model 实体
func (s *Session) BeginLoad(path string, handle asset.Handle, model ecs.EntityID) {
	*s = Session{
		assetPath:   path,
		assetHandle: handle,
		modelRef:    model,
		revision:    s.revision,
	}
	s.touch()
}

// CompleteDiscovery 记录发现结果，每个加载周期只生效一次
// entries 非空时开始播放第一个动画
func (s *Session) CompleteDiscovery(player ecs.EntityID, entries []AnimationEntry) bool {
	if s.Resolved() {
		return false
	}
	s.playerRef = player
	s.discoveryDone = true
	if len(entries) > 0 {
		s.animations = append([]AnimationEntry(nil), entries...)
		s.selection = 0
		s.playing = true
	}
	s.touch()
	return true
}

// FailDiscovery 以错误终止当前加载周期的发现过程
func (s *Session) FailDiscovery(err error) bool {
	if s.Resolved() || err == nil {
		return false
	}
	s.err = err
	s.touch()
	return true
}

// Select 选中第 i 个动画并开始播放
// 越界时会话保持不变，返回 false
func (s *Session) Select(i int) bool {
	if i < 0 || i >= len(s.animations) {
		return false
	}
	s.selection = i
	s.playing = true
	s.touch()
	return true
}

// TogglePlaying 切换播放/暂停意图
func (s *Session) TogglePlaying() {
	s.playing = !s.playing
	s.touch()
}
