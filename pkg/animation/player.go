package animation

import "math"

// RepeatMode 剪辑播放到结尾时的行为
type RepeatMode int

const (
	// RepeatNever 播放一次后停在最后一帧
	RepeatNever RepeatMode = iota
	// RepeatForever 循环播放
	RepeatForever
)

// ActiveAnimation 一个正在播放（或已暂停）的剪辑
type ActiveAnimation struct {
	// Seek 当前播放位置（秒）
	Seek float64
	// Speed 播放速度倍率，默认 1
	Speed float64
	// Paused 暂停时保留进度
	Paused bool
	// Mode 到达结尾时的行为
	Mode RepeatMode
	// Completions 已完成的循环次数
	Completions int

	finished bool
}

// Repeat 设置为循环播放，返回自身便于链式调用
func (a *ActiveAnimation) Repeat() *ActiveAnimation {
	a.Mode = RepeatForever
	a.finished = false
	return a
}

// IsFinished 非循环剪辑是否已播放完毕
func (a *ActiveAnimation) IsFinished() bool {
	return a.finished
}

// Controller 是播放目标实体上的播放引擎
// PlaybackSystem 只通过这个接口驱动引擎
type Controller interface {
	// IsPlayingAnimation 剪辑是否处于活动状态（暂停也算活动）
	IsPlayingAnimation(idx NodeIndex) bool
	// Play 启动剪辑；已处于活动状态时返回现有的 ActiveAnimation
	Play(idx NodeIndex) *ActiveAnimation
	// StopAll 移除所有活动剪辑
	StopAll()
	// PauseAll 暂停所有活动剪辑，保留进度
	PauseAll()
	// ResumeAll 恢复所有活动剪辑
	ResumeAll()
	// Tick 推进活动剪辑的播放进度
	Tick(dt float64, graph *Graph)
}

// Player 是 Controller 的默认实现
type Player struct {
	active map[NodeIndex]*ActiveAnimation
}

// NewPlayer 创建空播放器
func NewPlayer() *Player {
	return &Player{active: make(map[NodeIndex]*ActiveAnimation)}
}

// IsPlayingAnimation 实现 Controller
func (p *Player) IsPlayingAnimation(idx NodeIndex) bool {
	_, ok := p.active[idx]
	return ok
}

// Play 实现 Controller
func (p *Player) Play(idx NodeIndex) *ActiveAnimation {
	if a, ok := p.active[idx]; ok {
		return a
	}
	a := &ActiveAnimation{Speed: 1}
	p.active[idx] = a
	return a
}

// StopAll 实现 Controller
func (p *Player) StopAll() {
	for idx := range p.active {
		delete(p.active, idx)
	}
}

// PauseAll 实现 Controller
func (p *Player) PauseAll() {
	for _, a := range p.active {
		a.Paused = true
	}
}

// ResumeAll 实现 Controller
func (p *Player) ResumeAll() {
	for _, a := range p.active {
		a.Paused = false
	}
}

// Active 返回剪辑的播放状态
func (p *Player) Active(idx NodeIndex) (*ActiveAnimation, bool) {
	a, ok := p.active[idx]
	return a, ok
}

// ActiveCount 返回活动剪辑数量
func (p *Player) ActiveCount() int {
	return len(p.active)
}

// Tick 实现 Controller
func (p *Player) Tick(dt float64, graph *Graph) {
	for idx, a := range p.active {
		if a.Paused || a.finished {
			continue
		}
		a.Seek += dt * a.Speed

		clip, ok := graph.Clip(idx)
		if !ok || clip.Duration <= 0 {
			continue
		}
		if a.Seek < clip.Duration {
			continue
		}
		if a.Mode == RepeatForever {
			a.Completions += int(a.Seek / clip.Duration)
			a.Seek = math.Mod(a.Seek, clip.Duration)
			continue
		}
		a.Seek = clip.Duration
		a.Completions++
		a.finished = true
	}
}
