// Package asset 提供异步资源加载与非阻塞的就绪查询
//
// Server.Load 立即返回一个 Handle，解码在后台 goroutine 中进行；
// 系统每个 tick 通过 Get/State 轮询结果，从不阻塞主循环。
package asset

import (
	"fmt"
	"log"
	"sync"

	"github.com/decker502/modelview/internal/gltfasset"
)

// Handle 是对一次加载请求的非拥有引用，只用于查询就绪状态
// 零值表示"无资源"
type Handle struct {
	id uint64
}

// IsValid 检查句柄是否指向一次加载请求
func (h Handle) IsValid() bool {
	return h.id != 0
}

// String 实现 fmt.Stringer
func (h Handle) String() string {
	return fmt.Sprintf("asset#%d", h.id)
}

// LoadState 描述一次加载请求的状态
type LoadState int

const (
	// StateNotLoaded 句柄未知（无效句柄，或已被 Forget）
	StateNotLoaded LoadState = iota
	// StateLoading 解码进行中
	StateLoading
	// StateLoaded 解码完成，Get 可以返回资源
	StateLoaded
	// StateFailed 解码失败，Err 返回原因
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "not-loaded"
	}
}

// Resolver 是系统轮询资源就绪状态所需的接口
type Resolver interface {
	// Get 返回已解码的资源；未就绪时返回 false，不阻塞
	Get(h Handle) (*gltfasset.Asset, bool)
	// State 返回句柄当前的加载状态
	State(h Handle) LoadState
	// Err 返回解码失败的原因
	Err(h Handle) error
}

// DecodeFunc 把路径解码为资源
type DecodeFunc func(path string) (*gltfasset.Asset, error)

type entry struct {
	path  string
	state LoadState
	asset *gltfasset.Asset
	err   error
}

// Server 管理所有加载请求
// 可以被多个 goroutine 并发使用
type Server struct {
	mu      sync.Mutex
	nextID  uint64
	entries map[uint64]*entry
	decode  DecodeFunc
	wg      sync.WaitGroup
}

// NewServer 创建资源服务器
// decode 为 nil 时使用 gltfasset.Decode
func NewServer(decode DecodeFunc) *Server {
	if decode == nil {
		decode = gltfasset.Decode
	}
	return &Server{
		nextID:  1,
		entries: make(map[uint64]*entry),
		decode:  decode,
	}
}

// Load 请求异步加载 path，立即返回句柄
func (s *Server) Load(path string) Handle {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.entries[id] = &entry{path: path, state: StateLoading}
	s.mu.Unlock()

	log.Printf("[AssetServer] 开始加载: %s (asset#%d)", path, id)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		asset, err := s.decode(path)

		s.mu.Lock()
		defer s.mu.Unlock()
		e, ok := s.entries[id]
		if !ok {
			// 请求已被放弃，结果无人观察
			log.Printf("[AssetServer] 丢弃已放弃的加载结果: %s", path)
			return
		}
		if err != nil {
			e.state = StateFailed
			e.err = err
			log.Printf("[AssetServer] 加载失败: %s: %v", path, err)
			return
		}
		e.state = StateLoaded
		e.asset = asset
		log.Printf("[AssetServer] 加载完成: %s", path)
	}()

	return Handle{id: id}
}

// Get 实现 Resolver
func (s *Server) Get(h Handle) (*gltfasset.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[h.id]
	if !ok || e.state != StateLoaded {
		return nil, false
	}
	return e.asset, true
}

// State 实现 Resolver
func (s *Server) State(h Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[h.id]; ok {
		return e.state
	}
	return StateNotLoaded
}

// Err 实现 Resolver
func (s *Server) Err(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[h.id]; ok {
		return e.err
	}
	return nil
}

// Forget 放弃一个句柄：已缓存的资源被释放，进行中的解码不会被中止，
// 但其结果会被丢弃
func (s *Server) Forget(h Handle) {
	if !h.IsValid() {
		return
	}
	s.mu.Lock()
	delete(s.entries, h.id)
	s.mu.Unlock()
}

// Wait 阻塞直到所有已发起的解码结束（用于退出和测试）
func (s *Server) Wait() {
	s.wg.Wait()
}
