// Package prefs 保存跨运行的界面偏好（目前只有文件对话框的起始目录）
//
// 数据通过 gdata 存放在平台的用户数据目录，以 YAML 序列化。
// gdata 不可用时进入降级模式：偏好只保存在内存中。
package prefs

import (
	"fmt"
	"log"
	"os"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName gdata 数据目录名
const AppName = "modelview"

const (
	prefsObject   = "prefs"
	prefsProperty = "viewer"
)

// Prefs 持久化的偏好
type Prefs struct {
	// LastDirectory 上次选择文件所在的目录
	LastDirectory string `yaml:"lastDirectory"`
}

// Store 偏好存储
type Store struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	prefs        Prefs
}

// Open 打开默认数据目录下的偏好存储
// 无法打开时返回降级模式的 Store，不返回错误
func Open() *Store {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[Prefs] Warning: gdata unavailable: %v (preferences will not persist)", err)
		m = nil
	}
	return NewStore(m)
}

// NewStore 创建偏好存储并加载已保存的偏好
// gdataManager 可为 nil
func NewStore(gdataManager *gdata.Manager) *Store {
	s := &Store{gdataManager: gdataManager}
	if err := s.Load(); err != nil {
		log.Printf("[Prefs] Warning: failed to load preferences: %v", err)
	}
	return s
}

// Load 从 gdata 读取偏好；不存在时保持空值
func (s *Store) Load() error {
	s.prefs = Prefs{}
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}

	var loaded Prefs
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	s.prefs = loaded
	return nil
}

// Save 写入 gdata；降级模式下什么也不做
func (s *Store) Save() error {
	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&s.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}

// LastDirectory 返回文件对话框的起始目录
// 记录的目录已不存在时返回空字符串
func (s *Store) LastDirectory() string {
	dir := s.prefs.LastDirectory
	if dir == "" {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// SetLastDirectory 记录目录并立即保存
func (s *Store) SetLastDirectory(dir string) {
	if dir == "" || dir == s.prefs.LastDirectory {
		return
	}
	s.prefs.LastDirectory = dir
	if err := s.Save(); err != nil {
		log.Printf("[Prefs] Warning: %v", err)
	}
}
