// Package localstore 在本地 JSON 文件里保存少量跨进程状态：
// 会话 ID 与最近搜索词。等价于浏览器端的 localStorage。
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxRecentSearches 最近搜索词保留上限，最新在前，去重。
const MaxRecentSearches = 5

type state struct {
	SessionID      string   `json:"session_id"`
	RecentSearches []string `json:"recent_searches"`
}

// Store 文件级本地存储。每次变更整体落盘，文件很小，不做增量。
type Store struct {
	path  string
	state state
}

// Open 加载（或初始化）本地存储文件。
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		// 文件损坏时丢弃旧内容重新开始，别让一个坏文件卡死启动。
		s.state = state{}
	}
	return s, nil
}

// SessionID 返回会话 ID，首次调用时生成并落盘。
func (s *Store) SessionID() (string, error) {
	if s.state.SessionID != "" {
		return s.state.SessionID, nil
	}
	s.state.SessionID = uuid.NewString()
	if err := s.flush(); err != nil {
		return "", err
	}
	return s.state.SessionID, nil
}

// AddSearch 记录一个搜索词：去重后放到最前，超过上限截断。
// 空白词直接忽略。
func (s *Store) AddSearch(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	out := []string{term}
	for _, t := range s.state.RecentSearches {
		if strings.EqualFold(t, term) {
			continue
		}
		out = append(out, t)
	}
	if len(out) > MaxRecentSearches {
		out = out[:MaxRecentSearches]
	}
	s.state.RecentSearches = out
	return s.flush()
}

// RecentSearches 最近搜索词，最新在前。返回副本。
func (s *Store) RecentSearches() []string {
	out := make([]string, len(s.state.RecentSearches))
	copy(out, s.state.RecentSearches)
	return out
}

func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o644)
}
