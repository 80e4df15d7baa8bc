package storage

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/example/kawa-b2b/internal/domain"
)

// MemoryKV — то же хранилище в памяти: деградированный режим, когда
// каталог данных недоступен, и удобная замена в тестах. Значения
// держатся в сыром JSON, чтобы семантика копирования совпадала с файловой.
type MemoryKV struct {
	mu    sync.RWMutex
	store map[string]json.RawMessage
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{store: make(map[string]json.RawMessage)}
}

func (s *MemoryKV) Get(key string, dst any) bool {
	s.mu.RLock()
	raw, ok := s.store[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return decode(raw, dst)
}

func (s *MemoryKV) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.store[key] = raw
	s.mu.Unlock()
}

func (s *MemoryKV) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.store {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

var _ domain.KV = (*MemoryKV)(nil)
