// Package storage — отказоустойчивые JSON key-value хранилища.
// Контракт (см. domain.KV): чтение при любом сбое оставляет значение
// по умолчанию, запись — best-effort. Ошибки наружу не выходят.
package storage

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/example/kawa-b2b/internal/domain"
)

// decode разбирает raw в черновик и копирует его в dst только при
// полном успехе. json.Unmarshal заполняет dst частично даже когда
// возвращает ошибку типа, а контракт чтения обещает не трогать dst.
func decode(raw []byte, dst any) bool {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	tmp := reflect.New(rv.Elem().Type())
	if json.Unmarshal(raw, tmp.Interface()) != nil {
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

// FileKV хранит каждое значение отдельным JSON-файлом в каталоге.
// Имя файла — base64url от ключа, чтобы ключи вида "cart.v2:<id>"
// не конфликтовали с файловой системой.
type FileKV struct {
	Dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKV{Dir: dir}, nil
}

func (s *FileKV) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(s.Dir, name+".json")
}

func (s *FileKV) Get(key string, dst any) bool {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	return decode(raw, dst)
}

func (s *FileKV) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	// сбой записи (нет места, нет прав) не выходит наружу, но след в логе оставляет
	if err := os.WriteFile(s.path(key), raw, 0o644); err != nil {
		log.Printf("storage: write %q failed: %v", key, err)
	}
}

func (s *FileKV) Keys(prefix string) []string {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil
	}
	var keys []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		raw, err := base64.RawURLEncoding.DecodeString(name)
		if err != nil {
			continue
		}
		if key := string(raw); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

var _ domain.KV = (*FileKV)(nil)
