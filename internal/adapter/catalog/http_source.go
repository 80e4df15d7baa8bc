package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/kawa-b2b/internal/domain"
)

// HTTPSource тянет каталог из внешнего API: GET → {"products":[...]}.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Load(ctx context.Context) ([]domain.Product, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog api: HTTP %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseJSON(raw)
}

// Chain пробует источники по порядку и отдаёт первый удачный результат.
// Повторяет фоллбэк витрины: сначала API, затем локальный файл.
type Chain []domain.CatalogSource

func (c Chain) Load(ctx context.Context) ([]domain.Product, error) {
	var lastErr error
	for _, src := range c {
		list, err := src.Load(ctx)
		if err == nil {
			return list, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = domain.ErrNotFound
	}
	return nil, lastErr
}

var (
	_ domain.CatalogSource = (*HTTPSource)(nil)
	_ domain.CatalogSource = (Chain)(nil)
)
