// Package catalog — источники каталога товаров: локальный файл
// (JSON или CSV) и внешний HTTP API, с цепочкой фоллбэков как на витрине.
package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/kawa-b2b/internal/domain"
	"github.com/shopspring/decimal"
)

// FileSource читает каталог из файла; формат определяется расширением.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) ([]domain.Product, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(s.Path), ".csv") {
		return parseCSV(raw)
	}
	return parseJSON(raw)
}

// parseJSON принимает и голый массив, и обёртку {"products":[...]}.
func parseJSON(raw []byte) ([]domain.Product, error) {
	var list []domain.Product
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("catalog json: %w", err)
	}
	return wrapped.Products, nil
}

func parseCSV(raw []byte) ([]domain.Product, error) {
	r := csv.NewReader(strings.NewReader(string(raw)))
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var list []domain.Product
	for _, row := range rows[1:] {
		p := domain.Product{
			ID:       field(row, "id"),
			Title:    field(row, "title"),
			Category: field(row, "category"),
			Brand:    field(row, "brand"),
			Pack:     field(row, "pack"),
			Barcode:  field(row, "barcode"),
			Image:    field(row, "image"),
		}
		if p.ID == "" {
			continue
		}
		if v := field(row, "price"); v != "" {
			if d, err := decimal.NewFromString(v); err == nil {
				p.Price = d
			}
		}
		// пустой остаток означает «не ограничен»
		if v := field(row, "stock"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				p.Stock = &n
			}
		}
		list = append(list, p)
	}
	return list, nil
}

var _ domain.CatalogSource = (*FileSource)(nil)
