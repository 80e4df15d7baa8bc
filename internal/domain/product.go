package domain

import "github.com/shopspring/decimal"

func init() {
	// цены в JSON — числа, как в исходном API витрины
	decimal.MarshalJSONWithoutQuotes = true
}

// Product — позиция каталога. Поставляется внешним источником, только чтение.
type Product struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	Brand    string          `json:"brand,omitempty"`
	Pack     string          `json:"pack,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Stock    *int64          `json:"stock,omitempty"` // nil — остаток не ограничен
	Barcode  string          `json:"barcode,omitempty"`
	Image    string          `json:"image,omitempty"`
}

// Ceiling возвращает потолок количества и признак его наличия.
// Отрицательный остаток приводится к нулю.
func (p Product) Ceiling() (int64, bool) {
	return ceiling(p.Stock)
}

func ceiling(stock *int64) (int64, bool) {
	if stock == nil {
		return 0, false
	}
	if *stock < 0 {
		return 0, true
	}
	return *stock, true
}
