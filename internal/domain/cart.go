package domain

import "github.com/shopspring/decimal"

// CartLine — строка корзины: товар и запрошенное количество.
// Поля товара денормализованы на момент добавления, чтобы корзина
// оставалась отображаемой без живого каталога.
type CartLine struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Pack    string          `json:"pack,omitempty"`
	Price   decimal.Decimal `json:"price"`
	Stock   *int64          `json:"stock,omitempty"`
	Qty     int64           `json:"qty"`
	Barcode string          `json:"barcode,omitempty"`
}

// Ceiling — потолок количества для строки (снимок остатка на момент добавления).
func (l CartLine) Ceiling() (int64, bool) {
	return ceiling(l.Stock)
}

// Cart — упорядоченный набор строк, не более одной строки на товар.
// Инвариант: строк с Qty == 0 не бывает.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Find возвращает индекс строки с данным товаром или -1.
func (c Cart) Find(id string) int {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return i
		}
	}
	return -1
}

// CartTotals — агрегаты корзины, считаются заново при каждом запросе.
type CartTotals struct {
	LineCount int             `json:"lineCount"`
	TotalQty  int64           `json:"totalQty"`
	TotalSum  decimal.Decimal `json:"totalSum"`
}

// Totals суммирует количество и стоимость по всем строкам.
func (c Cart) Totals() CartTotals {
	t := CartTotals{LineCount: len(c.Lines), TotalSum: decimal.Zero}
	for _, l := range c.Lines {
		t.TotalQty += l.Qty
		t.TotalSum = t.TotalSum.Add(l.Price.Mul(decimal.NewFromInt(l.Qty)))
	}
	return t
}
