package usecase

import (
	"sync"

	"github.com/example/kawa-b2b/internal/domain"
)

const cartKeyPrefix = "cart.v2:"

// CartEngine — единственная реализация логики корзины; все обработчики
// зависят от него и не повторяют поджатие количеств у себя.
//
// Корзины ключуются идентификатором устройства покупателя и пишутся
// в KV насквозь после каждой мутации. Мутация выполняется как единый
// шаг load → изменение → save под общим мьютексом.
type CartEngine struct {
	KV domain.KV

	mu sync.Mutex
}

func (e *CartEngine) load(key string) domain.Cart {
	var c domain.Cart
	// сбой чтения даёт пустую корзину — хранилище может деградировать
	e.KV.Get(cartKeyPrefix+key, &c)
	return c
}

func (e *CartEngine) save(key string, c domain.Cart) {
	e.KV.Set(cartKeyPrefix+key, c)
}

// Get возвращает текущую корзину покупателя.
func (e *CartEngine) Get(key string) domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load(key)
}

// Add добавляет delta единиц товара. Количество поджимается к потолку
// остатка из переданной карточки; нулевой итог убирает строку целиком.
// Для существующей строки денормализованные поля освежаются, чтобы
// цена оставалась актуальной при повторных добавлениях.
func (e *CartEngine) Add(key string, p domain.Product, delta int64) domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.load(key)
	if p.ID == "" {
		return c
	}
	ceil, bounded := p.Ceiling()

	i := c.Find(p.ID)
	if i < 0 {
		if delta <= 0 {
			return c
		}
		qty := clampQty(delta, ceil, bounded)
		if qty == 0 {
			return c
		}
		c.Lines = append(c.Lines, domain.CartLine{
			ID:      p.ID,
			Title:   p.Title,
			Pack:    p.Pack,
			Price:   p.Price,
			Stock:   p.Stock,
			Qty:     qty,
			Barcode: p.Barcode,
		})
		e.save(key, c)
		return c
	}

	qty := clampQty(c.Lines[i].Qty+delta, ceil, bounded)
	if qty == 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	} else {
		c.Lines[i].Qty = qty
		c.Lines[i].Title = p.Title
		c.Lines[i].Pack = p.Pack
		c.Lines[i].Price = p.Price
		c.Lines[i].Stock = p.Stock
		c.Lines[i].Barcode = p.Barcode
	}
	e.save(key, c)
	return c
}

// SetQty выставляет количество существующей строки. Отрицательное
// значение трактуется как 0, ноль убирает строку. Строки нет —
// корзина не меняется: создать её можно только через Add.
func (e *CartEngine) SetQty(key, id string, qty int64) domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.load(key)
	i := c.Find(id)
	if i < 0 {
		return c
	}
	ceil, bounded := c.Lines[i].Ceiling()
	q := clampQty(qty, ceil, bounded)
	if q == 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	} else {
		c.Lines[i].Qty = q
	}
	e.save(key, c)
	return c
}

// Remove убирает строку безусловно; отсутствующая строка — no-op.
func (e *CartEngine) Remove(key, id string) domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.load(key)
	i := c.Find(id)
	if i < 0 {
		return c
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	e.save(key, c)
	return c
}

// Clear опустошает корзину. Идемпотентно.
func (e *CartEngine) Clear(key string) domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := domain.Cart{}
	e.save(key, c)
	return c
}

func clampQty(q, ceil int64, bounded bool) int64 {
	if q < 0 {
		return 0
	}
	if bounded && q > ceil {
		return ceil
	}
	return q
}
