package usecase

import (
	"fmt"

	"github.com/example/kawa-b2b/internal/domain"
)

// Reorder — повтор прошлого заказа из истории кабинета. Позиции
// добавляются в корзину с поджатием к текущему остатку каталога;
// о каждой срезанной или пропавшей позиции возвращается заметка.
type Reorder struct {
	Archive domain.OrderArchive
	Catalog domain.CatalogCache
	Carts   *CartEngine
}

func (uc Reorder) Execute(cartKey, orderID, email string) ([]string, domain.Cart, error) {
	o, ok := uc.Archive.Get(orderID)
	if !ok || o.Customer.Email != email {
		// чужой заказ неотличим от несуществующего
		return nil, domain.Cart{}, domain.ErrNotFound
	}

	var notes []string
	cart := uc.Carts.Get(cartKey)
	for _, it := range o.Items {
		p, ok := uc.Catalog.Get(it.ID)
		if !ok {
			notes = append(notes, fmt.Sprintf("«%s» больше нет в каталоге", it.Title))
			continue
		}
		before := lineQty(cart, it.ID)
		cart = uc.Carts.Add(cartKey, p, it.Qty)
		added := lineQty(cart, it.ID) - before
		if added < it.Qty {
			stock := "∞"
			if ceil, bounded := p.Ceiling(); bounded {
				stock = fmt.Sprint(ceil)
			}
			notes = append(notes, fmt.Sprintf("«%s» — добавлено %d из %d (остаток %s)", p.Title, added, it.Qty, stock))
		}
	}
	return notes, cart, nil
}

func lineQty(c domain.Cart, id string) int64 {
	if i := c.Find(id); i >= 0 {
		return c.Lines[i].Qty
	}
	return 0
}
