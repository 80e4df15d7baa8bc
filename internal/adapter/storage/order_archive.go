package storage

import (
	"sort"

	"github.com/example/kawa-b2b/internal/domain"
)

const orderKeyPrefix = "order.v1:"

// KVOrderArchive — архив заказов поверх KV-хранилища.
// Масштаб небольшой (десятки заказов), перебор ключей приемлем.
type KVOrderArchive struct {
	KV domain.KV
}

func (a *KVOrderArchive) Save(o domain.Order) {
	if o.OrderID == "" {
		return
	}
	a.KV.Set(orderKeyPrefix+o.OrderID, o)
}

func (a *KVOrderArchive) Get(id string) (domain.Order, bool) {
	var o domain.Order
	if !a.KV.Get(orderKeyPrefix+id, &o) {
		return domain.Order{}, false
	}
	return o, true
}

func (a *KVOrderArchive) ListByEmail(email string) []domain.Order {
	var out []domain.Order
	for _, key := range a.KV.Keys(orderKeyPrefix) {
		var o domain.Order
		if !a.KV.Get(key, &o) {
			// битую запись пропускаем, выборку не прерываем
			continue
		}
		if o.Customer.Email == email {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Meta.At > out[j].Meta.At })
	return out
}

var _ domain.OrderArchive = (*KVOrderArchive)(nil)
