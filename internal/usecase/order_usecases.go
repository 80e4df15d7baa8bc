package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/example/kawa-b2b/internal/domain"
	"github.com/google/uuid"
)

// Checkout — шаг 2 оформления: валидация анкеты, сборка payload из
// серверной корзины, одна попытка отправки в точку приёма. Корзина
// очищается только при успехе; при отказе остаётся нетронутой,
// чтобы покупатель мог повторить без повторного ввода.
type Checkout struct {
	Carts  *CartEngine
	Intake domain.IntakeClient
	Source string
}

func (uc Checkout) Execute(ctx context.Context, cartKey string, cust domain.Customer) (domain.Order, error) {
	cart := uc.Carts.Get(cartKey)
	if len(cart.Lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if err := cust.Validate(); err != nil {
		return domain.Order{}, err
	}

	t := cart.Totals()
	o := domain.Order{
		Customer: cust,
		Items:    make([]domain.OrderItem, 0, len(cart.Lines)),
		TotalQty: t.TotalQty,
		TotalSum: t.TotalSum,
		Meta: domain.OrderMeta{
			Source: uc.Source,
			At:     time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, l := range cart.Lines {
		o.Items = append(o.Items, domain.OrderItem{ID: l.ID, Title: l.Title, Qty: l.Qty, Price: l.Price})
	}

	id, err := uc.Intake.Submit(ctx, o)
	if err != nil {
		return domain.Order{}, err
	}
	o.OrderID = id
	uc.Carts.Clear(cartKey)
	return o, nil
}

// ProcessIntake — приём заказа: структурная валидация позиций, номер,
// архив и публикация в шину экспорта. Публикация best-effort: заказ к
// этому моменту уже в архиве, сбой шины его не теряет.
type ProcessIntake struct {
	Archive domain.OrderArchive
	Bus     domain.OrderPublisher
}

func (uc ProcessIntake) Execute(ctx context.Context, o domain.Order) (domain.Order, error) {
	if len(o.Items) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}
	for _, it := range o.Items {
		if it.ID == "" || it.Qty <= 0 {
			return domain.Order{}, domain.ErrBadItem
		}
	}
	if o.OrderID == "" {
		o.OrderID = uuid.NewString()
	}
	uc.Archive.Save(o)

	if uc.Bus != nil {
		raw, err := json.Marshal(o)
		if err == nil {
			err = uc.Bus.Publish(raw)
		}
		if err != nil {
			log.Printf("order %s: bus publish: %v", o.OrderID, err)
		}
	}
	return o, nil
}

// OrderHistory — заказы покупателя по почте из сессии.
type OrderHistory struct {
	Archive domain.OrderArchive
}

func (uc OrderHistory) Execute(email string) []domain.Order {
	return uc.Archive.ListByEmail(email)
}
