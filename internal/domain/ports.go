package domain

import (
	"context"
	"strings"
)

// KV — порт отказоустойчивого key-value хранилища.
// Get декодирует значение в dst и сообщает, удалось ли чтение;
// при любом сбое dst не трогается (вызывающий остаётся с fallback-значением).
// Set — best-effort: сбой записи молча игнорируется.
type KV interface {
	Get(key string, dst any) bool
	Set(key string, v any)
	Keys(prefix string) []string
}

// CatalogSource — порт источника каталога товаров.
type CatalogSource interface {
	Load(ctx context.Context) ([]Product, error)
}

// CatalogCache — порт быстрого доступа к каталогу.
type CatalogCache interface {
	Replace(list []Product)
	List() []Product
	Get(id string) (Product, bool)
}

// OrderArchive — порт архива принятых заказов.
type OrderArchive interface {
	Save(o Order)
	Get(id string) (Order, bool)
	ListByEmail(email string) []Order
}

// OrderPublisher — порт публикации принятых заказов в шину.
type OrderPublisher interface {
	Publish(raw []byte) error
}

// MessageSubscriber — порт подписчика на входящие сообщения заказов.
type MessageSubscriber interface {
	// Subscribe регистрирует обработчик; ack/повторные доставки реализует адаптер.
	Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error
}

// IntakeClient — порт точки приёма заказов. Одна попытка, без ретраев.
type IntakeClient interface {
	Submit(ctx context.Context, o Order) (orderID string, err error)
}

// Общие доменные ошибки
var (
	ErrNotFound           = notFoundError("not found")
	ErrValidation         = validationError("invalid data")
	ErrEmptyCart          = validationError("cart is empty")
	ErrEmptyOrder         = validationError("Invalid payload")
	ErrBadItem            = validationError("Invalid item in cart")
	ErrInvalidChallenge   = authError("Неверный код")
	ErrInvalidCredentials = authError("Invalid credentials")
	ErrBadEmail           = validationError("Укажите корректный email")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }

type authError string

func (e authError) Error() string { return string(e) }

// FieldsError — ошибка валидации анкеты с перечнем полей,
// собирается в одно человекочитаемое сообщение.
type FieldsError struct {
	Fields []string
}

func (e *FieldsError) Error() string {
	return "Проверьте поля: " + strings.Join(e.Fields, ", ")
}
