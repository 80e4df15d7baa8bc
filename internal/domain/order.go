package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Customer — контактные данные покупателя (анкета оптовика).
type Customer struct {
	Email   string `json:"email"`
	Company string `json:"company"`
	INN     string `json:"inn,omitempty"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// OrderItem — денормализованная позиция заказа.
type OrderItem struct {
	ID    string          `json:"id"`
	Title string          `json:"title,omitempty"`
	Qty   int64           `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// OrderMeta — источник и момент оформления.
type OrderMeta struct {
	Source string `json:"source,omitempty"`
	At     string `json:"at,omitempty"`
}

// Order — принятый оптовый заказ.
type Order struct {
	OrderID  string          `json:"orderId,omitempty"`
	Customer Customer        `json:"customer"`
	Items    []OrderItem     `json:"items"`
	TotalQty int64           `json:"totalQty"`
	TotalSum decimal.Decimal `json:"totalSum"`
	Meta     OrderMeta       `json:"meta"`
}

var emailRe = regexp.MustCompile(`.+@.+\..+`)

// ValidEmail — грубая проверка формы адреса, как на витрине.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Validate проверяет обязательные поля анкеты перед оформлением.
// Возвращает FieldsError со списком проблемных полей.
func (c Customer) Validate() error {
	var bad []string
	if strings.TrimSpace(c.Company) == "" {
		bad = append(bad, "Компания")
	}
	if strings.TrimSpace(c.Contact) == "" {
		bad = append(bad, "Контактное лицо")
	}
	if !ValidEmail(c.Email) {
		bad = append(bad, "Email")
	}
	if strings.TrimSpace(c.Phone) == "" {
		bad = append(bad, "Телефон")
	}
	if len(bad) > 0 {
		return &FieldsError{Fields: bad}
	}
	return nil
}
