// Package intake — клиент точки приёма заказов. Точка приёма остаётся
// внешним сотрудником: один POST на попытку, без ретраев и бэкоффа.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/kawa-b2b/internal/domain"
)

type HTTPClient struct {
	URL    string
	Client *http.Client
}

func (c *HTTPClient) Submit(ctx context.Context, o domain.Order) (string, error) {
	body, err := json.Marshal(o)
	if err != nil {
		return "", err
	}

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var reply struct {
		OK      bool   `json:"ok"`
		OrderID any    `json:"orderId"`
		Error   string `json:"error"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&reply)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// сообщение сервера, если оно есть, иначе общий транспортный текст
		if decodeErr == nil && reply.Error != "" {
			return "", fmt.Errorf("%s", reply.Error)
		}
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("intake reply: %w", decodeErr)
	}
	id := ""
	if reply.OrderID != nil {
		id = fmt.Sprint(reply.OrderID)
	}
	return id, nil
}

var _ domain.IntakeClient = (*HTTPClient)(nil)
