// Экспортёр заказов: разбирает очередь принятых заказов и проксирует
// их во внешнюю учётную систему. Неудачная доставка не подтверждается,
// сообщение переотправится.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/kawa-b2b/internal/adapter/natsstan"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sub := &natsstan.Subscriber{
		ClusterID: getEnv("STAN_CLUSTER_ID", "kawa-cluster"),
		ClientID:  os.Getenv("STAN_CLIENT_ID"),
		URL:       getEnv("NATS_URL", "nats://localhost:4222"),
		Subject:   getEnv("STAN_SUBJECT", "orders"),
		Durable:   getEnv("STAN_DURABLE", "kawa-export"),
		Group:     os.Getenv("STAN_GROUP"),
	}

	exportURL := os.Getenv("EXPORT_URL")
	client := &http.Client{Timeout: 15 * time.Second}

	handler := func(ctx context.Context, raw []byte) error {
		var o struct {
			OrderID  string `json:"orderId"`
			TotalQty int64  `json:"totalQty"`
		}
		if err := json.Unmarshal(raw, &o); err != nil {
			// мусор подтверждаем, переотправка его не исправит
			log.Printf("skip invalid message: %v", err)
			return nil
		}
		if exportURL == "" {
			log.Printf("order %s (qty %d): no EXPORT_URL, ack only", o.OrderID, o.TotalQty)
			return nil
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, exportURL, bytes.NewReader(raw))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("export: HTTP %d", resp.StatusCode)
		}
		log.Printf("order %s exported", o.OrderID)
		return nil
	}

	if err := sub.Subscribe(ctx, handler); err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	log.Printf("relay listening on %s", sub.Subject)
	<-ctx.Done()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
