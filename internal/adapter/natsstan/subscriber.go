package natsstan

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/kawa-b2b/internal/domain"
	stan "github.com/nats-io/stan.go"
)

// Subscriber — durable-подписчик очереди заказов (ручной ack:
// необработанное сообщение переотправится). Group разводит несколько
// реле по одной очереди, HandlerTimeout ограничивает один вызов
// обработчика; нулевые значения дают разумные умолчания.
type Subscriber struct {
	ClusterID      string
	ClientID       string
	URL            string
	Subject        string
	Durable        string
	Group          string
	HandlerTimeout time.Duration
}

func (s *Subscriber) group() string {
	if s.Group == "" {
		return "kawa-export"
	}
	return s.Group
}

func (s *Subscriber) handlerTimeout() time.Duration {
	if s.HandlerTimeout <= 0 {
		return 5 * time.Second
	}
	return s.HandlerTimeout
}

func (s *Subscriber) Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error {
	clientID := s.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("kawa-relay-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(s.ClusterID, clientID, stan.NatsURL(s.URL))
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		sc.Close()
	}()
	_, err = sc.QueueSubscribe(s.Subject, s.group(), func(m *stan.Msg) {
		hCtx, cancel := context.WithTimeout(context.Background(), s.handlerTimeout())
		defer cancel()
		if err := handler(hCtx, m.Data); err != nil {
			// не подтверждаем, даём сообщению переотправиться
			log.Printf("handler error: %v", err)
			return
		}
		if err := m.Ack(); err != nil {
			log.Printf("ack failed: %v", err)
		}
	}, stan.DurableName(s.Durable), stan.SetManualAckMode(), stan.AckWait(10*time.Second), stan.DeliverAllAvailable())
	return err
}

var _ domain.MessageSubscriber = (*Subscriber)(nil)
