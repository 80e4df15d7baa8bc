// Package natsstan — шина принятых заказов поверх NATS Streaming:
// витрина публикует, экспортёр (cmd/relay) разбирает очередь.
package natsstan

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/kawa-b2b/internal/domain"
	stan "github.com/nats-io/stan.go"
)

// Publisher публикует сырые JSON-заказы в канал. Подключение ленивое,
// чтобы витрина поднималась и при недоступной шине.
type Publisher struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string

	mu   sync.Mutex
	conn stan.Conn
}

func (p *Publisher) connect() (stan.Conn, error) {
	if p.conn != nil {
		return p.conn, nil
	}
	clientID := p.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("kawa-pub-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(p.ClusterID, clientID, stan.NatsURL(p.URL))
	if err != nil {
		return nil, err
	}
	p.conn = sc
	return sc, nil
}

func (p *Publisher) Publish(raw []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sc, err := p.connect()
	if err != nil {
		return err
	}
	if err := sc.Publish(p.Subject, raw); err != nil {
		// соединение могло протухнуть, следующий вызов переподключится
		_ = sc.Close()
		p.conn = nil
		return err
	}
	return nil
}

// Close закрывает соединение, если оно было установлено.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

var _ domain.OrderPublisher = (*Publisher)(nil)
