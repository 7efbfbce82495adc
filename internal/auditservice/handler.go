package auditservice

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/bloglist/internal/common"
)

func NewAuditService(mb common.MessageConsumer, logger AuditLogger) *AuditService {
	ctx, cancel := context.WithCancel(context.Background())
	return &AuditService{
		mb:     mb,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		counts: make(map[common.BindingKey]int),
	}
}

// Start consumes the audit queue in the background until Close is called
// or the delivery channel is closed.
func (s *AuditService) Start() error {
	msgs, err := s.mb.Consume(common.AllEventsKey, common.EventExchange, common.AuditQueue)
	if err != nil {
		return err
	}

	go func() {
		defer close(s.done)

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping audit consumer due to context cancellation")
				return
			}
		}
	}()

	return nil
}

func (s *AuditService) handle(msg amqp.Delivery) {
	key := common.BindingKey(msg.RoutingKey)

	var event map[string]any
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("could not unmarshal event", slog.String("key", msg.RoutingKey), slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	s.mu.Lock()
	s.counts[key]++
	s.mu.Unlock()

	s.logger.Info("event received", slog.String("key", msg.RoutingKey), slog.Any("event", event))
	_ = msg.Ack(false)
}

// Count returns how many well formed events with the given key were seen.
func (s *AuditService) Count(key common.BindingKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Close stops the consumer. Use Done to wait for it to exit.
func (s *AuditService) Close() {
	s.cancel()
}

// Done is closed once the consumer goroutine has returned.
func (s *AuditService) Done() <-chan struct{} {
	return s.done
}
