package auditservice

import (
	"context"
	"sync"

	"github.com/sushihentaime/bloglist/internal/common"
)

// AuditService logs every domain event published on the event exchange.
type AuditService struct {
	mb     common.MessageConsumer
	logger AuditLogger
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	counts map[common.BindingKey]int
}

type AuditLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}
