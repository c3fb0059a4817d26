package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository"
)

var (
	ErrTableNotFound     = repository.ErrTableNotFound
	ErrTableNumberExists = repository.ErrTableNumberExists
	ErrGroupNotFound     = repository.ErrGroupNotFound
	ErrActiveGroupExists = repository.ErrActiveGroupExists
	ErrOrderNotFound     = repository.ErrOrderNotFound
	ErrOrderItemNotFound = repository.ErrOrderItemNotFound
	ErrGuestNotFound     = repository.ErrGuestNotFound
	ErrAccountNotFound   = repository.ErrAccountNotFound
	ErrProductNotFound   = repository.ErrProductNotFound
)

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Broadcast fans an event out to every publisher and joins their errors.
type Broadcast []EventPublisher

func (b Broadcast) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, p := range b {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// publish is called after commit. Delivery failures are logged, the state change stands.
func publish(ctx context.Context, p EventPublisher, events ...domain.Event) {
	if p == nil {
		return
	}
	for _, e := range events {
		if err := p.Publish(ctx, e); err != nil {
			zap.L().Error(fmt.Sprintf("failed to publish %v event", e.Type), zap.Error(err))
		}
	}
}
