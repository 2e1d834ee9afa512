package worker

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MessageHandler consumes one pub/sub payload.
type MessageHandler func(ctx context.Context, payload []byte) error

// PartnerSyncWorker feeds partner changes published by other desk instances
// into a handler, one message at a time.
type PartnerSyncWorker struct {
	messages <-chan *redis.Message
	handle   MessageHandler
	logger   *zap.Logger
}

// NewPartnerSyncWorker builds a worker over a subscription channel.
func NewPartnerSyncWorker(messages <-chan *redis.Message, handle MessageHandler, logger *zap.Logger) *PartnerSyncWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartnerSyncWorker{messages: messages, handle: handle, logger: logger}
}

// Run blocks until ctx is cancelled or the subscription channel closes.
// Handler failures are logged and the message is dropped.
func (w *PartnerSyncWorker) Run(ctx context.Context) error {
	w.logger.Info("partner sync worker started")
	defer w.logger.Info("partner sync worker stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-w.messages:
			if !ok {
				return nil
			}
			if msg == nil {
				continue
			}
			if err := w.handle(ctx, []byte(msg.Payload)); err != nil {
				w.logger.Debug("sync message dropped",
					zap.String("channel", msg.Channel),
					zap.Error(err))
			}
		}
	}
}
