package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/papermart/listing-service/internal/listing"
	"github.com/papermart/listing-service/pkg/broker"
	"github.com/papermart/listing-service/pkg/logger"
	"go.uber.org/zap"
)

// Event types emitted by the other marketplace services (orders, admin
// approval) when they mutate deals out-of-band. The listener keeps the
// search index in lockstep with those mutations.
const (
	EventDealCreated  = "DealCreated"
	EventDealUpdated  = "DealUpdated"
	EventDealMarkSold = "DealMarkedSold"
	EventDealDeleted  = "DealDeleted"
)

type DealEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	TransID   string    `json:"trans_id"`
	Timestamp time.Time `json:"timestamp"`
}

type DealListener struct {
	consumer *broker.KafkaConsumer
	uc       listing.UseCase
	logger   logger.ZapLogger
}

func NewDealListener(consumer *broker.KafkaConsumer, uc listing.UseCase, log logger.ZapLogger) *DealListener {
	return &DealListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *DealListener) Start(ctx context.Context) {
	l.logger.Info("starting deal event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping deal event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *DealListener) processMessage(ctx context.Context, value []byte) {
	var event DealEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal deal event", zap.Error(err))
		return
	}

	switch event.EventType {
	case EventDealCreated, EventDealUpdated, EventDealMarkSold:
		if err := l.uc.ReindexListing(ctx, event.TransID); err != nil {
			l.logger.Error("failed to reindex listing for event",
				zap.String("event_type", event.EventType),
				zap.String("trans_id", event.TransID),
				zap.Error(err),
			)
		}
	case EventDealDeleted:
		if err := l.uc.RemoveFromIndex(ctx, event.TransID); err != nil {
			l.logger.Error("failed to remove listing for event",
				zap.String("trans_id", event.TransID),
				zap.Error(err),
			)
		}
	}
}
