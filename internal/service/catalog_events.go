package service

import (
	"context"

	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/pkg/events"
	pktNats "vpp-configurator/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// LocalCatalogTopic is the in-process topic every catalog write is announced on
const LocalCatalogTopic = "catalog.changed"

const natsCatalogSubject = pktNats.SubjectPrefix + events.CatalogSubjectPrefix + ">"

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// CatalogEventBus announces catalog writes on the in-process bus and, when
// connected, on NATS for the other API instances. Delivery is best effort:
// a write that reached the store is never failed by its announcement.
type CatalogEventBus struct {
	pubSub *gochannel.GoChannel
	nats   EventPublisher
	log    logger.ILogger
}

// NewCatalogEventBus accepts a nil natsPub when NATS is unavailable
func NewCatalogEventBus(pubSub *gochannel.GoChannel, natsPub EventPublisher, log logger.ILogger) *CatalogEventBus {
	return &CatalogEventBus{pubSub: pubSub, nats: natsPub, log: log}
}

func (b *CatalogEventBus) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Encode(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(LocalCatalogTopic, msg); err != nil {
		b.log.Warn("EVENTS", "Local publish failed", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}

	if b.nats != nil {
		if err := b.nats.Publish(ctx, event); err != nil {
			b.log.Warn("EVENTS", "NATS publish failed", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		}
	}
	return nil
}

// CacheInvalidator evicts the catalog snapshot whenever a catalog event arrives
type CacheInvalidator struct {
	pubSub  *gochannel.GoChannel
	natsSub EventSubscriber
	cache   contract.SnapshotCache
	log     logger.ILogger
}

func NewCacheInvalidator(pubSub *gochannel.GoChannel, natsSub EventSubscriber, cache contract.SnapshotCache, log logger.ILogger) *CacheInvalidator {
	return &CacheInvalidator{pubSub: pubSub, natsSub: natsSub, cache: cache, log: log}
}

// Start subscribes and returns; consumption runs until ctx is cancelled
func (ci *CacheInvalidator) Start(ctx context.Context) error {
	messages, err := ci.pubSub.Subscribe(ctx, LocalCatalogTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ci.processMessage(ctx, msg)
		}
	}()

	if ci.natsSub != nil {
		err := ci.natsSub.Subscribe(ctx, natsCatalogSubject, "", func(ctx context.Context, event events.Event) error {
			ci.invalidate(ctx, event)
			return nil
		})
		if err != nil {
			ci.log.Warn("EVENTS", "NATS subscription failed, relying on local events only", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (ci *CacheInvalidator) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		ci.log.Error("EVENTS", "Failed to decode catalog event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	ci.invalidate(ctx, event)
	msg.Ack()
}

func (ci *CacheInvalidator) invalidate(ctx context.Context, event events.Event) {
	ci.cache.Delete(ctx, CatalogSnapshotKey)
	ci.log.Debug("EVENTS", "Catalog snapshot invalidated", map[string]interface{}{
		"type":       event.EventType(),
		"collection": event.Payload()["collection"],
	})
}
