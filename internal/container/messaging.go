package container

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/rategate/internal/events"
	"github.com/serroba/rategate/internal/messaging"
	"github.com/serroba/rategate/internal/store"
	"go.uber.org/zap"
)

const eventsConsumerGroup = "rategate-events"

// PublisherGroupPackage provides the deny-event publisher over the Redis
// stream and the typed emitter derived from it. With PublishEvents disabled
// the emitter is nil and the middleware skips publishing.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Emit[events.LimitExceededEvent], error) {
		opts := do.MustInvoke[*Options](i)
		if !opts.PublishEvents {
			return nil, nil
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewEmitter[events.LimitExceededEvent](group.Publisher(), events.TopicLimitExceeded), nil
	})
}

// ConsumerGroupPackage provides the deny-event consumer group persisting
// events to Postgres, or to the logging no-op store when no DSN is set.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (events.Store, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.PostgresDSN == "" {
			return store.NewNoopEventStore(do.MustInvoke[*zap.Logger](i)), nil
		}

		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}

		return store.NewPostgresEventStore(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		eventStore := do.MustInvoke[events.Store](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: eventsConsumerGroup,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			events.TopicLimitExceeded,
			func(ctx context.Context, event *events.LimitExceededEvent) error {
				return eventStore.SaveLimitExceeded(ctx, event)
			},
			logger,
		))

		return group, nil
	})
}
