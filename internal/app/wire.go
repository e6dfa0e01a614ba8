//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"fmt"

	"lionhearts/internal/gateway/kafka/order_events"
	"lionhearts/internal/gateway/notifier"
	admin_order_audit_get "lionhearts/internal/handlers/rest/admin_order_audit_get"
	admin_order_patch "lionhearts/internal/handlers/rest/admin_order_patch"
	admin_orders_get "lionhearts/internal/handlers/rest/admin_orders_get"
	order_get "lionhearts/internal/handlers/rest/order_get"
	order_post "lionhearts/internal/handlers/rest/order_post"
	"lionhearts/internal/handlers/tasks/status_metrics"
	"lionhearts/internal/pkg/config"
	"lionhearts/internal/pkg/factory/order_identity"
	"lionhearts/internal/pkg/factory/status_policy"
	"lionhearts/internal/pkg/kafka"
	"lionhearts/internal/pkg/metrics"

	orderRepo "lionhearts/internal/repository/order"
	notificationService "lionhearts/internal/service/notification"
	orderService "lionhearts/internal/service/order"

	"lionhearts/pkg/background"
	"lionhearts/pkg/logger"
	"lionhearts/pkg/querier"
	"lionhearts/pkg/retrier"
	"lionhearts/pkg/retrier/backoff_adapter"
	"lionhearts/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Application struct {
	ServiceOrder      ServiceOrder
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	order_post.Service
	order_get.Service
	admin_orders_get.Service
	admin_order_patch.Service
	admin_order_audit_get.Service
}

// InitializeApplication builds the HTTP service (cmd/service). The returned
// cleanup closes the event producer.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, func(), error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideOrderRepository,

		provideIdentityFactory,
		provideStatusPolicy,
		provideGate,
		provideIdentifierRetrier,
		provideEventPublisher,
		provideServiceOrder,

		provideStatusMetricsTask,
		metrics.NewSystemCollector,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
		wire.Bind(new(orderService.IdentityFactory), new(*order_identity.IdentityFactory)),
		wire.Bind(new(retrier.Retrier), new(*backoff_adapter.Retrier)),

		wire.Bind(new(status_metrics.Repository), new(*orderRepo.Repository)),
	)
	return &Application{}, nil, nil
}

type KafkaWorkerApp struct {
	NotificationService *notificationService.Service
}

// InitializeKafkaWorkerApp builds the notification worker (cmd/worker-order-status-changed).
func InitializeKafkaWorkerApp(
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideQuerier,
		provideOrderRepository,

		provideNotifier,
		provideNotificationService,

		wire.Bind(new(notificationService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(notificationService.Notifier), new(*notifier.LogNotifier)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideIdentityFactory(cfg *config.Config) *order_identity.IdentityFactory {
	return order_identity.New(cfg.Orders.Location, nil)
}

func provideStatusPolicy(cfg *config.Config) (orderService.StatusPolicy, error) {
	policy, err := status_policy.New(cfg.Orders.StatusPolicy)
	if err != nil {
		return nil, fmt.Errorf("status policy: %w", err)
	}
	return policy, nil
}

func provideGate(cfg *config.Config) *orderService.Gate {
	return orderService.NewGate(orderService.GateConfig{
		EventDate:       cfg.Orders.EventDate,
		Location:        cfg.Orders.Location,
		AllowTestOrders: cfg.Orders.AllowTestOrders,
	}, nil)
}

func provideIdentifierRetrier(cfg *config.Config) *backoff_adapter.Retrier {
	return orderService.NewIdentifierRetrier(cfg.Orders.NumberMaxAttempts)
}

// provideEventPublisher publishes status changes to Kafka when brokers are
// configured and drops them otherwise.
func provideEventPublisher(ctx context.Context, log logger.Logger, cfg *config.Config) (orderService.EventPublisher, func(), error) {
	if !cfg.Kafka.Enabled() {
		log.Warn("KAFKA_BROKERS not set, order status events are not published")
		return order_events.NoopGateway{}, func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	cleanup := func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}
	return order_events.New(producer, cfg.Kafka.Topic), cleanup, nil
}

func provideServiceOrder(
	repository orderService.Repository,
	txManager orderService.TxManager,
	identity orderService.IdentityFactory,
	policy orderService.StatusPolicy,
	publisher orderService.EventPublisher,
	gate *orderService.Gate,
	identifierRetrier retrier.Retrier,
	log logger.Logger,
) *orderService.Service {
	return orderService.New(
		repository,
		txManager,
		identity,
		policy,
		publisher,
		gate,
		identifierRetrier,
		log,
	)
}

func provideStatusMetricsTask(repository status_metrics.Repository, cfg *config.Config) *status_metrics.StatusMetrics {
	return status_metrics.New(repository, cfg.Tasks.StatusMetricsInterval)
}

func provideTaskList(
	statusMetricsTask *status_metrics.StatusMetrics,
	systemCollector *metrics.SystemCollector,
) []background.Task {
	return []background.Task{
		statusMetricsTask,
		systemCollector,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.Start(ctx, log, tasks...)
}

func provideNotifier(log logger.Logger) *notifier.LogNotifier {
	return notifier.NewLogNotifier(log)
}

func provideNotificationService(
	repository notificationService.Repository,
	notifier notificationService.Notifier,
) *notificationService.Service {
	return notificationService.New(repository, notifier)
}
