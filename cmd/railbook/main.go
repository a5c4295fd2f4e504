package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-chi/chi/v5"

	"github.com/railbook/railbook/config"
	"github.com/railbook/railbook/internal/booking"
	bookingApp "github.com/railbook/railbook/internal/booking/application"
	bookingInfra "github.com/railbook/railbook/internal/booking/infrastructure"
	"github.com/railbook/railbook/internal/railway"
	"github.com/railbook/railbook/internal/railway/snapshot"
	"github.com/railbook/railbook/internal/schedule"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
	pkgInfra "github.com/railbook/railbook/pkg/infrastructure"
	kafkaAdapter "github.com/railbook/railbook/pkg/infrastructure/kafka/adapter"
	redisAdapter "github.com/railbook/railbook/pkg/infrastructure/redis/adapter"
	wmAdapter "github.com/railbook/railbook/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/railbook/railbook/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		appLogger.Error(ctx, "configuration load failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	eventBus, subscriber, err := buildEventBus(cfg, appLogger)
	if err != nil {
		appLogger.Error(ctx, "event bus setup failed", map[string]interface{}{
			"backend": cfg.EventBus.Backend,
			"error":   err,
		})
		os.Exit(1)
	}

	// The in-memory bus delivers events to local handlers; every other
	// backend is observed by consuming them back off the transport.
	eventLogger := bookingApp.NewBookingEventLogger(appLogger)
	if subscriber != nil {
		consumer := bookingInfra.NewEventConsumer(subscriber, eventLogger, appLogger)
		if err := consumer.Start(ctx, bookingApp.EventPassengerRegistered, bookingApp.EventItineraryCommitted); err != nil {
			appLogger.Error(ctx, "event consumer setup failed", map[string]interface{}{
				"backend": cfg.EventBus.Backend,
				"group":   cfg.EventBus.ConsumerGroup,
				"error":   err,
			})
			os.Exit(1)
		}
	} else {
		eventBus.RegisterHandler(bookingApp.EventPassengerRegistered, eventLogger)
		eventBus.RegisterHandler(bookingApp.EventItineraryCommitted, eventLogger)
	}

	store, err := buildSnapshotStore(cfg)
	if err != nil {
		appLogger.Error(ctx, "snapshot store setup failed", map[string]interface{}{
			"backend": cfg.Storage.Backend,
			"error":   err,
		})
		os.Exit(1)
	}

	office := railway.NewOffice(pkgInfra.GenerateUUID)

	bookingSlice := booking.NewBookingSlice(office, store, eventBus, appLogger)
	scheduleSlice := schedule.NewScheduleSlice(office, appLogger)

	if cfg.Bootstrap.ImportFile != "" {
		cmd := bookingApp.NewImportFileCommand(bookingApp.ImportFileData{Path: cfg.Bootstrap.ImportFile})
		if err := bookingSlice.Buses().ImportFile.Dispatch(ctx, cmd); err != nil {
			appLogger.Error(ctx, "bootstrap import failed", map[string]interface{}{
				"path":  cfg.Bootstrap.ImportFile,
				"error": err,
			})
			os.Exit(1)
		}
	}

	router := chi.NewRouter()
	bookingSlice.RegisterRoutes(router)
	scheduleSlice.RegisterRoutes(router)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info(ctx, "signal received, shutting down", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	serverAddress := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	go func() {
		appLogger.Info(ctx, "server starting", map[string]interface{}{"address": serverAddress})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "server failed", map[string]interface{}{"error": err})
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "server shutdown failed", map[string]interface{}{"error": err})
	}

	appLogger.Info(context.Background(), "server stopped", nil)
}

// buildEventBus picks the event transport. Commands and queries are always
// in-process; only domain events travel on this bus. Every backend except
// the in-memory one also returns the subscriber that reads events back, with
// kafka and redis joining the configured consumer group.
func buildEventBus(cfg config.AppConfig, appLogger pkgApp.AppLogger) (bookingApp.EventBus, message.Subscriber, error) {
	wmLogger := wmAdapter.NewWatermillLoggerAdapter(appLogger)

	switch cfg.EventBus.Backend {
	case "memory":
		return pkgInfra.NewSimpleEventBus[pkgDomain.Event[bookingApp.BookingEventData], bookingApp.BookingEventData](appLogger), nil, nil
	case "channels":
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		return newWatermillBus(pubSub, appLogger), pubSub, nil
	case "kafka":
		publisher, err := kafkaAdapter.NewKafkaPublisher(cfg.EventBus.Kafka.Brokers, wmLogger)
		if err != nil {
			return nil, nil, err
		}
		subscriber, err := kafkaAdapter.NewKafkaSubscriber(cfg.EventBus.Kafka.Brokers, cfg.EventBus.ConsumerGroup, wmLogger)
		if err != nil {
			return nil, nil, err
		}
		return newWatermillBus(publisher, appLogger), subscriber, nil
	case "redis":
		client := redisAdapter.NewRedisClient(cfg.EventBus.Redis.Addr, cfg.EventBus.Redis.Password)
		publisher, err := redisAdapter.NewRedisStreamPublisher(client, wmLogger)
		if err != nil {
			return nil, nil, err
		}
		subscriber, err := redisAdapter.NewRedisStreamSubscriber(client, cfg.EventBus.ConsumerGroup, wmLogger)
		if err != nil {
			return nil, nil, err
		}
		return newWatermillBus(publisher, appLogger), subscriber, nil
	default:
		return nil, nil, fmt.Errorf("unknown event bus backend %q", cfg.EventBus.Backend)
	}
}

func newWatermillBus(publisher message.Publisher, appLogger pkgApp.AppLogger) bookingApp.EventBus {
	return wmAdapter.NewWatermillEventBus[pkgDomain.Event[bookingApp.BookingEventData], bookingApp.BookingEventData](publisher, appLogger)
}

func buildSnapshotStore(cfg config.AppConfig) (snapshot.Store, error) {
	switch cfg.Storage.Backend {
	case "file":
		return bookingInfra.NewFileSnapshotStore(cfg.Storage.Dir), nil
	case "postgres":
		return bookingInfra.NewGormSnapshotStore(cfg.Storage.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
