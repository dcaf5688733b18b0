package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"skilloncall/internal/disclosure/adapters"
	"skilloncall/internal/disclosure/handler"
	disclosuremetrics "skilloncall/internal/disclosure/metrics"
	"skilloncall/internal/disclosure/plan"
	"skilloncall/internal/disclosure/ports"
	"skilloncall/internal/disclosure/service"
	contactstore "skilloncall/internal/disclosure/store/contacts"
	eventstore "skilloncall/internal/disclosure/store/events"
	ledgerstore "skilloncall/internal/disclosure/store/ledger"
	jwttoken "skilloncall/internal/jwt_token"
	"skilloncall/internal/platform/config"
	"skilloncall/internal/platform/httpserver"
	"skilloncall/internal/platform/kafka"
	"skilloncall/internal/platform/logger"
	httpmetrics "skilloncall/internal/platform/metrics"
	"skilloncall/internal/platform/postgres"
	"skilloncall/internal/platform/redis"
	"skilloncall/pkg/platform/outbox"
)

// stores groups the storage backends selected at startup.
type stores struct {
	ledger   ports.CreditLedger
	events   ports.AuditLog
	contacts ports.ContactDirectory
	outbox   outbox.Store
	tx       ports.TxRunner
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	bootLog := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.FromEnv(bootLog)
	log := logger.New(cfg.LogFormat, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}
	st := buildStores(db, log)

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		st.events = eventstore.NewRevealCache(st.events, redisClient.Client,
			eventstore.WithCacheTTL(cfg.Redis.RevealTTL),
			eventstore.WithCacheLogger(log),
		)
		log.Info("reveal cache enabled")
	}

	kafkaCfg := kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic}
	kafkaClient, err := kafka.NewClient(kafkaCfg)
	if err != nil {
		return err
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
		if err := kafka.EnsureTopic(ctx, kafkaClient, kafkaCfg); err != nil {
			return err
		}
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(disclosuremetrics.New(registry)),
		service.WithConfig(service.Config{
			DailyLimit:   cfg.Disclosure.DailyLimit,
			MonthlyLimit: cfg.Disclosure.MonthlyLimit,
			GrantTTL:     cfg.Disclosure.GrantTTL,
		}),
	}
	if st.tx != nil {
		opts = append(opts, service.WithTxRunner(st.tx))
	}
	if kafkaClient != nil {
		opts = append(opts, service.WithPublisher(adapters.NewOutboxPublisher(st.outbox)))
	}
	catalog := plan.NewCatalog(cfg.Disclosure.TierAllotments, cfg.Disclosure.DefaultAllotment)
	disclosure, err := service.New(st.ledger, st.events, catalog, st.contacts, opts...)
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "skilloncall", "skilloncall-api")
	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.Get("/healthz", healthz(db, redisClient))
	handler.New(disclosure, log, httpmetrics.New(registry), jwttoken.NewJWTServiceAdapter(jwtService)).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting skilloncall", "addr", cfg.Addr, "postgres", db != nil, "kafka", kafkaClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if kafkaClient != nil {
		relay, err := outbox.NewRelay(st.outbox, kafka.NewProducer(kafkaClient, cfg.Kafka.Topic),
			outbox.WithRelayLogger(log),
			outbox.WithBatchSize(cfg.Kafka.BatchSize),
			outbox.WithPollInterval(cfg.Kafka.PollInterval),
		)
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func buildStores(db *sql.DB, log *slog.Logger) stores {
	if db == nil {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return stores{
			ledger:   ledgerstore.NewInMemory(),
			events:   eventstore.NewInMemory(),
			contacts: contactstore.NewInMemory(),
			outbox:   outbox.NewInMemory(),
		}
	}
	return stores{
		ledger:   ledgerstore.NewPostgres(db),
		events:   eventstore.NewPostgres(db),
		contacts: contactstore.NewPostgres(db),
		outbox:   outbox.NewPostgres(db),
		tx:       postgres.NewTxRunner(db),
	}
}

func healthz(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}

