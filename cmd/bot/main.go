package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/clients/cache"
	"max.ks1230/expense-tracker/internal/clients/kafka"
	"max.ks1230/expense-tracker/internal/clients/tg"
	"max.ks1230/expense-tracker/internal/config"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/auth"
	"max.ks1230/expense-tracker/internal/model/expenses"
	"max.ks1230/expense-tracker/internal/model/messages"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/sessions"
	"max.ks1230/expense-tracker/internal/model/storage"
	"max.ks1230/expense-tracker/internal/tracing"
)

func main() {
	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init("expense-tracker-bot")
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer closer.Close()

	store, err := newStorage(conf)
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}

	handler := messages.NewHandlerService(
		expenses.NewService(store, conf.App()),
		reports.NewGenerator(store),
		auth.NewService(store),
		sessions.NewManager(),
		conf.App(),
	)

	if conf.Memcached().Enabled() {
		mc, err := cache.NewMemcache(conf.Memcached())
		if err != nil {
			logger.Fatal("failed to init memcached:", zap.Error(err))
		}
		handler.SetCache(mc)
	}

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}

	msgService := messages.NewService(client, handler)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if conf.Kafka().Enabled() {
		producer, err := kafka.NewProducer(conf.Kafka(), conf.Kafka().RequestsTopic())
		if err != nil {
			logger.Fatal("failed to init kafka producer", zap.Error(err))
		}
		defer producer.Close()
		handler.SetReportProducer(producer)

		acceptor := reports.NewAcceptor(client)
		consumer, err := kafka.NewConsumer(conf.Kafka(),
			conf.Kafka().BotGroup(), conf.Kafka().ResultsTopic(), acceptor.AcceptResult)
		if err != nil {
			logger.Fatal("failed to init kafka consumer", zap.Error(err))
		}
		go func() {
			if err := consumer.StartConsuming(ctx); err != nil {
				logger.Error("results consumer stopped", zap.Error(err))
			}
		}()
	}

	go serveMetrics(conf.Metrics().Addr())

	client.ListenUpdates(ctx, msgService)
}

func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}

func newStorage(conf *config.Service) (storage.Storage, error) {
	switch conf.Storage().Driver() {
	case "postgres":
		return storage.NewPostgresStorage(conf.Postgres())
	case "memory":
		return storage.NewInMemStorage(), nil
	default:
		return storage.NewFileStorage(conf.Storage(), conf.App().AuthEnabled())
	}
}
