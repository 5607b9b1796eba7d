package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/clients/kafka"
	"max.ks1230/expense-tracker/internal/config"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/storage"
	"max.ks1230/expense-tracker/internal/tracing"
)

func main() {
	logger.Info("Reporter init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init("expense-tracker-reporter")
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer closer.Close()

	store, err := newStorage(conf)
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}

	producer, err := kafka.NewProducer(conf.Kafka(), conf.Kafka().ResultsTopic())
	if err != nil {
		logger.Fatal("failed to init kafka producer", zap.Error(err))
	}
	defer producer.Close()

	sender := reports.NewSender(reports.NewGenerator(store), producer)

	consumer, err := kafka.NewConsumer(conf.Kafka(),
		conf.Kafka().ReporterGroup(), conf.Kafka().RequestsTopic(), sender.HandleRequest)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}

	logger.Info("Reporter init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Fatal("failed to start consuming", zap.Error(err))
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
