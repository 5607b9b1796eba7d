package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"

	"max.ks1230/expense-tracker/internal/logger"
)

type consumerConfig interface {
	producerConfig
}

// HandleFunc processes one consumed message payload.
type HandleFunc func(ctx context.Context, payload []byte)

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	handle        HandleFunc
}

func NewConsumer(cfg consumerConfig, group, topic string, handle HandleFunc) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), group, config)
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         topic,
		handle:        handle,
	}, err
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		c.handle(session.Context(), message.Value)
		session.MarkMessage(message, "")
	}
	return nil
}
