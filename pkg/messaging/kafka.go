package messaging

import (
	"fmt"
	"time"

	"food-marketplace/pkg/utils"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// InitProducer creates an asynchronous producer for the configured brokers. Callers must
// drain Successes and Errors.
func InitProducer(config utils.KafkaConfig, logger *zap.Logger) (sarama.AsyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewAsyncProducer(config.Brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	logger.Info("Kafka producer initialized", zap.Strings("brokers", config.Brokers))
	return producer, nil
}

// HeaderCarrier adapts sarama record headers to an OpenTelemetry TextMapCarrier.
type HeaderCarrier []sarama.RecordHeader

func (c HeaderCarrier) Get(key string) string {
	for _, h := range c {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *HeaderCarrier) Set(key, value string) {
	*c = append(*c, sarama.RecordHeader{
		Key:   []byte(key),
		Value: []byte(value),
	})
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, len(c))
	for i, h := range c {
		keys[i] = string(h.Key)
	}
	return keys
}
