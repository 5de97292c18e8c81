package messaging

import (
	"errors"
	"time"

	"blood-bank-api/config"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// NewKafkaWriter builds the producer used for domain events.
// The writer connects lazily, so a missing broker surfaces on the first publish.
func NewKafkaWriter(cfg config.KafkaConfig, log *logrus.Logger) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Infof("Kafka producer configured for topic %s", cfg.Topic)

	return writer, nil
}
