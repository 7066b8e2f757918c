package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sharath018/pacs-portal-backend/config"
)

// ContentEvent is published after every tenant-scoped write so that
// consumers (page cache invalidator) can react without blocking the request
type ContentEvent struct {
	PacsID   uint   `json:"pacs_id"`
	Slug     string `json:"slug"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

var (
	kafkaWriter  *kafka.Writer
	kafkaBrokers []string
	kafkaTopic   string
)

// InitializeKafka sets up the shared writer. Kafka being down is not fatal:
// publishes fail quietly and the page cache expires on its own TTL.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, content events disabled")
		return
	}

	kafkaBrokers = strings.Split(cfg.KafkaBrokers, ",")
	kafkaTopic = cfg.KafkaTopic

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(kafkaBrokers...),
		Topic:        kafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
	}

	log.Printf("✅ Kafka writer ready (topic %s)", kafkaTopic)
}

// KafkaEnabled reports whether the writer was configured
func KafkaEnabled() bool {
	return kafkaWriter != nil
}

// KafkaBrokers returns the configured broker list
func KafkaBrokers() []string {
	return kafkaBrokers
}

// KafkaContentTopic returns the content event topic name
func KafkaContentTopic() string {
	return kafkaTopic
}

// PublishContentEvent emits a content-change event keyed by slug
func PublishContentEvent(ev ContentEvent) {
	if kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ Could not marshal content event: %v", err)
		return
	}

	err = kafkaWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(ev.Slug),
		Value: payload,
	})
	if err != nil {
		log.Printf("⚠️ Could not publish content event for %s: %v", ev.Slug, err)
	}
}
