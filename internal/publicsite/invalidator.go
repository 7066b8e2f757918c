package publicsite

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sharath018/pacs-portal-backend/utils"
)

// StartCacheInvalidator consumes content events and evicts the cached
// page for the affected slug. Runs until ctx is cancelled. When Kafka is
// not configured the cache simply expires on TTL.
func StartCacheInvalidator(ctx context.Context, svc Service) {
	if !utils.KafkaEnabled() {
		log.Println("ℹ️ Kafka disabled, page cache relies on TTL expiry")
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  utils.KafkaBrokers(),
		Topic:    utils.KafkaContentTopic(),
		GroupID:  "pacs-page-cache",
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	go func() {
		defer reader.Close()
		log.Println("✅ Page cache invalidator started")

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("⚠️ Content event read failed: %v", err)
				time.Sleep(2 * time.Second)
				continue
			}

			var ev utils.ContentEvent
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				log.Printf("⚠️ Bad content event payload: %v", err)
				continue
			}
			if ev.Slug == "" {
				continue
			}

			if err := svc.InvalidateSlug(ctx, ev.Slug); err != nil {
				log.Printf("⚠️ Could not evict page cache for %s: %v", ev.Slug, err)
			}
		}
	}()
}
