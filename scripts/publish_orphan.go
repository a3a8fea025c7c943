//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/listing-portal/internal/domain"
)

// Публикует событие ImageOrphanedEvent и ждёт, пока cleanup-воркер его подтвердит.
// go run scripts/publish_orphan.go -public-id listings/abc123
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	group := flag.String("group", "listing-portal-workers", "Consumer group of the cleanup worker")
	publicID := flag.String("public-id", "", "Image host public id to destroy")
	formID := flag.String("form", "", "Form session id (optional)")
	wait := flag.Duration("wait", 30*time.Second, "How long to wait for the worker")
	flag.Parse()

	if *publicID == "" {
		log.Fatal("-public-id is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.ImageOrphanedEvent{
		EventID:  uuid.New(),
		PublicID: *publicID,
		FormID:   *formID,
		Reason:   domain.OrphanReasonRemoved,
		At:       time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamImageOrphaned,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamImageOrphaned)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Public ID: %s\n", event.PublicID)

	fmt.Printf("\nWaiting for group %s to ack...\n", *group)

	timeout := time.After(*wait)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for the cleanup worker")
			return
		case <-ticker.C:
			pending, err := client.XPendingExt(ctx, &redis.XPendingExtArgs{
				Stream: domain.StreamImageOrphaned,
				Group:  *group,
				Start:  msgID,
				End:    msgID,
				Count:  1,
			}).Result()
			if err != nil {
				// группы ещё нет, воркер не запущен
				continue
			}

			groups, err := client.XInfoGroups(ctx, domain.StreamImageOrphaned).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group || len(pending) > 0 {
					continue
				}
				if g.LastDeliveredID >= msgID {
					fmt.Printf("Acked by %s (pending: %d)\n", g.Name, g.Pending)
					return
				}
			}
		}
	}
}
