package worker

import (
	"context"
	"fmt"
	"os"
)

// Worker интерфейс для всех воркеров
type Worker interface {
	// Start блокируется до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	Stop() error

	Name() string
}

// ConsumerName - имя потребителя в consumer group, уникальное для процесса
func ConsumerName(prefix string) string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%s-%d", prefix, hostname, os.Getpid())
}
