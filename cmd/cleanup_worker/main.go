package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/planify/config"
	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/internal/infrastructure/store"
	"github.com/oksasatya/planify/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-cleanup-worker", cfg.Env)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQCleanupQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()
	svc := application.NewProjectService(st.Projects, st.Tasks, nil, logger, nil, "")

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareDurableQueue(ch, cfg.RabbitMQCleanupQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQCleanupQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			switch handle(ctx, svc, logger, msg.Body, msg.Redelivered) {
			case ack:
				_ = msg.Ack(false)
			case requeue:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
		close(done)
	}()

	logger.Infof("cleanup worker listening on queue=%s", cfg.RabbitMQCleanupQueue)
	<-sig
	logger.Info("shutting down...")
	stop()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
