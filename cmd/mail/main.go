package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/campus-dev/job-board/backend/internal/config"
	"github.com/campus-dev/job-board/backend/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * config
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * smtp client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancelDial()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("failed to connect to smtp server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // let the broker name the consumer
		false, // ack manually after the mail is sent
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to consume queue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-msgs:
				if !ok {
					logger.Error("delivery channel closed")
					return
				}
				handleDelivery(logger, client, cfg.Email.SMTP.Username, delivery)
			}
		}
	}()

	logger.Info("waiting for messages (press CTRL+C to exit)")
	<-sigChan

	logger.Info("shutting down mail worker")
	cancel()
	wg.Wait()
	logger.Info("mail worker stopped")
}

// handleDelivery drops messages that can never be sent and requeues those that
// failed on the SMTP side.
func handleDelivery(logger *slog.Logger, client *mail.Client, from string, delivery amqp.Delivery) {
	var message notify.Message
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		logger.Error("failed to decode message", slog.String("error", err.Error()))
		_ = delivery.Nack(false, false)
		return
	}
	logger.Info("message received", slog.String("type", message.Type), slog.String("to", message.To))

	subject, body, err := notify.Render(message)
	if err != nil {
		logger.Error("failed to render message", slog.String("type", message.Type), slog.String("error", err.Error()))
		_ = delivery.Nack(false, false)
		return
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		logger.Error("invalid sender", slog.String("error", err.Error()))
		_ = delivery.Nack(false, false)
		return
	}
	if err := m.To(message.To); err != nil {
		logger.Error("invalid recipient", slog.String("error", err.Error()))
		_ = delivery.Nack(false, false)
		return
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, body)

	if err := client.DialAndSend(m); err != nil {
		logger.Error("failed to send mail", slog.String("error", err.Error()))
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}
