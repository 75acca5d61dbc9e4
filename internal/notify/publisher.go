package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

// NewPublisher publishes with the mandatory flag, so a message the broker cannot
// route to the queue comes back on the channel. Those returns are logged.
func NewPublisher(ch *amqp.Channel, queue string, timeout time.Duration) *Publisher {
	go logReturns(ch.NotifyReturn(make(chan amqp.Return, 1)))

	return &Publisher{
		ch:      ch,
		queue:   queue,
		timeout: timeout,
	}
}

// DeclareQueue declares the durable mail queue shared by the API and the mail worker.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // keep the queue when no consumer is attached
		false,
		false,
		nil,
	)
}

func (p *Publisher) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true, // mandatory
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// logReturns drains returned messages until the channel closes and reports how
// many it saw.
func logReturns(returns <-chan amqp.Return) int {
	n := 0
	for ret := range returns {
		n++
		slog.Warn("notification returned by broker",
			"routing_key", ret.RoutingKey,
			"reply_code", ret.ReplyCode,
			"reply_text", ret.ReplyText,
			"message_id", ret.MessageId,
		)
	}
	return n
}
