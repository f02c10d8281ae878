// Package notify provides the concrete transport behind the engine's
// notification port. The engine hands over a plain event payload; this
// adapter publishes it to RabbitMQ. Failures are the caller's to log and
// ignore, never to act on: notification is advisory and the booking is the
// source of truth.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cinetick/movie-booking/internal/engine"
	"github.com/cinetick/movie-booking/internal/queue"
)

// AMQP publishes booking-confirmed events to the booking.confirmed queue.
// It implements engine.Notifier. A connection is dialed per publish; the
// confirm path treats the whole call as fire-and-forget, so a slow or
// absent broker never holds a request hostage.
type AMQP struct {
	URL string
}

// NewAMQP returns a publisher for the broker configured in the
// environment.
func NewAMQP() *AMQP {
	return &AMQP{URL: queue.BrokerURL()}
}

// BookingConfirmed publishes the event as a persistent JSON message.
func (n *AMQP) BookingConfirmed(ctx context.Context, ev engine.BookingEvent) error {
	conn, err := amqp.Dial(n.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(queue.BookingConfirmedEvent{
		BookingID:        ev.BookingID,
		UserID:           ev.RequesterID,
		UserEmail:        ev.RequesterEmail,
		ShowID:           ev.ShowID,
		Seats:            ev.Seats,
		TotalAmountCents: ev.TotalCents,
		ConfirmedAt:      ev.ConfirmedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	return ch.PublishWithContext(ctx,
		"",                           // default exchange
		queue.BookingConfirmedQueue,  // routing key = queue name
		false,                        // mandatory
		false,                        // immediate
		pub,
	)
}
