package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/usecase/commands"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKeyTopUpConfirmed is published by the payment provider bridge.
const RoutingKeyTopUpConfirmed = "payment.topup.confirmed"

var errMalformedTopUp = errors.New("malformed top-up message")

type TopUpMessage struct {
	UserID      uuid.UUID `json:"user_id"`
	Amount      string    `json:"amount"`
	ExternalRef string    `json:"external_ref"`
}

type DeliverySource interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

// TopUpConsumer credits wallets from confirmed payment-provider top-ups.
type TopUpConsumer struct {
	source  DeliverySource
	wallets commands.WalletCommands
}

func NewTopUpConsumer(source DeliverySource, wallets commands.WalletCommands) *TopUpConsumer {
	return &TopUpConsumer{source: source, wallets: wallets}
}

func (c *TopUpConsumer) Run(ctx context.Context) error {
	msgs, err := c.source.Deliveries(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.Handle(ctx, d)
		}
	}
}

// Handle acks applied and duplicate top-ups. Messages that can never succeed are dropped;
// anything else goes back on the queue.
func (c *TopUpConsumer) Handle(ctx context.Context, d amqp.Delivery) {
	in, err := decodeTopUp(d.Body)
	if err == nil {
		_, err = c.wallets.CreditTopUp(ctx, in)
	}

	switch {
	case err == nil:
		if aerr := d.Ack(false); aerr != nil {
			slog.Warn("top-up ack failed", "delivery_tag", d.DeliveryTag, "error", aerr)
		}
	case isPermanent(err):
		slog.Error("dropping top-up message", "routing_key", d.RoutingKey, "body", string(d.Body), "error", err)
		_ = d.Nack(false, false)
	default:
		slog.Warn("top-up failed, requeueing", "external_ref", in.ExternalRef, "error", err)
		_ = d.Nack(false, true)
	}
}

func decodeTopUp(body []byte) (commands.TopUpInput, error) {
	var msg TopUpMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return commands.TopUpInput{}, errors.Join(errMalformedTopUp, err)
	}
	if msg.UserID == uuid.Nil {
		return commands.TopUpInput{}, errMalformedTopUp
	}
	amount, err := money.Parse(msg.Amount)
	if err != nil {
		return commands.TopUpInput{}, errors.Join(errMalformedTopUp, err)
	}
	return commands.TopUpInput{UserID: msg.UserID, Amount: amount, ExternalRef: msg.ExternalRef}, nil
}

func isPermanent(err error) bool {
	return errors.Is(err, errMalformedTopUp) ||
		errors.Is(err, wallet.ErrMissingExternalRef) ||
		errors.Is(err, wallet.ErrNonPositiveAmount) ||
		errors.Is(err, wallet.ErrMissingOwner)
}
