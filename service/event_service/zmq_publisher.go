package event_service

import (
	"context"
	"fmt"

	model "token-registry-service/models"

	"github.com/go-zeromq/zmq4"
	"github.com/rs/zerolog/log"
)

// Topic carried as the first frame of every published event message
const eventTopic = "registry_event"

// ZmqPublisher publishes committed ledger events on a ZeroMQ PUB socket so
// downstream indexers can follow the registry in real time.
type ZmqPublisher struct {
	address string

	ctx    context.Context
	cancel context.CancelFunc
	socket zmq4.Socket
}

// NewZmqPublisher create a publisher bound to address, e.g. "tcp://127.0.0.1:28632"
func NewZmqPublisher(address string) (*ZmqPublisher, error) {
	ctx, cancel := context.WithCancel(context.Background())
	socket := zmq4.NewPub(ctx)

	if err := socket.Listen(address); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to bind event publisher to %s: %w", address, err)
	}

	log.Info().Str("address", address).Msg("event publisher listening")
	return &ZmqPublisher{
		address: address,
		ctx:     ctx,
		cancel:  cancel,
		socket:  socket,
	}, nil
}

// Publish send one event as a two-frame message: topic, then the wire-format
// log line
func (p *ZmqPublisher) Publish(event *model.EventLog) error {
	msg := zmq4.NewMsgFrom([]byte(eventTopic), []byte(event.String()))
	if err := p.socket.Send(msg); err != nil {
		return fmt.Errorf("failed to publish event seq %d: %w", event.Seq, err)
	}
	return nil
}

// Close stop the publisher
func (p *ZmqPublisher) Close() error {
	p.cancel()
	return p.socket.Close()
}
