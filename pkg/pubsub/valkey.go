package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/polygonid/wallet-mediator/internal/log"
)

// payload is the envelope published on valkey channels
type payload struct {
	ID   uuid.UUID `json:"id"`
	Time time.Time `json:"time"`
	Msg  []byte    `json:"msg"`
}

// MarshalBinary implements encoding.BinaryMarshaler
func (p payload) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

type valkeyClient struct {
	client valkey.Client
}

// NewValKeyClient returns a new pubsub client based on Valkey
func NewValKeyClient(client valkey.Client) Client {
	return &valkeyClient{
		client: client,
	}
}

// Publish publishes a new topic payload
func (vk *valkeyClient) Publish(ctx context.Context, topic string, event Event) error {
	msg, err := event.Marshal()
	if err != nil {
		return err
	}
	p, err := payload{
		ID:   uuid.New(),
		Time: time.Now(),
		Msg:  msg,
	}.MarshalBinary()
	if err != nil {
		log.Error(ctx, "error marshalling payload", "err", err)
		return err
	}
	return vk.client.Do(ctx, vk.client.B().Publish().Channel(topic).Message(string(p)).Build()).Error()
}

// Subscribe adds a topic to the subscriber. Messages are received in the background.
func (vk *valkeyClient) Subscribe(ctx context.Context, topic string, callback EventHandler) {
	go func() {
		err := vk.client.Receive(ctx, vk.client.B().Subscribe().Channel(topic).Build(), func(msg valkey.PubSubMessage) {
			var p payload
			if err := json.Unmarshal([]byte(msg.Message), &p); err != nil {
				log.Error(ctx, "error unmarshalling payload", "err", err)
				return
			}
			dispatch(ctx, callback, p.Msg)
		})
		if err != nil && ctx.Err() == nil {
			log.Error(ctx, "error subscribing to topic", "err", err, "topic", topic)
		}
	}()
}

// Close closes the pubsub client
func (vk *valkeyClient) Close() error {
	vk.client.Close()
	return nil
}
