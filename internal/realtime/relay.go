package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Relay bridges task events between instances over a Redis pub/sub channel.
// Every locally published mutation is republished tagged with this
// instance's id; the subscriber rebroadcasts events from other instances to
// local sessions and drops its own echoes.
type Relay struct {
	client     *redis.Client
	channel    string
	instanceID string
}

type relayEnvelope struct {
	Instance string `json:"instance"`
	Event    Event  `json:"event"`
}

// NewRelay returns a relay publishing on the given channel.
func NewRelay(client *redis.Client, channel string) *Relay {
	return &Relay{
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
	}
}

// Publish forwards a local mutation event to the other instances.
// Best-effort: a relay failure is logged, local delivery already happened.
func (r *Relay) Publish(ev Event) {
	payload, err := json.Marshal(relayEnvelope{Instance: r.instanceID, Event: ev})
	if err != nil {
		log.Printf("[relay] marshal %s event: %v", ev.Type, err)
		return
	}
	if err := r.client.Publish(context.Background(), r.channel, payload).Err(); err != nil {
		log.Printf("[relay] publish %s event: %v", ev.Type, err)
	}
}

// Run subscribes to the channel and rebroadcasts foreign events to local
// sessions until ctx is canceled. Run blocks; start it on its own goroutine.
func (r *Relay) Run(ctx context.Context, hub *Hub) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.handleMessage([]byte(msg.Payload), hub)
		}
	}
}

// handleMessage rebroadcasts one relayed event unless this instance produced
// it.
func (r *Relay) handleMessage(payload []byte, hub *Hub) {
	var env relayEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		log.Printf("[relay] decode message: %v", err)
		return
	}
	if env.Instance == r.instanceID {
		return
	}
	hub.deliver(env.Event, "", ToAll)
}
