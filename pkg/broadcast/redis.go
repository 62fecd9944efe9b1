package broadcast

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const (
	topicCancel      = "steward:cancel"
	topicTermination = "steward:terminate"

	subscribeBuffer = 64
)

// Redis is a Broadcaster on Redis pub/sub. Same Redis the work queue uses;
// pub/sub gives us the cluster-wide fan-out the queue deliberately doesn't.
type Redis struct {
	opts *Options
	rdb  *redis.Client
}

// NewRedisBroadcaster connects to the given Redis backend.
func NewRedisBroadcaster(opts *Options) (*Redis, error) {
	conn, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	conn.TLSConfig = opts.TLSConfig
	return &Redis{opts: opts, rdb: redis.NewClient(conn)}, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

func (r *Redis) PublishCancel(ctx context.Context, req *CancelRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, topicCancel, payload).Err()
}

func (r *Redis) PublishTermination(ctx context.Context, t *Termination) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, topicTermination, payload).Err()
}

func (r *Redis) SubscribeCancel(ctx context.Context) (<-chan *CancelRequest, error) {
	out := make(chan *CancelRequest, subscribeBuffer)
	err := r.subscribe(ctx, topicCancel, func(payload string) {
		req := &CancelRequest{}
		if err := json.Unmarshal([]byte(payload), req); err != nil {
			log.Println("[Broadcast] dropping bad cancel payload:", err)
			return
		}
		out <- req
	}, func() { close(out) })
	return out, err
}

func (r *Redis) SubscribeTermination(ctx context.Context) (<-chan *Termination, error) {
	out := make(chan *Termination, subscribeBuffer)
	err := r.subscribe(ctx, topicTermination, func(payload string) {
		t := &Termination{}
		if err := json.Unmarshal([]byte(payload), t); err != nil {
			log.Println("[Broadcast] dropping bad termination payload:", err)
			return
		}
		out <- t
	}, func() { close(out) })
	return out, err
}

func (r *Redis) subscribe(ctx context.Context, topic string, deliver func(string), closed func()) error {
	ps := r.rdb.Subscribe(ctx, topic)

	// force the SUBSCRIBE onto the wire so missed-message windows are
	// bounded before we return
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return err
	}

	go func() {
		defer closed()
		defer ps.Close()
		ch := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				deliver(msg.Payload)
			}
		}
	}()
	return nil
}
