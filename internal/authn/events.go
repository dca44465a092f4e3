package authn

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/remote"
)

func (s *Service) publish(ctx context.Context, ev remote.AuthEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal auth event failed")
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.AuthEventsChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("event", string(ev.Event)).Msg("publish auth event failed")
	}
}

// Subscribe relays auth events from Redis PubSub until cancel is called or
// ctx is done. The returned channel is closed afterwards.
func (s *Service) Subscribe(ctx context.Context) (<-chan remote.AuthEvent, func()) {
	ctx, cancel := context.WithCancel(ctx)
	sub := s.rdb.Subscribe(ctx, config.CacheKey.AuthEventsChannel())
	out := make(chan remote.AuthEvent, 16)

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			_ = sub.Close()
		})
	}

	go func() {
		defer close(out)
		defer stop()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev remote.AuthEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					s.log.Warn().Err(err).Msg("malformed auth event dropped")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, stop
}
