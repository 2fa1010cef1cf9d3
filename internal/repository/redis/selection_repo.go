// Package redis stores selection group records in Redis. Each group is a JSON
// document at agenda:group:{key}; an event's groups are indexed in the set
// agenda:event:{eventID}:groups.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"eventagenda/internal/domain"
)

// GroupKey returns the Redis key holding the selection record for key.
func GroupKey(key string) string {
	return "agenda:group:" + key
}

// EventGroupsKey returns the Redis set indexing every group key of an event.
func EventGroupsKey(eventID string) string {
	return "agenda:event:" + eventID + ":groups"
}

type SelectionRepository struct {
	rdb goredis.UniversalClient
}

func NewSelectionRepository(rdb goredis.UniversalClient) domain.SelectionRepository {
	return &SelectionRepository{rdb: rdb}
}

// classify marks optimistic-lock losses and connection failures as transient.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, goredis.TxFailedErr) || errors.Is(err, io.EOF) {
		return &domain.TransientError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domain.TransientError{Err: err}
	}
	return err
}

// Mutate is an optimistic read-modify-write: WATCH the record, apply fn, and
// write it back in MULTI/EXEC. A concurrent writer aborts the EXEC with
// TxFailedErr, which surfaces as a transient error for the caller to retry.
func (r *SelectionRepository) Mutate(ctx context.Context, key, eventID string, fn func(g *domain.SelectionGroup) error) (*domain.SelectionGroup, error) {
	redisKey := GroupKey(key)
	var result *domain.SelectionGroup
	err := r.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		g, err := load(ctx, tx, redisKey, key, eventID)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}
		g.Version++
		g.UpdatedAt = time.Now().UTC()
		if g.EventID == "" {
			g.EventID = eventID
		}
		raw, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("encode selection group: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, redisKey, raw, 0)
			pipe.SAdd(ctx, EventGroupsKey(g.EventID), key)
			return nil
		})
		if err != nil {
			return err
		}
		result = g
		return nil
	}, redisKey)
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func load(ctx context.Context, c getter, redisKey, key, eventID string) (*domain.SelectionGroup, error) {
	raw, err := c.Get(ctx, redisKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.NewSelectionGroup(key, eventID), nil
	}
	if err != nil {
		return nil, err
	}
	g := &domain.SelectionGroup{}
	if err := json.Unmarshal(raw, g); err != nil {
		return nil, fmt.Errorf("decode selection group %s: %w", key, err)
	}
	if g.Selections == nil {
		g.Selections = make(map[string]string)
	}
	return g, nil
}

func (r *SelectionRepository) Get(ctx context.Context, key string) (*domain.SelectionGroup, error) {
	g, err := load(ctx, r.rdb, GroupKey(key), key, "")
	if err != nil {
		return nil, classify(err)
	}
	return g, nil
}

func (r *SelectionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SelectionGroup, error) {
	keys, err := r.rdb.SMembers(ctx, EventGroupsKey(eventID)).Result()
	if err != nil {
		return nil, classify(err)
	}
	groups := make([]*domain.SelectionGroup, 0, len(keys))
	if len(keys) == 0 {
		return groups, nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = GroupKey(k)
	}
	values, err := r.rdb.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, classify(err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		g := &domain.SelectionGroup{}
		if err := json.Unmarshal([]byte(s), g); err != nil {
			return nil, fmt.Errorf("decode selection group %s: %w", keys[i], err)
		}
		if g.Selections == nil {
			g.Selections = make(map[string]string)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
