package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const checkoutTTL = 30 * time.Minute

// redisSessionStore keeps checkout sessions in Redis so an abandoned
// wizard expires on its own.
type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func checkoutKey(id string) string {
	return "checkout:" + id
}

func (s *redisSessionStore) Save(ctx context.Context, session *CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, checkoutKey(session.ID), data, checkoutTTL).Err()
}

func (s *redisSessionStore) Find(ctx context.Context, id string) (*CheckoutSession, error) {
	data, err := s.rdb.Get(ctx, checkoutKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCheckoutNotFound
		}
		return nil, err
	}
	var session CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, checkoutKey(id)).Err()
}
