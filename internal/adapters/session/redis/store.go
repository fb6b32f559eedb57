// Package redis implementa o store de sessões sobre Redis. A sessão vai
// serializada em JSON e o TTL do Redis cuida da expiração.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sndot/internal/auth"
)

const sessionKeyPrefix = "sndot:sessao:"

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Open cria o cliente e valida a conexão antes de devolver o store.
func Open(addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewStore(client), nil
}

func (s *Store) Save(ctx context.Context, sess auth.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.ID, raw, ttl).Err()
}

func (s *Store) Find(ctx context.Context, id string) (auth.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	if err != nil {
		return auth.Session{}, err
	}

	var sess auth.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return auth.Session{}, err
	}
	return sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
