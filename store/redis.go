package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "careerloans:save"

// Redis keeps the tree as one JSON document under key. Nodes that carry an
// "Id" value are also mirrored as hashes under key:node:<id> so they can be
// inspected with redis-cli.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(addr string, db int, key string) *Redis {
	if key == "" {
		key = defaultRedisKey
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &Redis{client: rdb, key: key}
}

func (r *Redis) indexKey() string { return r.key + ":nodes" }

func (r *Redis) nodeKey(id string) string { return r.key + ":node:" + id }

func (r *Redis) Save(ctx context.Context, root *Node) error {
	data, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}

	old, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("list mirrored nodes: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key, data, 0)
		if len(old) > 0 {
			pipe.Del(ctx, old...)
		}
		pipe.Del(ctx, r.indexKey())

		walk(root, func(n *Node) {
			id, ok := n.GetValue("Id")
			if !ok || id == "" {
				return
			}
			fields := make([]any, 0, 2*len(n.Values)+2)
			fields = append(fields, "_name", n.Name)
			for _, v := range n.Values {
				fields = append(fields, v.Name, v.Value)
			}
			k := r.nodeKey(id)
			pipe.HSet(ctx, k, fields...)
			pipe.SAdd(ctx, r.indexKey(), k)
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context) (*Node, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis load: %w", err)
	}

	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse save: %w", err)
	}
	return &root, nil
}

// Mirrored returns the hash kept for the node with the given id.
func (r *Redis) Mirrored(ctx context.Context, id string) (map[string]string, error) {
	m, err := r.client.HGetAll(ctx, r.nodeKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, ErrNotFound
	}
	return m, nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Nodes {
		walk(c, fn)
	}
}
