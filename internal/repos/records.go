package repos

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection keys. Session scoped keys are built with SessionUserKey and
// SessionCartKey.
const (
	ProductsKey = "products"
	UsersKey    = "users"
	OrdersKey   = "orders"
)

func SessionUserKey(sid string) string { return "session/" + sid + "/user" }
func SessionCartKey(sid string) string { return "session/" + sid + "/cart" }

// Read decodes the value stored under key. When nothing is stored yet, def is
// persisted and returned. A stored value that does not decode into T is an
// error; there is no migration.
func Read[T any](ctx context.Context, kv KV, key string, def T) (T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		if err := Write(ctx, kv, key, def); err != nil {
			return def, err
		}
		return def, nil
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// Peek is Read without seeding: ok is false when nothing is stored.
func Peek[T any](ctx context.Context, kv KV, key string) (T, bool, error) {
	var out T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, true, nil
}

func Write[T any](ctx context.Context, kv KV, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Put(ctx, key, string(b))
}
