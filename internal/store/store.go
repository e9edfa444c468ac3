package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store is the installation-wide key-value store. A missing key is reported
// through found=false, never as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ErrSchema is returned when a stored record cannot be read by this build.
var ErrSchema = errors.New("incompatible stored record")

// SchemaVersion is written into every record envelope.
const SchemaVersion = 1

type Kind string

const (
	KindProfile    Kind = "profile"
	KindSession    Kind = "session"
	KindTheme      Kind = "theme"
	KindWorkingDay Kind = "working_day"
	KindHistory    Kind = "history"
	KindFoodCache  Kind = "food_cache"
)

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Kind          Kind            `json:"kind"`
	Data          json.RawMessage `json:"data"`
}

// GetRecord decodes the record stored at key into a T.
func GetRecord[T any](ctx context.Context, s Store, key string, kind Kind) (T, bool, error) {
	var zero T
	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return zero, found, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, false, fmt.Errorf("%w: decode %s envelope at %q: %v", ErrSchema, kind, key, err)
	}
	if env.Kind != kind {
		return zero, false, fmt.Errorf("%w: key %q holds %q, expected %q", ErrSchema, key, env.Kind, kind)
	}
	if env.SchemaVersion < 1 || env.SchemaVersion > SchemaVersion {
		return zero, false, fmt.Errorf("%w: key %q has schema version %d, supported up to %d", ErrSchema, key, env.SchemaVersion, SchemaVersion)
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, false, fmt.Errorf("%w: decode %s at %q: %v", ErrSchema, kind, key, err)
	}
	return out, true, nil
}

// PutRecord wraps v in a versioned envelope and writes it at key.
func PutRecord[T any](ctx context.Context, s Store, key string, kind Kind, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	raw, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Kind: kind, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", kind, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s at %q: %w", kind, key, err)
	}
	return nil
}
