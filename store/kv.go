// Package store provides the durable key-value mapping that backs all
// mutable application data except user accounts. Values are whole JSON
// documents replaced on every write; Update gives callers an atomic
// read-modify-write so concurrent writers cannot lose each other's changes.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Keys for the application collections.
const (
	KeyResources = "resources"
	KeyModules   = "educational_modules"
	KeyQuestions = "qa_questions"
	KeyChannels  = "community_channels"
	KeyPosts     = "community_posts"
	KeyReplies   = "post_replies"
	KeyLikes     = "post_likes"
	KeyProgress  = "course_progress"
	KeyContact   = "contact_messages"
)

var (
	// ErrNotFound signals an absent key on Get.
	ErrNotFound = errors.New("store: key not found")
	// ErrConflict signals that an Update lost the optimistic-concurrency
	// race more times than the retry budget allows.
	ErrConflict = errors.New("store: too many concurrent modifications")
)

// UpdateFunc receives the current value (nil, exists=false when the key is
// absent) and returns the replacement value. Returning an error aborts the
// update without writing.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// KV is the repository interface over the key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// GetJSON unmarshals the value at key into dest. A missing key leaves dest
// untouched and returns false without error, so callers get their zero
// collection for free.
func GetJSON(ctx context.Context, kv KV, key string, dest interface{}) (bool, error) {
	b, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and replaces the value at key.
func SetJSON(ctx context.Context, kv KV, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, b)
}

// Mutate atomically applies fn to the JSON document at key. An absent key is
// presented to fn as the zero value of T (nil slice or map), matching the
// "missing collection is empty" convention used throughout the handlers.
func Mutate[T any](ctx context.Context, kv KV, key string, fn func(cur T) (T, error)) (T, error) {
	var result T
	err := kv.Update(ctx, key, func(current []byte, exists bool) ([]byte, error) {
		var cur T
		if exists {
			if err := json.Unmarshal(current, &cur); err != nil {
				return nil, err
			}
		}
		next, err := fn(cur)
		if err != nil {
			return nil, err
		}
		result = next
		return json.Marshal(next)
	})
	return result, err
}
