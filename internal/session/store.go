// Package session keeps the registry of refresh tokens that are still valid.
// A token is usable for refresh only while it is a member of the store.
package session

import "context"

type Store interface {
	Add(ctx context.Context, token string) error
	Remove(ctx context.Context, token string) error
	Contains(ctx context.Context, token string) (bool, error)
	Close() error
}
