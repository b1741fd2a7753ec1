// Package storage abstracts the keyed storage the client keeps session
// state in (e.g. the bearer token), so components stay testable without a
// real filesystem.
package storage

// KV is a minimal keyed string store. Get returns common.ErrNotFound
// (wrapped) for absent keys.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
