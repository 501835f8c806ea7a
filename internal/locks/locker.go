package locks

import "context"

// ProjectLocker serializes invoice creation per project. It is a
// best-effort guard that narrows the race window; the store-level claim
// on billed_in_invoice_id is what actually prevents double billing.
type ProjectLocker interface {
	// Acquire returns false when another holder owns the key.
	Acquire(ctx context.Context, key string) (bool, error)

	Release(ctx context.Context, key string) error
}

// NoopLocker always grants the lock. Used when redis is not configured
// and in tests.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context, key string) (bool, error) { return true, nil }

func (NoopLocker) Release(ctx context.Context, key string) error { return nil }
