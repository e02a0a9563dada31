package composables

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comfortcurators/portal/pkg/constants"
	"github.com/comfortcurators/portal/pkg/repo"
)

var ErrNoPool = errors.New("no database pool found in context")

func WithPool(ctx context.Context, pool *pgxpool.Pool) context.Context {
	return context.WithValue(ctx, constants.PoolKey, pool)
}

func UsePool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, ok := ctx.Value(constants.PoolKey).(*pgxpool.Pool)
	if !ok || pool == nil {
		return nil, ErrNoPool
	}
	return pool, nil
}

func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, constants.TxKey, tx)
}

// UseTx returns the querier repositories run on: the open transaction, otherwise the pool.
func UseTx(ctx context.Context) (repo.Tx, error) {
	if tx, ok := ctx.Value(constants.TxKey).(repo.Tx); ok {
		return tx, nil
	}
	pool, err := UsePool(ctx)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// InTx runs fn in a transaction. Nested calls join the outer transaction; without a pool (the
// in-memory backend) fn runs directly.
func InTx(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok {
		return fn(ctx)
	}
	pool, err := UsePool(ctx)
	if errors.Is(err, ErrNoPool) {
		return fn(ctx)
	}
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return fn(WithTx(ctx, tx))
	})
}
