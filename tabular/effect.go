package tabular

import (
	"context"

	"github.com/on-the-ground/closure_ive_go/effects"
	effectmodel "github.com/on-the-ground/closure_ive_go/effects/model"
	"github.com/on-the-ground/closure_ive_go/shared/helper"
	"go.uber.org/zap"
)

// TablePayload is the sealed set of store operations performed as effects.
// Payloads are partitioned by table name, so operations on one table are
// applied in the order they were performed.
type TablePayload interface {
	effectmodel.Partitionable
	sealedTablePayload()
}

type CreateTablePayload struct {
	Table Table
}

func (p CreateTablePayload) PartitionKey() string { return p.Table.Name }
func (CreateTablePayload) sealedTablePayload()    {}

type InsertPayload struct {
	Table string
	Row   Row
}

func (p InsertPayload) PartitionKey() string { return p.Table }
func (InsertPayload) sealedTablePayload()    {}

type CountPayload struct {
	Table string
}

func (p CountPayload) PartitionKey() string { return p.Table }
func (CountPayload) sealedTablePayload()    {}

// WithEffectHandler serves table effects from store. The store belongs to
// the handler from here on: teardown closes it after queued effects drain.
func WithEffectHandler(
	ctx context.Context,
	bufferSize, numWorkers int,
	store Store,
) (context.Context, func() context.Context) {
	return effects.WithResumablePartitionableEffectHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(bufferSize, numWorkers),
		effectmodel.EffectTable,
		func(ctx context.Context, payload TablePayload) (any, error) {
			return handleTableEffect(ctx, store, payload)
		},
		func() {
			if err := store.Close(); err != nil {
				zap.L().Warn("failed to close table store", zap.Error(err))
			}
		},
	)
}

func handleTableEffect(ctx context.Context, store Store, payload TablePayload) (any, error) {
	switch payload := payload.(type) {
	case CreateTablePayload:
		return nil, store.CreateTableIfAbsent(ctx, payload.Table)
	case InsertPayload:
		return store.InsertOne(ctx, payload.Table, payload.Row)
	case CountPayload:
		return store.Count(ctx, payload.Table)
	default:
		panic("unexpected table payload type")
	}
}

// EffectCreateTable creates t through the table handler in ctx unless it exists.
func EffectCreateTable(ctx context.Context, t Table) error {
	_, err := effects.AwaitResumableEffect[TablePayload, any](ctx, effectmodel.EffectTable, CreateTablePayload{Table: t})
	return err
}

// EffectInsert inserts row into table and returns the rows affected.
func EffectInsert(ctx context.Context, table string, row Row) (int64, error) {
	return helper.GetTypedValueOf[int64](func() (any, error) {
		return effects.AwaitResumableEffect[TablePayload, any](ctx, effectmodel.EffectTable, InsertPayload{Table: table, Row: row})
	})
}

// EffectCount returns the number of rows in table.
func EffectCount(ctx context.Context, table string) (int64, error) {
	return helper.GetTypedValueOf[int64](func() (any, error) {
		return effects.AwaitResumableEffect[TablePayload, any](ctx, effectmodel.EffectTable, CountPayload{Table: table})
	})
}
