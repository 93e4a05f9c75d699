// Package orchestrator drives the main pipeline loop: pull a batch
// from the transaction stream, maintain the rolling window, extract
// and accumulate swap volume, persist the delta, and report progress.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tasmil-labs/tasmilindexer/internal/accumulator"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/storage"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
	"github.com/tasmil-labs/tasmilindexer/internal/swap/cellana"
	"github.com/tasmil-labs/tasmilindexer/internal/swap/hyperion"
	"github.com/tasmil-labs/tasmilindexer/internal/swap/liquidswap"
	"github.com/tasmil-labs/tasmilindexer/internal/swap/sushiswap"
	"github.com/tasmil-labs/tasmilindexer/internal/swap/thala"
	"github.com/tasmil-labs/tasmilindexer/internal/txstream"
	"github.com/tasmil-labs/tasmilindexer/internal/window"
)

// Retention mirrors internal/window.Retention: transactions older than
// this, relative to the wall clock at batch-processing time, are
// dropped before any event is examined.
const Retention = window.Retention

// defaultRegistry is the fixed extractor set Dispatch scans, one per
// tracked protocol.
func defaultRegistry() []swap.Extractor {
	return []swap.Extractor{
		cellana.New(),
		thala.New(),
		sushiswap.New(),
		liquidswap.New(),
		hyperion.New(),
	}
}

// Orchestrator owns the window manager, the aggregate writer, and the
// extractor registry for the lifetime of one Run call.
type Orchestrator struct {
	window   *window.Manager
	writer   *storage.Writer
	registry []swap.Extractor
}

// New wires an Orchestrator from an already-migrated database handle.
func New(writer *storage.Writer, win *window.Manager) *Orchestrator {
	return &Orchestrator{window: win, writer: writer, registry: defaultRegistry()}
}

// Run drives the main loop until stream.NextBatch returns io.EOF, at
// which point it returns nil. Any other NextBatch, window, or storage
// error aborts the loop and is returned to the caller.
func (o *Orchestrator) Run(ctx context.Context, stream txstream.Stream, progress chan<- string) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		txns, meta, err := stream.NextBatch(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("orchestrator: next batch: %w", err)
		}

		now := time.Now()
		if err := o.window.Maintain(ctx, now); err != nil {
			return fmt.Errorf("orchestrator: maintain window: %w", err)
		}

		records := o.extract(txns, now)

		delta := accumulator.NewBatch().Accumulate(records, now)
		if err := o.writer.ApplyDelta(ctx, delta); err != nil {
			return fmt.Errorf("orchestrator: apply delta: %w", err)
		}

		reportProgress(progress, fmt.Sprintf(
			"processed versions %d-%d: %d protocol rows, %d coin rows, %d bucket rows",
			meta.StartVersion, meta.EndVersion, len(delta.Protocols), len(delta.Coins), len(delta.Buckets),
		))
	}
}

// extract walks every surviving transaction's user events through the
// extractor registry. A transaction older than the 24h cutoff or not
// a user transaction is dropped before its events are examined; a
// transaction with no timestamp information is indistinguishable from
// one at Unix epoch and is dropped by the same cutoff check.
func (o *Orchestrator) extract(txns []txstream.Transaction, now time.Time) []swap.Record {
	logger := logging.GetLogger()
	cutoff := now.Add(-Retention).Unix()

	var records []swap.Record
	for _, txn := range txns {
		if txn.Kind != txstream.TxnKindUser {
			continue
		}
		if txn.TimestampSecs < cutoff {
			logger.Debugw("orchestrator: dropping transaction older than retention cutoff", "version", txn.Version, "timestamp", txn.TimestampSecs)
			continue
		}

		swapTxn := swap.Transaction{
			Version:          txn.Version,
			TimestampSeconds: txn.TimestampSecs,
			WriteChanges:     convertWriteChanges(txn.WriteChanges),
		}

		for _, evt := range txn.UserEvents {
			swapEvt := swap.Event{TypeString: evt.TypeString, JSONPayload: evt.JSONPayload}
			rec, ok := swap.Dispatch(o.registry, swapEvt, swapTxn)
			if !ok {
				continue
			}
			records = append(records, *rec)
		}
	}
	return records
}

func convertWriteChanges(in []txstream.WriteChange) []swap.WriteChange {
	out := make([]swap.WriteChange, len(in))
	for i, wc := range in {
		out[i] = swap.WriteChange{Kind: wc.Kind, Address: wc.Address, TypeString: wc.TypeString, JSONData: wc.JSONData}
	}
	return out
}

// reportProgress is a non-blocking send: a slow or absent consumer
// never stalls the pipeline, per the lossy-channel requirement.
func reportProgress(progress chan<- string, msg string) {
	if progress == nil {
		return
	}
	select {
	case progress <- msg:
	default:
	}
}
