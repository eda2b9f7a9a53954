// Package snapshot captures and restores the observable state of document
// regions: values, formulas, number formats, and a font/fill subset.
//
// Snapshots are the unit of undo: the executor captures one before and one
// after each mutation, and undo/redo writes a captured state back. A
// snapshot is immutable after capture.
package snapshot

import (
	"context"
	"fmt"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/logging"
)

// RegionState is the captured state of one region.
type RegionState struct {
	Values        backend.Grid
	Formulas      [][]string
	NumberFormats [][]string
	Font          backend.FontSpec
	FillColor     *string
}

// Snapshot maps region keys ("Sheet!A1:B2") to captured state.
type Snapshot map[string]RegionState

// Snapshotter captures and restores region snapshots over one connection.
type Snapshotter struct {
	conn backend.Connection
	log  *logging.Logger
}

// New creates a snapshotter. A nil logger discards output.
func New(conn backend.Connection, log *logging.Logger) *Snapshotter {
	if log == nil {
		log = logging.Null
	}
	return &Snapshotter{conn: conn, log: log.WithComponent("snapshot")}
}

// Capture reads the observable state of every region in one transaction.
//
// Returns nil when the backend is unreachable or the read fails: the caller
// treats a nil snapshot as "no snapshot available" and undo of the entry
// becomes a no-op rather than an error. Every region must carry an explicit
// sheet name.
func (s *Snapshotter) Capture(ctx context.Context, regions []backend.RegionRef) Snapshot {
	if len(regions) == 0 {
		return Snapshot{}
	}

	snap := make(Snapshot, len(regions))
	err := s.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		ranges := make(map[string]backend.Range, len(regions))
		for _, ref := range regions {
			if err := ref.Validate(); err != nil {
				return err
			}
			sheet, err := tx.Sheet(ref.Sheet)
			if err != nil {
				return err
			}
			rng, err := sheet.Range(ref.Address)
			if err != nil {
				return err
			}
			rng.Load(backend.PropValues, backend.PropFormulas, backend.PropNumberFormats, backend.PropFormat)
			ranges[ref.Key()] = rng
		}

		if err := tx.Sync(ctx); err != nil {
			return err
		}

		for key, rng := range ranges {
			state, err := readState(rng)
			if err != nil {
				return fmt.Errorf("region %s: %w", key, err)
			}
			snap[key] = state
		}
		return nil
	})
	if err != nil {
		s.log.Warn("capture failed, no snapshot available: %v", err)
		return nil
	}
	return snap
}

// Restore writes a captured snapshot back in one transaction. Regions are
// re-resolved by the literal sheet name encoded in each key. Fields absent
// from the snapshot are left untouched on the target.
//
// Restore is not guaranteed to be the exact inverse of an intervening
// mutation when the region's shape changed between capture and restore.
func (s *Snapshotter) Restore(ctx context.Context, snap Snapshot) error {
	if len(snap) == 0 {
		return nil
	}

	return s.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		for key, state := range snap {
			ref, err := backend.ParseRegionKey(key)
			if err != nil {
				return err
			}
			sheet, err := tx.Sheet(ref.Sheet)
			if err != nil {
				return err
			}
			rng, err := sheet.Range(ref.Address)
			if err != nil {
				return err
			}

			if state.Values != nil {
				rng.SetValues(state.Values)
			}
			if state.Formulas != nil {
				rng.SetFormulas(state.Formulas)
			}
			if state.NumberFormats != nil {
				rng.SetNumberFormats(state.NumberFormats)
			}
			format := backend.FormatSpec{Font: state.Font, FillColor: state.FillColor}
			if !format.IsZero() {
				rng.ApplyFormat(format)
			}
		}
		return nil
	})
}

// readState copies loaded range properties into an owned RegionState.
func readState(rng backend.Range) (RegionState, error) {
	values, err := rng.Values()
	if err != nil {
		return RegionState{}, err
	}
	formulas, err := rng.Formulas()
	if err != nil {
		return RegionState{}, err
	}
	numberFormats, err := rng.NumberFormats()
	if err != nil {
		return RegionState{}, err
	}
	format, err := rng.Format()
	if err != nil {
		return RegionState{}, err
	}

	return RegionState{
		Values:        values.Clone(),
		Formulas:      backend.CloneStringGrid(formulas),
		NumberFormats: backend.CloneStringGrid(numberFormats),
		Font:          format.Font,
		FillColor:     format.FillColor,
	}, nil
}
