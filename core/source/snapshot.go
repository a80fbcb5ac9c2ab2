package source

import (
	"context"
	"time"

	"intake-reconciler/core/match"
	"intake-reconciler/core/storage"

	"golang.org/x/sync/errgroup"
)

// Snapshot is one decoded pair of input collections.
type Snapshot struct {
	Primary   []match.PrimaryRecord
	Secondary []match.SecondaryRecord
	// Loaded is when the documents were read.
	Loaded time.Time
}

// Load reads and decodes both collections concurrently.
func Load(ctx context.Context, primary Loader, primaryMapping Mapping, secondary Loader, secondaryMapping Mapping) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := primary.Load(gctx)
		if err != nil {
			return err
		}
		snap.Primary, err = DecodePrimary(data, primaryMapping)
		return err
	})

	g.Go(func() error {
		data, err := secondary.Load(gctx)
		if err != nil {
			return err
		}
		snap.Secondary, err = DecodeSecondary(data, secondaryMapping)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.Loaded = time.Now()
	return snap, nil
}

// LoadSnapshot resolves the configured loaders and mappings and loads both collections.
func LoadSnapshot(ctx context.Context, cfg Config, client storage.Client, bucket string) (*Snapshot, error) {
	pm, err := MappingByName(cfg.PrimaryMapping)
	if err != nil {
		return nil, err
	}
	sm, err := MappingByName(cfg.SecondaryMapping)
	if err != nil {
		return nil, err
	}
	pl, sl, err := NewLoaders(cfg, client, bucket)
	if err != nil {
		return nil, err
	}
	return Load(ctx, pl, pm, sl, sm)
}
