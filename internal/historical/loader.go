package historical

import (
	"context"

	"golang.org/x/sync/errgroup"

	"spotclear/internal/logger"
	"spotclear/internal/model"
)

const (
	tableUnitInfo           = "unit_info"
	tableVolumeBids         = "volume_bids"
	tablePriceBids          = "price_bids"
	tableInterconnectors    = "interconnector_directions"
	tableGenericConstraints = "generic_constraint_sets"
)

// Fetchers is the set of independent-table fetch functions a caller
// supplies; a nil entry means that table is skipped. Each is invoked at
// most once per Load call, concurrently with the others.
type Fetchers struct {
	UnitInfo           func(ctx context.Context, intervalID string) ([]model.UnitInfo, error)
	VolumeBids         func(ctx context.Context, intervalID string) ([]model.VolumeBid, error)
	PriceBids          func(ctx context.Context, intervalID string) ([]model.PriceBid, error)
	Interconnectors    func(ctx context.Context, intervalID string) ([]model.InterconnectorDirection, error)
	GenericConstraints func(ctx context.Context, intervalID string) ([]model.GenericConstraintSet, error)
}

// Tables is the raw row set Load returns; the caller still builds the
// validating registries (model.NewUnitRegistry, model.NewBidBook, ...)
// since only the caller knows which tables it actually needs populated.
type Tables struct {
	UnitInfo           []model.UnitInfo
	VolumeBids         []model.VolumeBid
	PriceBids          []model.PriceBid
	Interconnectors    []model.InterconnectorDirection
	GenericConstraints []model.GenericConstraintSet
}

// Loader fetches the independent input tables for one dispatch interval,
// concurrently, optionally read-through caching each via Cache.
type Loader struct {
	Cache    *Cache
	Fetchers Fetchers
}

// Load fetches every non-nil Fetchers entry concurrently and assembles the
// results into Tables. A single table's error cancels the others and is
// returned; tables without a registered fetcher are left empty.
func (l *Loader) Load(ctx context.Context, intervalID string) (Tables, error) {
	var out Tables
	g, ctx := errgroup.WithContext(ctx)

	if l.Fetchers.UnitInfo != nil {
		g.Go(func() error {
			rows, err := cached(ctx, l.Cache, intervalID, tableUnitInfo, l.Fetchers.UnitInfo)
			out.UnitInfo = rows
			return err
		})
	}
	if l.Fetchers.VolumeBids != nil {
		g.Go(func() error {
			rows, err := cached(ctx, l.Cache, intervalID, tableVolumeBids, l.Fetchers.VolumeBids)
			out.VolumeBids = rows
			return err
		})
	}
	if l.Fetchers.PriceBids != nil {
		g.Go(func() error {
			rows, err := cached(ctx, l.Cache, intervalID, tablePriceBids, l.Fetchers.PriceBids)
			out.PriceBids = rows
			return err
		})
	}
	if l.Fetchers.Interconnectors != nil {
		g.Go(func() error {
			rows, err := cached(ctx, l.Cache, intervalID, tableInterconnectors, l.Fetchers.Interconnectors)
			out.Interconnectors = rows
			return err
		})
	}
	if l.Fetchers.GenericConstraints != nil {
		g.Go(func() error {
			rows, err := cached(ctx, l.Cache, intervalID, tableGenericConstraints, l.Fetchers.GenericConstraints)
			out.GenericConstraints = rows
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Tables{}, err
	}
	logger.Info("HISTORICAL", "loaded input tables for interval %s", intervalID)
	return out, nil
}

// cached is a generic read-through helper: try the cache, fall back to
// fetch, and populate the cache on a miss. Go has no method type
// parameters, so this stays a free function called once per table.
func cached[T any](ctx context.Context, c *Cache, intervalID, table string, fetch func(context.Context, string) (T, error)) (T, error) {
	var zero T
	if c != nil {
		var rows T
		hit, err := c.Get(intervalID, table, &rows)
		if err != nil {
			return zero, err
		}
		if hit {
			return rows, nil
		}
	}
	rows, err := fetch(ctx, intervalID)
	if err != nil {
		return zero, err
	}
	if c != nil {
		if err := c.Put(intervalID, table, rows); err != nil {
			return zero, err
		}
	}
	return rows, nil
}
