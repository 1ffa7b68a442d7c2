package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo. Data is stored as a JSON document.
type snapshotRepo struct {
	store *Store
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ins := builder().Insert(tableSnapshots).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, snap.Timestamp.UnixNano(), string(data))
	if err := r.store.exec(ctx, ins); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	sel := builder().Select("id", "sequence", "timestamp", "data").
		From(builder().Table(tableSnapshots)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1)

	var latest *Snapshot
	err := r.store.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			snap Snapshot
			ts   int64
			raw  string
		)
		if err := rows.Scan(&snap.ID, &snap.Sequence, &ts, &raw); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
			return fmt.Errorf("unmarshal snapshot data: %w", err)
		}
		snap.Timestamp = fromNanos(ts)
		latest = &snap
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return latest, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// The (keep+1)th newest snapshot and everything older goes.
	sel := builder().Select("id", "timestamp").
		From(builder().Table(tableSnapshots)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Offset(keep).
		Limit(1)

	var (
		thresholdID int
		thresholdTS int64
		found       bool
	)
	err := r.store.query(ctx, sel, func(rows *entsql.Rows) error {
		found = true
		return rows.Scan(&thresholdID, &thresholdTS)
	})
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if !found {
		return nil
	}

	del := builder().Delete(tableSnapshots).Where(entsql.Or(
		entsql.LT("timestamp", thresholdTS),
		entsql.And(entsql.EQ("timestamp", thresholdTS), entsql.LTE("id", thresholdID)),
	))
	if err := r.store.exec(ctx, del); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
