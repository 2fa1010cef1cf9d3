package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventagenda/internal/domain"
)

type SelectionRepository struct {
	DB *sql.DB
}

func NewSelectionRepository(db *sql.DB) domain.SelectionRepository {
	return &SelectionRepository{
		DB: db,
	}
}

// Mutate runs fn under a row lock on the group record. Concurrent callers for
// the same key serialize on SELECT ... FOR UPDATE.
func (r *SelectionRepository) Mutate(ctx context.Context, key, eventID string, fn func(g *domain.SelectionGroup) error) (*domain.SelectionGroup, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify(err)
	}
	defer tx.Rollback()

	ensure := `
		INSERT INTO selection_groups (group_key, event_id, selections, version, updated_at)
		VALUES ($1, $2, '{}', 0, NOW())
		ON CONFLICT (group_key) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, ensure, key, eventID); err != nil {
		return nil, classify(err)
	}

	lock := `
		SELECT group_key, event_id, selections, version, updated_at
		FROM selection_groups
		WHERE group_key = $1
		FOR UPDATE
	`
	g, err := scanSelectionGroup(tx.QueryRowContext(ctx, lock, key))
	if err != nil {
		return nil, classify(err)
	}

	if err := fn(g); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(g.Selections)
	if err != nil {
		return nil, fmt.Errorf("encode selections: %w", err)
	}
	g.Version++
	g.UpdatedAt = time.Now().UTC()
	update := `UPDATE selection_groups SET selections = $2, version = $3, updated_at = $4 WHERE group_key = $1`
	if _, err := tx.ExecContext(ctx, update, key, raw, g.Version, g.UpdatedAt); err != nil {
		return nil, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, classify(err)
	}
	return g, nil
}

func (r *SelectionRepository) Get(ctx context.Context, key string) (*domain.SelectionGroup, error) {
	query := `
		SELECT group_key, event_id, selections, version, updated_at
		FROM selection_groups
		WHERE group_key = $1
	`
	g, err := scanSelectionGroup(r.DB.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewSelectionGroup(key, ""), nil
		}
		return nil, classify(err)
	}
	return g, nil
}

func (r *SelectionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SelectionGroup, error) {
	query := `
		SELECT group_key, event_id, selections, version, updated_at
		FROM selection_groups
		WHERE event_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	groups := make([]*domain.SelectionGroup, 0)
	for rows.Next() {
		g, err := scanSelectionGroup(rows)
		if err != nil {
			return nil, classify(err)
		}
		groups = append(groups, g)
	}
	return groups, classify(rows.Err())
}

func scanSelectionGroup(row rowScanner) (*domain.SelectionGroup, error) {
	g := &domain.SelectionGroup{}
	var raw []byte
	if err := row.Scan(&g.Key, &g.EventID, &raw, &g.Version, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.Selections = make(map[string]string)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &g.Selections); err != nil {
			return nil, fmt.Errorf("decode selections for %s: %w", g.Key, err)
		}
	}
	return g, nil
}
