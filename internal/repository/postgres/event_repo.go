package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventagenda/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, owner_id, agenda_last_updated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.OwnerID, e.AgendaLastUpdated, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	return classify(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, owner_id, current_agenda_item_id, agenda_last_updated, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var current sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.OwnerID, &current, &e.AgendaLastUpdated, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify(err)
	}
	if current.Valid {
		e.CurrentAgendaItemID = &current.String
	}
	return e, nil
}

// SetCurrentAgendaItem only accepts an item of the same event; the subquery
// makes the membership check and the write a single statement.
func (r *eventRepository) SetCurrentAgendaItem(ctx context.Context, eventID string, itemID *string, at time.Time) error {
	var (
		result sql.Result
		err    error
	)
	if itemID == nil {
		query := `
			UPDATE events SET current_agenda_item_id = NULL, agenda_last_updated = $2, updated_at = $2
			WHERE id = $1
		`
		result, err = r.DB.ExecContext(ctx, query, eventID, at)
	} else {
		query := `
			UPDATE events SET current_agenda_item_id = $2, agenda_last_updated = $3, updated_at = $3
			WHERE id = $1
			  AND EXISTS (SELECT 1 FROM agenda_items WHERE id = $2 AND event_id = $1)
		`
		result, err = r.DB.ExecContext(ctx, query, eventID, *itemID, at)
	}
	if err != nil {
		return classify(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ClearCurrentAgendaItemIf(ctx context.Context, eventID, itemID string, at time.Time) (bool, error) {
	query := `
		UPDATE events SET current_agenda_item_id = NULL, agenda_last_updated = $3, updated_at = $3
		WHERE id = $1 AND current_agenda_item_id = $2
	`
	result, err := r.DB.ExecContext(ctx, query, eventID, itemID, at)
	if err != nil {
		return false, classify(err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *eventRepository) TouchAgenda(ctx context.Context, eventID string, at time.Time) error {
	query := `UPDATE events SET agenda_last_updated = GREATEST(agenda_last_updated, $2) WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, eventID, at)
	if err != nil {
		return classify(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
