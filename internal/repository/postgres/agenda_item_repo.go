package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"eventagenda/internal/domain"
)

const agendaItemColumns = `id, event_id, title, description, date, start_time, end_time, speaker, speaker_bio,
	speaker_images, location, category, is_break, sort_order, simultaneous_group_id, max_attendees,
	version, created_by, last_edited_by, created_at, updated_at`

type AgendaItemRepository struct {
	DB *sql.DB
}

func NewAgendaItemRepository(db *sql.DB) domain.AgendaItemRepository {
	return &AgendaItemRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgendaItem(row rowScanner) (*domain.AgendaItem, error) {
	item := &domain.AgendaItem{}
	var (
		description, speaker, speakerBio, location, groupID sql.NullString
		maxAttendees                                        sql.NullInt64
		images                                              pq.StringArray
		category                                            string
	)
	err := row.Scan(
		&item.ID, &item.EventID, &item.Title, &description, &item.Date, &item.StartTime, &item.EndTime,
		&speaker, &speakerBio, &images, &location, &category, &item.IsBreak, &item.Order, &groupID,
		&maxAttendees, &item.Version, &item.CreatedBy, &item.LastEditedBy, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Description = nullStringPtr(description)
	item.Speaker = nullStringPtr(speaker)
	item.SpeakerBio = nullStringPtr(speakerBio)
	item.Location = nullStringPtr(location)
	item.SimultaneousGroupID = nullStringPtr(groupID)
	if maxAttendees.Valid {
		n := int(maxAttendees.Int64)
		item.MaxAttendees = &n
	}
	item.SpeakerImages = []string(images)
	if item.SpeakerImages == nil {
		item.SpeakerImages = []string{}
	}
	item.Category = domain.Category(category)
	item.AttendeeSelections = []string{}
	return item, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// emptyToNull stores "" as NULL for optional text columns.
func emptyToNull(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func (r *AgendaItemRepository) Create(ctx context.Context, item *domain.AgendaItem) error {
	query := `
		INSERT INTO agenda_items (event_id, title, description, date, start_time, end_time, speaker, speaker_bio,
			speaker_images, location, category, is_break, sort_order, simultaneous_group_id, max_attendees,
			version, created_by, last_edited_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`
	var maxAttendees any
	if item.MaxAttendees != nil {
		maxAttendees = *item.MaxAttendees
	}
	err := r.DB.QueryRowContext(ctx, query,
		item.EventID, item.Title, emptyToNull(item.Description), item.Date, item.StartTime, item.EndTime,
		emptyToNull(item.Speaker), emptyToNull(item.SpeakerBio), pq.Array(item.SpeakerImages), emptyToNull(item.Location),
		string(item.Category), item.IsBreak, item.Order, emptyToNull(item.SimultaneousGroupID), maxAttendees,
		item.Version, item.CreatedBy, item.LastEditedBy, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrNotFound
		}
		return classify(err)
	}
	return nil
}

func (r *AgendaItemRepository) GetByID(ctx context.Context, id string) (*domain.AgendaItem, error) {
	query := `SELECT ` + agendaItemColumns + ` FROM agenda_items WHERE id = $1`
	item, err := scanAgendaItem(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify(err)
	}
	return item, nil
}

func (r *AgendaItemRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.AgendaItem, error) {
	query := `SELECT ` + agendaItemColumns + ` FROM agenda_items WHERE event_id = $1 ORDER BY date, start_time, sort_order, id`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	items := make([]*domain.AgendaItem, 0)
	for rows.Next() {
		item, err := scanAgendaItem(rows)
		if err != nil {
			return nil, classify(err)
		}
		items = append(items, item)
	}
	return items, classify(rows.Err())
}

// Update applies the non-nil patch fields and bumps version in one statement.
// With ExpectedVersion set, a stale version matches no row and is reported as ErrVersionConflict.
func (r *AgendaItemRepository) Update(ctx context.Context, id string, p *domain.AgendaItemPatch, editedBy string, at time.Time) (*domain.AgendaItem, error) {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", emptyToNull(p.Description))
	}
	if p.Date != nil {
		set("date", *p.Date)
	}
	if p.StartTime != nil {
		set("start_time", *p.StartTime)
	}
	if p.EndTime != nil {
		set("end_time", *p.EndTime)
	}
	if p.Speaker != nil {
		set("speaker", emptyToNull(p.Speaker))
	}
	if p.SpeakerBio != nil {
		set("speaker_bio", emptyToNull(p.SpeakerBio))
	}
	if p.SpeakerImages != nil {
		set("speaker_images", pq.Array(*p.SpeakerImages))
	}
	if p.Location != nil {
		set("location", emptyToNull(p.Location))
	}
	if p.Category != nil {
		set("category", string(*p.Category))
	}
	if p.IsBreak != nil {
		set("is_break", *p.IsBreak)
	}
	if p.Order != nil {
		set("sort_order", *p.Order)
	}
	if p.SimultaneousGroupID != nil {
		set("simultaneous_group_id", emptyToNull(p.SimultaneousGroupID))
	}
	if p.MaxAttendees != nil {
		if *p.MaxAttendees == 0 {
			set("max_attendees", nil)
		} else {
			set("max_attendees", *p.MaxAttendees)
		}
	}
	set("last_edited_by", editedBy)
	set("updated_at", at)
	setClauses = append(setClauses, "version = version + 1")

	where := fmt.Sprintf("id = $%d", n)
	args = append(args, id)
	n++
	if p.ExpectedVersion != nil {
		where += fmt.Sprintf(" AND version = $%d", n)
		args = append(args, *p.ExpectedVersion)
	}

	query := fmt.Sprintf(`UPDATE agenda_items SET %s WHERE %s RETURNING %s`,
		strings.Join(setClauses, ", "), where, agendaItemColumns)
	item, err := scanAgendaItem(r.DB.QueryRowContext(ctx, query, args...))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, classify(err)
	}
	if p.ExpectedVersion == nil {
		return nil, domain.ErrNotFound
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM agenda_items WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, classify(err)
	}
	if exists {
		return nil, domain.ErrVersionConflict
	}
	return nil, domain.ErrNotFound
}

func (r *AgendaItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM agenda_items WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
