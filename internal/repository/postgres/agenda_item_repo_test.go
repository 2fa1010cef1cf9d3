package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventagenda/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var itemColumns = []string{
	"id", "event_id", "title", "description", "date", "start_time", "end_time", "speaker", "speaker_bio",
	"speaker_images", "location", "category", "is_break", "sort_order", "simultaneous_group_id", "max_attendees",
	"version", "created_by", "last_edited_by", "created_at", "updated_at",
}

func itemRow(rows *sqlmock.Rows, id string, version int, at time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "ev-1", "Go internals", nil, "2025-10-02", "11:00", "12:00", "Rob", nil,
		"{https://img/rob.png}", "Room B", "presentation", false, 1, "slot-1", 40,
		version, "org-1", "org-1", at, at)
}

func TestAgendaItemRepository_Create(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO agenda_items`).
					WithArgs("ev-1", "Talk", nil, "2025-10-02", "09:00", "10:00", "Ada", nil,
						pq.Array([]string{}), nil, "keynote", false, 0, "slot-1", 50,
						1, "org-1", "org-1", at, at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("item-1"))
			},
			wantID: "item-1",
		},
		{
			name: "missing event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO agenda_items`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			errIs: domain.ErrNotFound,
		},
		{
			name: "deadlock is transient",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO agenda_items`).
					WillReturnError(&pq.Error{Code: "40P01"})
			},
			errIs: domain.ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			item := &domain.AgendaItem{
				EventID: "ev-1", Title: "Talk", Description: strPtr(""), Date: "2025-10-02", StartTime: "09:00", EndTime: "10:00",
				Speaker: strPtr("Ada"), SpeakerImages: []string{}, Category: domain.CategoryKeynote,
				SimultaneousGroupID: strPtr("slot-1"), MaxAttendees: intPtr(50), Version: 1,
				CreatedBy: "org-1", LastEditedBy: "org-1", CreatedAt: at, UpdatedAt: at,
			}
			err = NewAgendaItemRepository(db).Create(ctx, item)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, item.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAgendaItemRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("scans nullable columns", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, title`).
			WithArgs("item-1").
			WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), "item-1", 3, at))

		item, err := NewAgendaItemRepository(db).GetByID(ctx, "item-1")
		require.NoError(t, err)
		require.Nil(t, item.Description)
		require.Equal(t, "Rob", *item.Speaker)
		require.Equal(t, []string{"https://img/rob.png"}, item.SpeakerImages)
		require.Equal(t, domain.CategoryPresentation, item.Category)
		require.Equal(t, "slot-1", *item.SimultaneousGroupID)
		require.Equal(t, 40, *item.MaxAttendees)
		require.Equal(t, 3, item.Version)
		require.Equal(t, []string{}, item.AttendeeSelections)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, title`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)
		_, err = NewAgendaItemRepository(db).GetByID(ctx, "nope")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, title`).
			WithArgs("not-a-uuid").
			WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`})
		_, err = NewAgendaItemRepository(db).GetByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NotErrorIs(t, err, domain.ErrTransient)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAgendaItemRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(itemColumns)
	itemRow(rows, "item-1", 1, at)
	itemRow(rows, "item-2", 1, at)
	mock.ExpectQuery(`FROM agenda_items WHERE event_id = \$1`).
		WithArgs("ev-1").
		WillReturnRows(rows)

	items, err := NewAgendaItemRepository(db).ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "item-2", items[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAgendaItemRepository_Update(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		patch *domain.AgendaItemPatch
		mock  func(mock sqlmock.Sqlmock)
		errIs error
	}{
		{
			name:  "partial update without version",
			patch: &domain.AgendaItemPatch{Title: strPtr("Go internals"), Location: strPtr(""), MaxAttendees: intPtr(0)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE agenda_items SET title = \$1, location = \$2, max_attendees = \$3, last_edited_by = \$4, updated_at = \$5, version = version \+ 1 WHERE id = \$6 RETURNING`).
					WithArgs("Go internals", nil, nil, "org-2", at, "item-1").
					WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), "item-1", 2, at))
			},
		},
		{
			name:  "version matches",
			patch: &domain.AgendaItemPatch{Order: intPtr(3), ExpectedVersion: intPtr(1)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE id = \$4 AND version = \$5`).
					WithArgs(3, "org-2", at, "item-1", 1).
					WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), "item-1", 2, at))
			},
		},
		{
			name:  "stale version",
			patch: &domain.AgendaItemPatch{Order: intPtr(3), ExpectedVersion: intPtr(1)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE agenda_items SET`).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("item-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			errIs: domain.ErrVersionConflict,
		},
		{
			name:  "missing with version",
			patch: &domain.AgendaItemPatch{Order: intPtr(3), ExpectedVersion: intPtr(1)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE agenda_items SET`).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("item-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			errIs: domain.ErrNotFound,
		},
		{
			name:  "missing without version",
			patch: &domain.AgendaItemPatch{Order: intPtr(3)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE agenda_items SET`).
					WillReturnError(sql.ErrNoRows)
			},
			errIs: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			item, err := NewAgendaItemRepository(db).Update(ctx, "item-1", tt.patch, "org-2", at)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				require.Equal(t, 2, item.Version)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAgendaItemRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM agenda_items WHERE id = \$1`).
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM agenda_items`).
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec(`DELETE FROM agenda_items`).
		WithArgs("bogus").
		WillReturnError(&pq.Error{Code: "22P02"})

	repo := NewAgendaItemRepository(db)
	require.NoError(t, repo.Delete(ctx, "item-1"))
	require.ErrorIs(t, repo.Delete(ctx, "item-1"), domain.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "bogus"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func intPtr(n int) *int { return &n }
