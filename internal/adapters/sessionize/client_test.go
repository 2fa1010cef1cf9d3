package sessionize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventagenda/internal/domain"
)

const allView = `{
  "sessions": [
    {"id": "101", "title": "Go internals", "description": "Deep dive", "startsAt": "2025-10-02T11:00:00", "endsAt": "2025-10-02T12:00:00",
     "isServiceSession": false, "isPlenumSession": false, "speakers": ["sp-1"], "roomId": 7}
  ],
  "speakers": [{"id": "sp-1", "fullName": "Rob Pike", "bio": "Go co-author", "profilePicture": "https://img/rob.png"}],
  "rooms": [{"id": 7, "name": "Room B", "sort": 1}]
}`

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("decodes the All view", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/abc123/view/All", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(allView))
		}))
		defer srv.Close()

		data, err := NewHTTPFetcher(srv.Client(), srv.URL).Fetch(context.Background(), "abc123")
		require.NoError(t, err)
		require.Len(t, data.Sessions, 1)
		assert.Equal(t, "Go internals", data.Sessions[0].Title)
		assert.Equal(t, 11, data.Sessions[0].StartsAt.Hour())
		assert.Equal(t, []string{"sp-1"}, data.Sessions[0].Speakers)
		assert.Equal(t, "Rob Pike", data.Speakers[0].FullName)
		assert.Equal(t, 7, data.Rooms[0].ID)
	})

	tests := []struct {
		name   string
		status int
		errIs  error
	}{
		{name: "unknown event", status: http.StatusNotFound, errIs: domain.ErrNotFound},
		{name: "upstream outage", status: http.StatusBadGateway, errIs: domain.ErrTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()
			_, err := NewHTTPFetcher(srv.Client(), srv.URL).Fetch(context.Background(), "abc123")
			assert.ErrorIs(t, err, tt.errIs)
		})
	}

	t.Run("empty id", func(t *testing.T) {
		_, err := NewHTTPFetcher(nil, "").Fetch(context.Background(), " ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
