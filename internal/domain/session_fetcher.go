package domain

import (
	"context"
	"strings"
	"time"
)

// LocalTime is a Sessionize timestamp. The API sends wall-clock times without
// a zone ("2025-10-02T11:00:00"); those decode as UTC. RFC 3339 input is accepted too.
type LocalTime struct {
	time.Time
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return &time.ParseError{Layout: "2006-01-02T15:04:05", Value: s, Message: ": unrecognized sessionize timestamp"}
}

// SessionFetcher fetches schedule data from Sessionize (or a test double).
type SessionFetcher interface {
	Fetch(ctx context.Context, sessionizeID string) (SessionFetcherResponse, error)
}

// SessionFetcherResponse is the Sessionize All API response shape.
type SessionFetcherResponse struct {
	Sessions []SessionFetcherSession `json:"sessions"`
	Speakers []SessionFetcherSpeaker `json:"speakers"`
	Rooms    []SessionFetcherRoom    `json:"rooms"`
}

// SessionFetcherRoom is a room in the Sessionize All response (flat list).
type SessionFetcherRoom struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

// SessionFetcherSession is a session in the Sessionize All response.
type SessionFetcherSession struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartsAt         LocalTime `json:"startsAt"`
	EndsAt           LocalTime `json:"endsAt"`
	IsServiceSession bool      `json:"isServiceSession"`
	IsPlenumSession  bool      `json:"isPlenumSession"`
	Speakers         []string  `json:"speakers"`
	RoomID           int       `json:"roomId"`
}

// SessionFetcherSpeaker is a speaker in the Sessionize All response.
type SessionFetcherSpeaker struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Bio            string `json:"bio"`
	TagLine        string `json:"tagLine"`
	ProfilePicture string `json:"profilePicture"`
}

// AgendaImportService turns external schedules into agenda items.
type AgendaImportService interface {
	ImportSessionize(ctx context.Context, eventID, actorID, sessionizeID string) (int, error)
	ImportItems(ctx context.Context, eventID, actorID string, items []*AgendaItem) (int, error)
}
