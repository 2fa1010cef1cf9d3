// Package agendafile reads agenda items from a YAML document, the format used
// by the import command.
//
//	days:
//	  - date: 2026-05-01
//	    items:
//	      - title: Opening keynote
//	        start_time: "09:00"
//	        end_time: "09:45"
//	        category: keynote
//	items:
//	  - title: Speaker dinner
//	    date: 2026-05-01
//	    start_time: "19:00"
//	    end_time: "22:00"
package agendafile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"eventagenda/internal/domain"
)

type document struct {
	Days  []day  `yaml:"days"`
	Items []item `yaml:"items"`
}

type day struct {
	Date  string `yaml:"date"`
	Items []item `yaml:"items"`
}

type item struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Date          string   `yaml:"date"`
	StartTime     string   `yaml:"start_time"`
	EndTime       string   `yaml:"end_time"`
	Speaker       string   `yaml:"speaker"`
	SpeakerBio    string   `yaml:"speaker_bio"`
	SpeakerImages []string `yaml:"speaker_images"`
	Location      string   `yaml:"location"`
	Category      string   `yaml:"category"`
	IsBreak       bool     `yaml:"is_break"`
	Order         int      `yaml:"order"`
	Group         string   `yaml:"group"`
	MaxAttendees  *int     `yaml:"max_attendees"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (it item) toDomain(date string) *domain.AgendaItem {
	if strings.TrimSpace(it.Date) != "" {
		date = it.Date
	}
	images := it.SpeakerImages
	if images == nil {
		images = []string{}
	}
	return &domain.AgendaItem{
		Title:               strings.TrimSpace(it.Title),
		Description:         optional(it.Description),
		Date:                strings.TrimSpace(date),
		StartTime:           strings.TrimSpace(it.StartTime),
		EndTime:             strings.TrimSpace(it.EndTime),
		Speaker:             optional(it.Speaker),
		SpeakerBio:          optional(it.SpeakerBio),
		SpeakerImages:       images,
		Location:            optional(it.Location),
		Category:            domain.Category(strings.TrimSpace(it.Category)),
		IsBreak:             it.IsBreak,
		Order:               it.Order,
		SimultaneousGroupID: optional(it.Group),
		MaxAttendees:        it.MaxAttendees,
	}
}

// Parse decodes an agenda document. Items nested under a day inherit its date
// unless they set their own. Unknown keys are rejected.
func Parse(r io.Reader) ([]*domain.AgendaItem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty agenda file", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: parse agenda file: %v", domain.ErrInvalidInput, err)
	}

	var out []*domain.AgendaItem
	for _, d := range doc.Days {
		for _, it := range d.Items {
			out = append(out, it.toDomain(d.Date))
		}
	}
	for _, it := range doc.Items {
		out = append(out, it.toDomain(""))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: agenda file has no items", domain.ErrInvalidInput)
	}
	return out, nil
}
