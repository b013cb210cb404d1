// Package screens contains the small pieces of per-screen state that live
// only while a screen is shown: the home grade filter, the unit accordion,
// the lesson reader and the vocabulary cursor.
package screens

import "github.com/aliskhannn/maktabati-bot/internal/domain/entities"

// GradeFilter is the level selector on the home screen.
type GradeFilter struct {
	GradeID string `json:"grade_id"`
}

func NewGradeFilter() GradeFilter {
	return GradeFilter{GradeID: entities.GradeAll}
}

// Apply returns the books visible under the filter, keeping catalog order.
func (f GradeFilter) Apply(grades []entities.Grade, books []entities.Book) []entities.Book {
	if f.GradeID == "" || f.GradeID == entities.GradeAll {
		return books
	}

	level, ok := "", false
	for _, g := range grades {
		if g.ID == f.GradeID {
			level, ok = g.Level, true
			break
		}
	}
	if !ok {
		return nil
	}

	var out []entities.Book
	for _, b := range books {
		if b.Level == level {
			out = append(out, b)
		}
	}
	return out
}

// Accordion tracks which unit is expanded on the unit screen. At most one unit
// is open; an empty Expanded means all are collapsed.
type Accordion struct {
	Expanded string `json:"expanded,omitempty"`
}

// NewAccordion opens the first of the given units, if any.
func NewAccordion(units []entities.Unit) Accordion {
	if len(units) == 0 {
		return Accordion{}
	}
	return Accordion{Expanded: units[0].ID}
}

// Toggle collapses unitID when it is open, otherwise opens it instead of the
// current one.
func (a Accordion) Toggle(unitID string) Accordion {
	if a.Expanded == unitID {
		return Accordion{}
	}
	return Accordion{Expanded: unitID}
}

func (a Accordion) IsExpanded(unitID string) bool {
	return a.Expanded != "" && a.Expanded == unitID
}

// Reader is the lesson screen's audio toggle and highlighted paragraph.
// Active is -1 while nothing is highlighted.
type Reader struct {
	Playing bool `json:"playing"`
	Active  int  `json:"active"`
}

func NewReader() Reader {
	return Reader{Active: -1}
}

// TogglePlay flips playback; starting playback with nothing highlighted
// highlights the first paragraph.
func (r Reader) TogglePlay() Reader {
	if !r.Playing && r.Active < 0 {
		r.Active = 0
	}
	r.Playing = !r.Playing
	return r
}

// Select highlights paragraph i. Indexes outside [0, count) are ignored.
func (r Reader) Select(i, count int) Reader {
	if i < 0 || i >= count {
		return r
	}
	r.Active = i
	return r
}

// VocabCursor walks a vocabulary list without wrapping around.
type VocabCursor struct {
	Index int `json:"index"`
}

// Next moves forward unless the cursor is on the last of length entries.
func (c VocabCursor) Next(length int) VocabCursor {
	if c.Index < length-1 {
		c.Index++
	}
	return c
}

// Prev moves back unless the cursor is on the first entry.
func (c VocabCursor) Prev() VocabCursor {
	if c.Index > 0 {
		c.Index--
	}
	return c
}

// Clamp brings the cursor back into [0, length-1] after the list changed.
func (c VocabCursor) Clamp(length int) VocabCursor {
	switch {
	case length <= 0 || c.Index < 0:
		c.Index = 0
	case c.Index > length-1:
		c.Index = length - 1
	}
	return c
}

func (c VocabCursor) AtStart() bool { return c.Index == 0 }

func (c VocabCursor) AtEnd(length int) bool { return c.Index >= length-1 }
