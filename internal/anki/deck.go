package anki

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Note is one deck entry. Fields are in model order.
type Note struct {
	Fields []string
	// GUID identifies the note across imports.
	GUID string
	// SortField is the value Anki sorts and checksums the note by.
	SortField string
	Tags      []string
}

func (n *Note) validate(m *Model) error {
	if len(n.Fields) != len(m.Fields) {
		return fmt.Errorf("note %q has %d fields, model %q expects %d", n.GUID, len(n.Fields), m.Name, len(m.Fields))
	}
	if n.GUID == "" {
		return fmt.Errorf("note without GUID")
	}
	for _, t := range n.Tags {
		if t == "" || strings.ContainsAny(t, " \t\n") {
			return fmt.Errorf("note %q: invalid tag %q", n.GUID, t)
		}
	}
	return nil
}

// Deck is a named collection of notes.
type Deck struct {
	ID    int64
	Name  string
	Notes []*Note
}

// NewDeck returns an empty deck.
func NewDeck(id int64, name string) *Deck {
	return &Deck{ID: id, Name: name}
}

// AddNote appends n to the deck.
func (d *Deck) AddNote(n *Note) {
	d.Notes = append(d.Notes, n)
}

// RandomDeckID returns an id drawn uniformly from [1<<30, 1<<31). Ids are
// not checked against decks already present in the user's collection.
func RandomDeckID() int64 {
	return 1<<30 + rand.Int64N(1<<30)
}

func (d *Deck) toJSON(now time.Time) map[string]any {
	return map[string]any{
		"id":        d.ID,
		"name":      d.Name,
		"desc":      "",
		"collapsed": false,
		"conf":      1,
		"dyn":       0,
		"extendNew": 0,
		"extendRev": 50,
		"lrnToday":  []int{0, 0},
		"newToday":  []int{0, 0},
		"revToday":  []int{0, 0},
		"timeToday": []int{0, 0},
		"mod":       now.Unix(),
		"usn":       -1,
	}
}
