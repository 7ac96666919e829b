package targets

import (
	"fmt"
	"time"
)

// DefaultTargetID is returned when no easy target is available
const DefaultTargetID = "cat"

const secondsPerDay = 24 * 60 * 60

// EasyColours are the colours eligible for the daily rotation
var EasyColours = []string{"red", "yellow", "blue", "green", "black"}

// Target is the secret concept a player has to draw on a given day
type Target struct {
	ID         string `yaml:"id"`
	Prompt     string `yaml:"prompt"`
	PublicName string `yaml:"public_name"`
	Category   string `yaml:"category"`
	Colour     string `yaml:"colour"`
}

// IsEasy reports whether the target takes part in the daily rotation
func (t Target) IsEasy() bool {
	for _, c := range EasyColours {
		if t.Colour == c {
			return true
		}
	}
	return false
}

// Catalog is the ordered, read-only set of targets known to the process
type Catalog struct {
	order []string
	byID  map[string]Target
}

// NewCatalog builds a catalog keeping the order in which targets are given
func NewCatalog(list []Target) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(list)),
		byID:  make(map[string]Target, len(list)),
	}
	for _, t := range list {
		if t.ID == "" {
			return nil, fmt.Errorf("target with empty id")
		}
		if _, ok := c.byID[t.ID]; ok {
			return nil, fmt.Errorf("duplicate target id %q", t.ID)
		}
		c.order = append(c.order, t.ID)
		c.byID[t.ID] = t
	}
	return c, nil
}

// DefaultCatalog returns the built-in target table
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog([]Target{
		{ID: "cat", Prompt: "cat", PublicName: "animal", Category: "animal", Colour: "black"},
	})
	return c
}

// Len returns the number of targets in the catalog
func (c *Catalog) Len() int {
	return len(c.order)
}

// Lookup returns the target registered under id
func (c *Catalog) Lookup(id string) (Target, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// EasyIDs returns the ids of the easy targets in catalog order
func (c *Catalog) EasyIDs() []string {
	var ids []string
	for _, id := range c.order {
		if c.byID[id].IsEasy() {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectID picks the target of the day for date. Every instant of the same UTC
// calendar day maps to the same id.
func (c *Catalog) SelectID(date time.Time) string {
	easy := c.EasyIDs()
	if len(easy) == 0 {
		return DefaultTargetID
	}
	n := int64(len(easy))
	idx := ((DaysSinceEpoch(date) % n) + n) % n
	return easy[idx]
}

// DaysSinceEpoch returns the number of whole days between the Unix epoch and t,
// rounded towards negative infinity.
func DaysSinceEpoch(t time.Time) int64 {
	secs := t.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		days--
	}
	return days
}

// ParseDate parses a date override given either as a calendar date or an RFC 3339 timestamp
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t.UTC(), nil
}
