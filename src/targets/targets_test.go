package targets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T, list []Target) *Catalog {
	t.Helper()
	c, err := NewCatalog(list)
	require.NoError(t, err)
	return c
}

func TestDefaultCatalogAlwaysSelectsCat(t *testing.T) {
	c := DefaultCatalog()
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		assert.Equal(t, "cat", c.SelectID(start.AddDate(0, 0, i)))
	}
	target, ok := c.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, "animal", target.PublicName)
	assert.Equal(t, "black", target.Colour)
}

func TestSelectIDStableWithinUTCDay(t *testing.T) {
	c := mustCatalog(t, []Target{
		{ID: "a", Colour: "red"},
		{ID: "b", Colour: "blue"},
		{ID: "c", Colour: "green"},
	})
	day := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	want := c.SelectID(day)
	for _, offset := range []time.Duration{time.Second, time.Hour, 12 * time.Hour, 23*time.Hour + 59*time.Minute + 59*time.Second} {
		assert.Equal(t, want, c.SelectID(day.Add(offset)), "offset %s", offset)
	}

	// a non-UTC instant on the same UTC day
	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, want, c.SelectID(time.Date(2025, time.March, 14, 20, 0, 0, 0, tokyo)))
}

func TestSelectIDPeriodic(t *testing.T) {
	list := []Target{
		{ID: "a", Colour: "red"},
		{ID: "b", Colour: "yellow"},
		{ID: "c", Colour: "blue"},
		{ID: "d", Colour: "black"},
	}
	c := mustCatalog(t, list)
	start := time.Date(2023, time.June, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		day := start.AddDate(0, 0, i)
		assert.Equal(t, c.SelectID(day), c.SelectID(day.AddDate(0, 0, len(list))))
	}

	epoch := time.Unix(0, 0).UTC()
	for i, target := range list {
		assert.Equal(t, target.ID, c.SelectID(epoch.AddDate(0, 0, i)))
	}
}

func TestSelectIDSkipsNonEasyTargets(t *testing.T) {
	c := mustCatalog(t, []Target{
		{ID: "violet", Colour: "purple"},
		{ID: "sun", Colour: "yellow"},
		{ID: "rose", Colour: "pink"},
	})
	assert.Equal(t, []string{"sun"}, c.EasyIDs())
	assert.Equal(t, "sun", c.SelectID(time.Now()))
}

func TestSelectIDFallsBackToDefault(t *testing.T) {
	c := mustCatalog(t, []Target{{ID: "cloud", Colour: "white"}})
	assert.Equal(t, DefaultTargetID, c.SelectID(time.Now()))

	empty := mustCatalog(t, nil)
	assert.Equal(t, DefaultTargetID, empty.SelectID(time.Now()))
	_, ok := empty.Lookup(DefaultTargetID)
	assert.False(t, ok)
}

func TestSelectIDBeforeEpoch(t *testing.T) {
	c := mustCatalog(t, []Target{
		{ID: "a", Colour: "red"},
		{ID: "b", Colour: "blue"},
		{ID: "c", Colour: "green"},
	})
	lastDay := time.Date(1969, time.December, 31, 18, 0, 0, 0, time.UTC)
	assert.EqualValues(t, -1, DaysSinceEpoch(lastDay))
	assert.Equal(t, "c", c.SelectID(lastDay))
}

func TestNewCatalogRejectsBadIDs(t *testing.T) {
	_, err := NewCatalog([]Target{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)

	_, err = NewCatalog([]Target{{ID: ""}})
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-02-29T23:30:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 1, 30, 0, 0, time.UTC), d)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestLoadFileKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	content := `targets:
  - id: tree
    prompt: an oak tree
    public_name: plant
    category: nature
    colour: green
  - id: bus
    prompt: a london bus
    public_name: vehicle
    category: transport
    colour: red
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"tree", "bus"}, c.EasyIDs())

	bus, ok := c.Lookup("bus")
	require.True(t, ok)
	assert.Equal(t, "a london bus", bus.Prompt)
	assert.Equal(t, "transport", bus.Category)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("targets:\n  - id: a\n  - id: a\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("targets: [\n"))
	assert.Error(t, err)
}
