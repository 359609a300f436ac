package track

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

func TestLookupByName(t *testing.T) {
	tests := []struct {
		name      string
		want      bool
		length    float64
		lapRecord float64
		corners   int
	}{
		{name: "Monaco Grand Prix", want: true, length: 3.337, lapRecord: 70.246, corners: 10},
		{name: "Silverstone", want: true, length: 5.891, lapRecord: 85.351, corners: 10},
		{name: "Monza", want: true, length: 5.793, lapRecord: 79.119, corners: 6},
		{name: "Spa-Francorchamps", want: true, length: 7.004, lapRecord: 103.003, corners: 10},
		{name: "Buddh International Circuit", want: true, length: 5.125, lapRecord: 85.249, corners: 15},
		{name: "monza", want: false},
		{name: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupByName(tt.name)
			assert.Equal(t, tt.want, ok)
			if !tt.want {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.length, got.Length)
			assert.Equal(t, tt.lapRecord, got.LapRecord)
			assert.Len(t, got.Corners, tt.corners)
			assert.Len(t, got.Sectors, 3)
		})
	}
}

func TestCatalogCornerData(t *testing.T) {
	tr, ok := LookupByName("Monza")
	require.True(t, ok)
	c := tr.Corners[0]
	assert.Equal(t, model.Corner{
		Number: 1, Name: "Prima Variante", Type: model.CornerSlow,
		EntrySpeed: 340, ExitSpeed: 120, Gear: 2, BrakingZone: true, GForceExpected: 4.2,
	}, c)

	for _, tr := range Default().All() {
		for i, c := range tr.Corners {
			assert.Equal(t, i+1, c.Number, "%s corner numbering", tr.Name)
			assert.True(t, c.Gear >= 1 && c.Gear <= 8, "%s gear range", tr.Name)
		}
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"Monaco Grand Prix", "Silverstone", "Monza", "Spa-Francorchamps",
		"Buddh International Circuit",
	}, Names())
}

func TestLoadCatalog(t *testing.T) {
	doc := `
tracks:
  - name: Test Ring
    length: 4.2
    turns: 2
    lapRecord: 80.5
    sectors:
      - {number: 1, length: 2.1, corners: [1], expectedTime: 40}
      - {number: 2, length: 2.1, corners: [2], expectedTime: 40.5}
    corners:
      - {number: 1, name: Hairpin, type: slow, entrySpeed: 200, exitSpeed: 80, gear: 2, brakingZone: true, gForceExpected: 3.0}
      - {number: 2, name: Kink, type: fast, entrySpeed: 290, exitSpeed: 285, gear: 7, brakingZone: false, gForceExpected: 1.4}
`
	tracks, err := LoadCatalog(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Test Ring", tracks[0].Name)
	assert.Equal(t, model.CornerSlow, tracks[0].Corners[0].Type)
	assert.Equal(t, []int{2}, tracks[0].Sectors[1].Corners)

	c := NewCatalog(builtin...)
	require.NoError(t, c.Add(tracks...))
	got, ok := c.LookupByName("Test Ring")
	require.True(t, ok)
	assert.Equal(t, 4.2, got.Length)
	// the default catalog is untouched
	_, ok = LookupByName("Test Ring")
	assert.False(t, ok)
}

func TestLoadCatalogInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "no name", doc: "tracks:\n  - length: 3\n"},
		{name: "no length", doc: "tracks:\n  - name: x\n"},
		{name: "broken yaml", doc: "tracks: [\n"},
		{
			name: "gear too high",
			doc:  "tracks:\n  - name: x\n    length: 3\n    corners:\n      - {number: 1, entrySpeed: 200, exitSpeed: 100, gear: 12}\n",
		},
		{
			name: "neutral gear",
			doc:  "tracks:\n  - name: x\n    length: 3\n    corners:\n      - {number: 1, entrySpeed: 200, exitSpeed: 100, gear: 0}\n",
		},
		{
			name: "zero exit speed",
			doc:  "tracks:\n  - name: x\n    length: 3\n    corners:\n      - {number: 1, entrySpeed: 200, exitSpeed: 0, gear: 3}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestCatalogAddReplaces(t *testing.T) {
	c := NewCatalog(&model.Track{Name: "A", Length: 1}, &model.Track{Name: "B", Length: 2})
	require.NoError(t, c.Add(&model.Track{Name: "A", Length: 3}))
	assert.Equal(t, []string{"A", "B"}, c.Names())
	a, _ := c.LookupByName("A")
	assert.Equal(t, 3.0, a.Length)
}

func TestCatalogAddRefusesReferenceNames(t *testing.T) {
	c := NewCatalog(builtin...)
	err := c.Add(
		&model.Track{Name: "Custom", Length: 2},
		&model.Track{Name: "Monaco Grand Prix", Length: 1},
	)
	require.ErrorIs(t, err, ErrReservedName)

	got, ok := c.LookupByName("Monaco Grand Prix")
	require.True(t, ok)
	assert.Equal(t, 3.337, got.Length)
	assert.Len(t, got.Corners, 10)
	_, ok = c.LookupByName("Custom")
	assert.False(t, ok, "nothing is added on error")
}

func TestIsReference(t *testing.T) {
	assert.True(t, IsReference("Monza"))
	assert.False(t, IsReference("monza"))
	assert.False(t, IsReference("Test Ring"))
}
