package navroute

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/navroute/internal/fsutil"
	"github.com/banshee-data/navroute/internal/route"
	"github.com/banshee-data/navroute/internal/vecmath"
)

const sampleRoute = `{
  "timestamp": "2024-03-01T12:00:00Z",
  "event": "NavRoute",
  "MaxRange": 5,
  "Route": [
    {"StarSystem": "Alpha", "SystemAddress": 1, "StarPos": [0, 0, 0], "StarClass": "G"},
    {"StarSystem": "Beta", "SystemAddress": 2, "StarPos": [10, 0, 0], "StarClass": "K"},
    {"StarSystem": "Gamma", "SystemAddress": 3, "StarPos": [20, 0, 0], "StarClass": "M"},
    {"StarSystem": "Delta", "SystemAddress": 4, "StarPos": [30, 0, 0], "StarClass": "F"}
  ]
}`

func TestLoad(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, fsys.WriteFile("routes/sol-run.json", []byte(sampleRoute), 0644))

	f, err := Load(fsys, "routes/sol-run.json")
	require.NoError(t, err)

	assert.Equal(t, "sol-run", f.Name)
	assert.Equal(t, 5.0, f.MaxRange)
	assert.Equal(t, "Alpha", f.Origin())
	assert.Equal(t, "Delta", f.Destination())

	var got []vecmath.Coordinate
	for _, s := range f.Systems() {
		got = append(got, s.Position())
	}
	want := []vecmath.Coordinate{{}, {X: 10}, {X: 20}, {X: 30}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadedSystemsBuildRoute(t *testing.T) {
	f, err := Parse([]byte(sampleRoute))
	require.NoError(t, err)

	r, err := route.Build(f.Systems(), f.MaxRange, route.DefaultSettings())
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.InDelta(t, 0.002657195571621209, r.Sample(0).Density(), 1e-15)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty route", `{"MaxRange": 5, "Route": []}`, ErrNoWaypoints},
		{"missing route", `{"MaxRange": 5}`, ErrNoWaypoints},
		{"short position", `{"Route": [{"StarSystem": "A", "StarPos": [1, 2]}]}`, ErrInvalidWaypoint},
		{"missing position", `{"Route": [{"StarSystem": "A"}]}`, ErrInvalidWaypoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Parse([]byte(`{"Route": [`))
	assert.Error(t, err)
}

func TestParseReportsIndex(t *testing.T) {
	data := `{"Route": [
		{"StarSystem": "A", "StarPos": [0, 0, 0]},
		{"StarSystem": "B", "StarPos": [1, 2, 3, 4]}
	]}`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system 1")
	assert.Contains(t, err.Error(), `"B"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(fsutil.NewMemoryFileSystem(), "nope.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}
