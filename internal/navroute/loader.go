// Package navroute reads plotted route files.
//
// A route file is JSON with the ship's maximum jump range and the ordered
// systems of the route:
//
//	{
//	  "MaxRange": 48.5,
//	  "Route": [
//	    {"StarSystem": "Sol", "SystemAddress": 10477373803, "StarPos": [0, 0, 0], "StarClass": "G"},
//	    ...
//	  ]
//	}
package navroute

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/banshee-data/navroute/internal/fsutil"
	"github.com/banshee-data/navroute/internal/vecmath"
)

var (
	// ErrNoWaypoints is returned for a route file without any systems.
	ErrNoWaypoints = errors.New("route has no waypoints")
	// ErrInvalidWaypoint is returned when a system has no usable position.
	ErrInvalidWaypoint = errors.New("invalid waypoint")
)

// maxFileSize bounds route files read from disk.
const maxFileSize = 16 * 1024 * 1024

// System is one waypoint of a plotted route.
type System struct {
	StarSystem    string    `json:"StarSystem"`
	SystemAddress int64     `json:"SystemAddress,omitempty"`
	StarPos       []float64 `json:"StarPos"`
	StarClass     string    `json:"StarClass,omitempty"`
}

// Position implements route.Waypoint. StarPos must have been validated.
func (s System) Position() vecmath.Coordinate {
	return vecmath.Coordinate{X: s.StarPos[0], Y: s.StarPos[1], Z: s.StarPos[2]}
}

// File is a decoded route file.
type File struct {
	Name     string   `json:"-"`
	MaxRange float64  `json:"MaxRange"`
	Route    []System `json:"Route"`
}

// Parse decodes and validates route JSON. The max range is not checked here
// so a configured override can replace a missing one.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse route JSON: %w", err)
	}
	if len(f.Route) == 0 {
		return nil, ErrNoWaypoints
	}
	for i, s := range f.Route {
		if len(s.StarPos) != 3 {
			return nil, fmt.Errorf("%w: system %d (%q) has %d coordinates, want 3", ErrInvalidWaypoint, i, s.StarSystem, len(s.StarPos))
		}
		for _, c := range s.StarPos {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: system %d (%q) has non-finite coordinate", ErrInvalidWaypoint, i, s.StarSystem)
			}
		}
	}
	return f, nil
}

// Load reads and parses the route file at path.
func Load(fsys fsutil.FileSystem, path string) (*File, error) {
	cleanPath := filepath.Clean(path)
	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat route file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("route file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read route file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	f.Name = strings.TrimSuffix(filepath.Base(cleanPath), filepath.Ext(cleanPath))
	return f, nil
}

// Systems returns the route's systems in order.
func (f *File) Systems() []System {
	return f.Route
}

// Origin and Destination name the first and last systems.
func (f *File) Origin() string      { return f.Route[0].StarSystem }
func (f *File) Destination() string { return f.Route[len(f.Route)-1].StarSystem }
