// Package report exports a computed density profile as CSV, JSON, PNG and
// HTML files.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/navroute/internal/fsutil"
	"github.com/banshee-data/navroute/internal/monitoring"
	"github.com/banshee-data/navroute/internal/route"
	"github.com/banshee-data/navroute/internal/timeutil"
	"github.com/banshee-data/navroute/internal/version"
)

// ErrEmptyProfile is returned by chart writers for a route without Samples.
var ErrEmptyProfile = errors.New("profile has no samples")

// Report is one analysis run's exported result.
type Report struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Version     string               `json:"version"`
	RouteName   string               `json:"route_name"`
	Origin      string               `json:"origin,omitempty"`
	Destination string               `json:"destination,omitempty"`
	MaxRange    float64              `json:"max_range"`
	KernelWidth float64              `json:"kernel_width"`
	Mode        string               `json:"mode"`
	Points      []route.ProfilePoint `json:"points"`
	Summary     Summary              `json:"summary"`
}

// New builds a Report from a smoothed Route.
func New(name string, r *route.Route, clock timeutil.Clock) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: clock.Now().UTC(),
		Version:     version.Version,
		RouteName:   sanitizeName(name),
		MaxRange:    r.MaxRange(),
		KernelWidth: r.KernelWidth(),
		Mode:        r.Mode().String(),
		Points:      r.Profile(),
		Summary:     Summarise(r),
	}
}

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatHTML Format = "html"
)

// AllFormats lists every supported format.
var AllFormats = []Format{FormatCSV, FormatJSON, FormatPNG, FormatHTML}

// ParseFormats parses a comma separated list such as "csv,png".
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		switch f {
		case FormatCSV, FormatJSON, FormatPNG, FormatHTML:
		default:
			return nil, fmt.Errorf("unknown output format %q", part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no output formats given")
	}
	return out, nil
}

// Write renders the report in format f to w.
func (rep *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatCSV:
		return rep.WriteCSV(w)
	case FormatJSON:
		return rep.WriteJSON(w)
	case FormatPNG:
		return rep.WritePNG(w)
	case FormatHTML:
		return rep.WriteHTML(w)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// sanitizeName keeps ASCII letters, digits, dot, underscore and dash,
// replacing each run of anything else with one underscore.
func sanitizeName(s string) string {
	const maxLen = 96
	var b strings.Builder
	pending := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-'
		if !ok {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte('_')
		}
		pending = false
		b.WriteRune(r)
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "route"
	}
	return out
}

// FileName returns the output file name for format f.
func (rep *Report) FileName(f Format) string {
	return fmt.Sprintf("%s_%s_density.%s", rep.RouteName, rep.Mode, f)
}

// WriteFiles writes one file per format into dir and returns their paths.
func (rep *Report) WriteFiles(fsys fsutil.FileSystem, dir string, formats []Format) ([]string, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, rep.FileName(f))
		if err := rep.writeFile(fsys, path, f); err != nil {
			return paths, err
		}
		monitoring.Logf("wrote %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func (rep *Report) writeFile(fsys fsutil.FileSystem, path string, f Format) (err error) {
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := rep.Write(w, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
