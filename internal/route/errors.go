package route

import (
	"errors"

	"github.com/banshee-data/navroute/internal/vecmath"
)

// ErrInsufficientRoute is returned when fewer than two waypoints are given.
var ErrInsufficientRoute = errors.New("insufficient route")

// ErrDegenerateGeometry is the vecmath sentinel, re-exported so callers of
// this package can match it without importing vecmath.
var ErrDegenerateGeometry = vecmath.ErrDegenerateGeometry
