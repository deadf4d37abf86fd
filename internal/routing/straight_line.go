package routing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jricardo27/trip-explorer2-sub002/internal/app"
	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

const earthRadiusMeters = 6371000.0

// profile is the travel model for one mode: average speed and how much longer
// the real path is than the great-circle distance.
type profile struct {
	speedKPH float64
	detour   float64
}

var defaultProfiles = map[domain.TransportMode]profile{
	domain.TransportModeWalk:    {speedKPH: 4.8, detour: 1.3},
	domain.TransportModeBike:    {speedKPH: 15, detour: 1.25},
	domain.TransportModeDrive:   {speedKPH: 40, detour: 1.35},
	domain.TransportModeTransit: {speedKPH: 25, detour: 1.4},
}

// StraightLine estimates travel from the great-circle distance between two
// points. It needs no network access; modes without a profile (flights and
// "other") have no estimate.
//
// The estimator is safe for concurrent use.
type StraightLine struct {
	profiles map[domain.TransportMode]profile
}

func NewStraightLine() *StraightLine {
	return &StraightLine{profiles: defaultProfiles}
}

var _ app.RouteEstimator = (*StraightLine)(nil)

func (s *StraightLine) Estimate(ctx context.Context, mode domain.TransportMode, origin, destination domain.Coordinates) (app.RouteEstimate, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return app.RouteEstimate{}, fmt.Errorf("%w: %w", domain.ErrEstimateTimeout, err)
		}
		return app.RouteEstimate{}, err
	}

	p, ok := s.profiles[mode]
	if !ok {
		return app.RouteEstimate{}, fmt.Errorf("%w: no ground profile for mode %q", domain.ErrNoRoute, mode)
	}
	if !validCoordinates(origin) || !validCoordinates(destination) {
		return app.RouteEstimate{}, fmt.Errorf("%w: coordinates out of range", domain.ErrNoRoute)
	}

	meters := haversineMeters(origin, destination) * p.detour
	metersPerMinute := p.speedKPH * 1000 / 60

	return app.RouteEstimate{
		DurationMinutes: int(math.Ceil(meters / metersPerMinute)),
		DistanceMeters:  int(math.Round(meters)),
	}, nil
}

func validCoordinates(c domain.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func haversineMeters(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
