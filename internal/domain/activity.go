package domain

import "time"

// Activity is a scheduled item of one itinerary day.
type Activity struct {
	ID             string
	DayID          string
	Name           string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	// IsFlexible activities may be shifted by propagation; fixed ones act as barriers.
	IsFlexible bool
	Latitude   *float64
	Longitude  *float64
	// Version increments on every schedule write.
	Version int64
}

// HasCoordinates reports whether both latitude and longitude are known.
func (a Activity) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Overlaps reports whether [start, end) intersects the activity's interval.
func (a Activity) Overlaps(start, end time.Time) bool {
	return a.ScheduledStart.Before(end) && a.ScheduledEnd.After(start)
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Coordinates returns the activity position when both fields are known.
func (a Activity) Coordinates() (Coordinates, bool) {
	if !a.HasCoordinates() {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *a.Latitude, Lon: *a.Longitude}, true
}
