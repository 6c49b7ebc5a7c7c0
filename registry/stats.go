package registry

import (
	"math"

	"globalbroadcast/models"
)

// Stats summarises the registry for the status bar.
type Stats struct {
	TotalViewers    int64
	ActiveStations  int
	TotalStations   int
	CoveragePercent int
}

// Stats counts viewers across all stations and treats live stations as
// active. Coverage is the rounded share of active stations, 0 when empty.
func (r Registry) Stats() Stats {
	s := Stats{TotalStations: len(r.stations)}
	for _, station := range r.stations {
		s.TotalViewers += station.Viewers
		if station.Status == models.StatusLive {
			s.ActiveStations++
		}
	}
	if s.TotalStations > 0 {
		s.CoveragePercent = int(math.Round(float64(s.ActiveStations) / float64(s.TotalStations) * 100))
	}
	return s
}

// CountByStatus returns how many stations carry each status value.
func (r Registry) CountByStatus() map[models.StationStatus]int {
	counts := make(map[models.StationStatus]int)
	for _, station := range r.stations {
		counts[station.Status]++
	}
	return counts
}
