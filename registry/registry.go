package registry

import "globalbroadcast/models"

const (
	DefaultStationName = "New Station"
	DefaultChannel     = "NEW"
)

// Registry is an immutable, ordered collection of stations. Every operation
// returns a new Registry and leaves the receiver untouched, so holders of an
// older value keep seeing the state from before the update.
type Registry struct {
	stations []models.Station
}

// New builds a registry from stations. The slice is copied.
func New(stations []models.Station) Registry {
	return Registry{stations: cloneStations(stations)}
}

// Len returns the number of stations.
func (r Registry) Len() int {
	return len(r.stations)
}

// All returns a copy of the stations in registry order.
func (r Registry) All() []models.Station {
	return cloneStations(r.stations)
}

// Get returns the first station with the given identifier.
func (r Registry) Get(id string) (models.Station, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return models.Station{}, false
	}
	return cloneStation(r.stations[i]), true
}

// Contains reports whether any station carries the identifier.
func (r Registry) Contains(id string) bool {
	return r.indexOf(id) >= 0
}

// ReplaceStatus overwrites the status of the matching station. Unknown
// identifiers leave the registry unchanged.
func (r Registry) ReplaceStatus(id string, status models.StationStatus) Registry {
	return r.MergeEdit(id, models.StationPatch{Status: &status})
}

// MergeEdit writes the patch over the matching station. Nothing is validated.
func (r Registry) MergeEdit(id string, patch models.StationPatch) Registry {
	next := r.All()
	for i := range next {
		if next[i].ID == id {
			next[i] = patch.Apply(next[i])
		}
	}
	return Registry{stations: next}
}

// Append adds a station built from patch with a freshly generated identifier.
// Fields the patch omits take their defaults: the default name and channel,
// position (0, 0), offline status and zeroed metrics.
func (r Registry) Append(patch models.StationPatch, ids IDGenerator) (Registry, models.Station) {
	id := ids.NextID()
	for r.Contains(id) {
		id = ids.NextID()
	}

	station := patch.Apply(models.Station{
		ID:      id,
		Name:    DefaultStationName,
		Channel: DefaultChannel,
		Status:  models.StatusOffline,
	})

	next := make([]models.Station, 0, len(r.stations)+1)
	next = append(next, r.All()...)
	next = append(next, station)
	return Registry{stations: next}, cloneStation(station)
}

// Remove drops the first station with the identifier.
func (r Registry) Remove(id string) Registry {
	i := r.indexOf(id)
	if i < 0 {
		return r
	}

	next := make([]models.Station, 0, len(r.stations)-1)
	next = append(next, cloneStations(r.stations[:i])...)
	next = append(next, cloneStations(r.stations[i+1:])...)
	return Registry{stations: next}
}

func (r Registry) indexOf(id string) int {
	for i := range r.stations {
		if r.stations[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneStations(in []models.Station) []models.Station {
	out := make([]models.Station, len(in))
	for i := range in {
		out[i] = cloneStation(in[i])
	}
	return out
}

// cloneStation deep-copies the one pointer field so callers cannot reach
// into a published registry.
func cloneStation(s models.Station) models.Station {
	if s.PowerKW != nil {
		v := *s.PowerKW
		s.PowerKW = &v
	}
	return s
}
