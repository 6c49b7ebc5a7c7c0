package globe

import (
	"context"
	"sync"

	"globalbroadcast/geo"
	"globalbroadcast/models"
	"globalbroadcast/registry"
	"globalbroadcast/texture"
)

// Scene is what the dashboard's globe view needs: the stations, the spin and
// the surface paint.
type Scene struct {
	store    *registry.Store
	rotation *Rotation

	mu      sync.RWMutex
	surface texture.Surface
	task    *texture.Task
}

func NewScene(store *registry.Store, rotation *Rotation) *Scene {
	return &Scene{
		store:    store,
		rotation: rotation,
		surface:  texture.LoadingSurface(),
	}
}

// Rotation returns the scene's rotation.
func (s *Scene) Rotation() *Rotation {
	return s.rotation
}

// Surface returns the current surface paint.
func (s *Scene) Surface() texture.Surface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surface
}

func (s *Scene) setSurface(surface texture.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
}

// LoadSurface starts the texture load. A previous in-flight load is cancelled.
func (s *Scene) LoadSurface(ctx context.Context, loader *texture.Loader) *texture.Task {
	// Cancel outside s.mu: a finishing task holds its own lock while it
	// waits for s.mu in setSurface.
	s.Close()
	s.setSurface(texture.LoadingSurface())

	task := loader.LoadAsync(ctx, s.setSurface)

	s.mu.Lock()
	s.task = task
	s.mu.Unlock()
	return task
}

// Close cancels any in-flight texture load.
func (s *Scene) Close() {
	s.mu.Lock()
	task := s.task
	s.task = nil
	s.mu.Unlock()

	if task != nil {
		task.Cancel()
	}
}

// Markers places every station on the marker shell. World positions include
// the current globe rotation.
func (s *Scene) Markers() []models.Marker {
	angle := s.rotation.Angle()
	return MarkersAt(s.store.Snapshot(), angle)
}

// MarkersAt computes markers for a registry value at a given angle.
func MarkersAt(r registry.Registry, angle float64) []models.Marker {
	stations := r.All()
	markers := make([]models.Marker, 0, len(stations))
	for _, st := range stations {
		surface := geo.MarkerPosition(st.Position.Latitude, st.Position.Longitude)
		markers = append(markers, models.Marker{
			StationID: st.ID,
			Status:    st.Status,
			Surface:   surface.Array(),
			World:     surface.RotateY(angle).Array(),
			Halo:      st.Status == models.StatusLive,
		})
	}
	return markers
}

// View returns the full globe payload.
func (s *Scene) View() models.GlobeResponse {
	angle := s.rotation.Angle()
	return models.GlobeResponse{
		Angle:   angle,
		Frame:   s.rotation.Frames(),
		Surface: string(s.Surface().State),
		Markers: MarkersAt(s.store.Snapshot(), angle),
	}
}
