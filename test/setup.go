package test

import (
	"strconv"
	"sync"

	"globalbroadcast/models"
	"globalbroadcast/registry"
	"globalbroadcast/texture"
)

// MockStationStore is a mock implementation of the station store for testing.
// It applies operations to a real registry value and records each call.
type MockStationStore struct {
	mu      sync.Mutex
	current registry.Registry
	nextID  int
	calls   map[string]int
	lastID  string
}

// NewMockStationStore creates a mock store holding the given stations
func NewMockStationStore(stations ...models.Station) *MockStationStore {
	return &MockStationStore{
		current: registry.New(stations),
		calls:   make(map[string]int),
	}
}

// NewSeededMockStationStore creates a mock store holding the seed stations
func NewSeededMockStationStore() *MockStationStore {
	return NewMockStationStore(registry.SeedStations()...)
}

// NextID hands out "mock-1", "mock-2", ...
func (m *MockStationStore) NextID() string {
	m.nextID++
	return "mock-" + strconv.Itoa(m.nextID)
}

// Snapshot returns the current registry value
func (m *MockStationStore) Snapshot() registry.Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// ReplaceStatus records the call and applies it
func (m *MockStationStore) ReplaceStatus(id string, status models.StationStatus) registry.Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("replace_status", id)
	m.current = m.current.ReplaceStatus(id, status)
	return m.current
}

// MergeEdit records the call and applies it
func (m *MockStationStore) MergeEdit(id string, patch models.StationPatch) registry.Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("merge_edit", id)
	m.current = m.current.MergeEdit(id, patch)
	return m.current
}

// Append records the call and applies it
func (m *MockStationStore) Append(patch models.StationPatch) (registry.Registry, models.Station) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var created models.Station
	m.current, created = m.current.Append(patch, m)
	m.record("append", created.ID)
	return m.current, created
}

// Remove records the call and applies it
func (m *MockStationStore) Remove(id string) registry.Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("remove", id)
	m.current = m.current.Remove(id)
	return m.current
}

// GetCallCount returns the number of times op was called
func (m *MockStationStore) GetCallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// GetLastID returns the station id of the last call
func (m *MockStationStore) GetLastID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastID
}

func (m *MockStationStore) record(op, id string) {
	m.calls[op]++
	m.lastID = id
}

// MockRecorder counts recorded operations
type MockRecorder struct {
	mu  sync.Mutex
	ops []string
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

// RecordOperation appends op to the list
func (r *MockRecorder) RecordOperation(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// GetOperations returns every recorded operation in order
func (r *MockRecorder) GetOperations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.ops...)
}

// MockScene is a fixed globe view for handler tests
type MockScene struct {
	mu      sync.Mutex
	view    models.GlobeResponse
	surface texture.Surface
}

func NewMockScene(view models.GlobeResponse) *MockScene {
	return &MockScene{view: view, surface: texture.LoadingSurface()}
}

// View returns the configured view
func (s *MockScene) View() models.GlobeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Surface returns the configured surface
func (s *MockScene) Surface() texture.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// SetSurface replaces the surface returned by Surface
func (s *MockScene) SetSurface(surface texture.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
}

// NewTestStation creates a test station with default values
func NewTestStation() models.Station {
	return models.Station{
		ID:        "TEST-1",
		Name:      "Test Broadcast Center",
		Channel:   "TST-1",
		Position:  models.Position{Latitude: 48.8566, Longitude: 2.3522},
		Status:    models.StatusLive,
		Viewers:   1200,
		Signal:    97.5,
		StreamURL: "https://www.youtube.com/watch?v=abc123&t=10",
	}
}

// NewTestStationWithID creates a test station with a specific id
func NewTestStationWithID(id string) models.Station {
	s := NewTestStation()
	s.ID = id
	return s
}

// NewTestStationWithStatus creates a test station with a specific status
func NewTestStationWithStatus(id string, status models.StationStatus) models.Station {
	s := NewTestStationWithID(id)
	s.Status = status
	return s
}
