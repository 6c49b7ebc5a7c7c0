package registry

import (
	"sync"

	"go.uber.org/zap"

	"globalbroadcast/models"
)

// Listener receives every registry value the store publishes.
// Listeners must not call the store's update methods. They may unsubscribe.
type Listener func(Registry)

// Store holds the current registry and swaps in a new value on each update.
// Values handed out earlier are never modified.
type Store struct {
	mu      sync.RWMutex
	current Registry
	ids     IDGenerator
	logger  *zap.Logger

	// publishMu keeps listener notifications in update order.
	publishMu sync.Mutex

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSub   int
}

func NewStore(initial Registry, ids IDGenerator, logger *zap.Logger) *Store {
	if ids == nil {
		ids = NewTimestampIDs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		current:   initial,
		ids:       ids,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns the current registry value.
func (s *Store) Snapshot() Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) ReplaceStatus(id string, status models.StationStatus) Registry {
	next := s.update(func(r Registry) Registry {
		return r.ReplaceStatus(id, status)
	})
	s.logger.Debug("station status replaced",
		zap.String("station_id", id),
		zap.String("status", string(status)))
	return next
}

func (s *Store) MergeEdit(id string, patch models.StationPatch) Registry {
	next := s.update(func(r Registry) Registry {
		return r.MergeEdit(id, patch)
	})
	s.logger.Debug("station edited", zap.String("station_id", id))
	return next
}

// Append adds a station and returns the new registry with the created record.
func (s *Store) Append(patch models.StationPatch) (Registry, models.Station) {
	var created models.Station
	next := s.update(func(r Registry) Registry {
		var out Registry
		out, created = r.Append(patch, s.ids)
		return out
	})
	s.logger.Info("station added",
		zap.String("station_id", created.ID),
		zap.String("name", created.Name))
	return next, created
}

func (s *Store) Remove(id string) Registry {
	next := s.update(func(r Registry) Registry {
		return r.Remove(id)
	})
	s.logger.Info("station removed", zap.String("station_id", id))
	return next
}

func (s *Store) update(fn func(Registry) Registry) Registry {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	next := fn(s.current)
	s.current = next
	s.mu.Unlock()

	for _, l := range s.subscribers() {
		l(next)
	}
	return next
}

func (s *Store) subscribers() []Listener {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}
