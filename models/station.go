package models

import "time"

// StationStatus is the lifecycle status of a broadcast station.
// Any value is accepted; the four constants below are the known ones.
type StationStatus string

const (
	StatusLive        StationStatus = "live"
	StatusStandby     StationStatus = "standby"
	StatusMaintenance StationStatus = "maintenance"
	StatusOffline     StationStatus = "offline"
)

// Position is a geographic position in degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Station struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Channel   string        `json:"channel"`
	Position  Position      `json:"position"`
	Status    StationStatus `json:"status"`
	Viewers   int64         `json:"viewers"`
	Signal    float64       `json:"signal"` // percentage, unvalidated
	// Optional fields
	Description string   `json:"description,omitempty"`
	Frequency   string   `json:"frequency,omitempty"`
	PowerKW     *float64 `json:"power_kw,omitempty"`
	StreamURL   string   `json:"stream_url,omitempty"`
}

// StationPatch lists the fields an edit may overwrite. Nil fields are left alone.
// The identifier is not part of the patch.
type StationPatch struct {
	Name        *string        `json:"name,omitempty"`
	Channel     *string        `json:"channel,omitempty"`
	Position    *Position      `json:"position,omitempty"`
	Status      *StationStatus `json:"status,omitempty"`
	Viewers     *int64         `json:"viewers,omitempty"`
	Signal      *float64       `json:"signal,omitempty"`
	Description *string        `json:"description,omitempty"`
	Frequency   *string        `json:"frequency,omitempty"`
	PowerKW     *float64       `json:"power_kw,omitempty"`
	StreamURL   *string        `json:"stream_url,omitempty"`
}

// Apply returns a copy of s with every non-nil patch field written over it.
func (p StationPatch) Apply(s Station) Station {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Channel != nil {
		s.Channel = *p.Channel
	}
	if p.Position != nil {
		s.Position = *p.Position
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Viewers != nil {
		s.Viewers = *p.Viewers
	}
	if p.Signal != nil {
		s.Signal = *p.Signal
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Frequency != nil {
		s.Frequency = *p.Frequency
	}
	if p.PowerKW != nil {
		v := *p.PowerKW
		s.PowerKW = &v
	}
	if p.StreamURL != nil {
		s.StreamURL = *p.StreamURL
	}
	return s
}

type StatusUpdateRequest struct {
	Status StationStatus `json:"status" binding:"required"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// RegistryResponse reports the outcome of a registry operation. Station is
// nil when the identifier matched nothing, which is not an error.
type RegistryResponse struct {
	Status    string   `json:"status"`
	StationID string   `json:"station_id,omitempty"`
	Count     int      `json:"count"`
	Station   *Station `json:"station,omitempty"`
}

type StreamResponse struct {
	StationID string `json:"station_id"`
	EmbedURL  string `json:"embed_url"`
}

type StatsResponse struct {
	TotalViewers    int64 `json:"total_viewers"`
	ActiveStations  int   `json:"active_stations"`
	TotalStations   int   `json:"total_stations"`
	CoveragePercent int   `json:"coverage_percent"`
}

// AnalyticsResponse carries the dashboard's analytics figures. They are
// illustrative placeholders, not measured telemetry.
type AnalyticsResponse struct {
	PeakHours       string  `json:"peak_hours"`
	CoveragePercent float64 `json:"coverage_percent"`
	UptimePercent   float64 `json:"uptime_percent"`
	Illustrative    bool    `json:"illustrative"`
}

type Marker struct {
	StationID string        `json:"station_id"`
	Status    StationStatus `json:"status"`
	Surface   [3]float64    `json:"surface"`
	World     [3]float64    `json:"world"`
	Halo      bool          `json:"halo"`
}

type GlobeResponse struct {
	Angle   float64  `json:"angle"`
	Frame   uint64   `json:"frame"`
	Surface string   `json:"surface"`
	Markers []Marker `json:"markers"`
}

// FeedMessage is pushed to WebSocket clients whenever the registry changes.
type FeedMessage struct {
	Type     string        `json:"type"`
	Stations []Station     `json:"stations"`
	Stats    StatsResponse `json:"stats"`
}
