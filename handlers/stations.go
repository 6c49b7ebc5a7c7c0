package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"globalbroadcast/models"
	"globalbroadcast/registry"
	"globalbroadcast/stream"
)

// StationStore is the registry surface the handlers need.
// This allows for mocking in tests
type StationStore interface {
	Snapshot() registry.Registry
	ReplaceStatus(id string, status models.StationStatus) registry.Registry
	MergeEdit(id string, patch models.StationPatch) registry.Registry
	Append(patch models.StationPatch) (registry.Registry, models.Station)
	Remove(id string) registry.Registry
}

// OperationRecorder counts registry operations. It may be nil.
type OperationRecorder interface {
	RecordOperation(op string)
}

type StationHandler struct {
	store    StationStore
	recorder OperationRecorder
}

func NewStationHandler(store StationStore) *StationHandler {
	return &StationHandler{store: store}
}

// NewStationHandlerWithRecorder creates a handler that also reports each
// operation to recorder.
func NewStationHandlerWithRecorder(store StationStore, recorder OperationRecorder) *StationHandler {
	return &StationHandler{store: store, recorder: recorder}
}

// ListStations returns every station in registry order
func (h *StationHandler) ListStations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot().All())
}

// GetStation returns one station, 404 if unknown
func (h *StationHandler) GetStation(c *gin.Context) {
	station, ok := h.store.Snapshot().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}
	c.JSON(http.StatusOK, station)
}

// AddStation appends a station built from the request body. An empty body
// appends a station with every default.
func (h *StationHandler) AddStation(c *gin.Context) {
	var patch models.StationPatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, created := h.store.Append(patch)
	h.record("append")

	c.JSON(http.StatusCreated, models.RegistryResponse{
		Status:    "created",
		StationID: created.ID,
		Count:     next.Len(),
		Station:   &created,
	})
}

// EditStation merges the request body onto a station. Unknown ids are a no-op.
func (h *StationHandler) EditStation(c *gin.Context) {
	var patch models.StationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	next := h.store.MergeEdit(id, patch)
	h.record("merge_edit")

	c.JSON(http.StatusOK, registryResponse(next, id))
}

// UpdateStatus replaces a station's status. Unknown ids are a no-op.
func (h *StationHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	next := h.store.ReplaceStatus(id, req.Status)
	h.record("replace_status")

	c.JSON(http.StatusOK, registryResponse(next, id))
}

// RemoveStation deletes a station. Unknown ids are a no-op.
func (h *StationHandler) RemoveStation(c *gin.Context) {
	id := c.Param("id")
	next := h.store.Remove(id)
	h.record("remove")

	c.JSON(http.StatusOK, models.RegistryResponse{
		Status:    "applied",
		StationID: id,
		Count:     next.Len(),
	})
}

// LiveStream returns the embeddable player URL for a live station. When the
// action is unavailable the response is 204 with no body.
func (h *StationHandler) LiveStream(c *gin.Context) {
	id := c.Param("id")
	station, ok := h.store.Snapshot().Get(id)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	embed, ok := stream.LiveStream(station)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, models.StreamResponse{
		StationID: id,
		EmbedURL:  embed,
	})
}

// Stats returns the status-bar aggregates
func (h *StationHandler) Stats(c *gin.Context) {
	s := h.store.Snapshot().Stats()
	c.JSON(http.StatusOK, models.StatsResponse{
		TotalViewers:    s.TotalViewers,
		ActiveStations:  s.ActiveStations,
		TotalStations:   s.TotalStations,
		CoveragePercent: s.CoveragePercent,
	})
}

// Analytics returns the analytics panel figures. They are placeholders.
func (h *StationHandler) Analytics(c *gin.Context) {
	c.JSON(http.StatusOK, models.AnalyticsResponse{
		PeakHours:       "18:00 - 22:00 UTC",
		CoveragePercent: 94.7,
		UptimePercent:   99.8,
		Illustrative:    true,
	})
}

// HealthCheck returns the health status of the service
func (h *StationHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

func (h *StationHandler) record(op string) {
	if h.recorder != nil {
		h.recorder.RecordOperation(op)
	}
}

func registryResponse(r registry.Registry, id string) models.RegistryResponse {
	resp := models.RegistryResponse{
		Status:    "applied",
		StationID: id,
		Count:     r.Len(),
	}
	if station, ok := r.Get(id); ok {
		resp.Station = &station
	}
	return resp
}
