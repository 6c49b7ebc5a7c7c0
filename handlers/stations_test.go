package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"globalbroadcast/models"
	"globalbroadcast/test"
)

func init() {
	// Set Gin to test mode to suppress output
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(handler *StationHandler) *gin.Engine {
	router := gin.New()
	router.GET("/health", handler.HealthCheck)
	router.GET("/stations", handler.ListStations)
	router.POST("/stations", handler.AddStation)
	router.GET("/stations/:id", handler.GetStation)
	router.PATCH("/stations/:id", handler.EditStation)
	router.DELETE("/stations/:id", handler.RemoveStation)
	router.PUT("/stations/:id/status", handler.UpdateStatus)
	router.GET("/stations/:id/stream", handler.LiveStream)
	router.GET("/stats", handler.Stats)
	router.GET("/analytics", handler.Analytics)
	return router
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeRegistryResponse(t *testing.T, w *httptest.ResponseRecorder) models.RegistryResponse {
	t.Helper()
	var response models.RegistryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return response
}

// ListStations / GetStation Tests

func TestListStationsSeed(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewSeededMockStationStore()))

	w := doRequest(router, "GET", "/stations", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var stations []models.Station
	if err := json.Unmarshal(w.Body.Bytes(), &stations); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(stations) != 6 {
		t.Fatalf("expected 6 stations, got %d", len(stations))
	}
	for i, want := range []string{"1", "2", "3", "4", "5", "6"} {
		if stations[i].ID != want {
			t.Errorf("station %d: expected id %s, got %s", i, want, stations[i].ID)
		}
	}
}

func TestGetStation(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewMockStationStore(test.NewTestStation())))

	w := doRequest(router, "GET", "/stations/TEST-1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var station models.Station
	if err := json.Unmarshal(w.Body.Bytes(), &station); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if station.Name != "Test Broadcast Center" {
		t.Errorf("unexpected station name %q", station.Name)
	}
}

func TestGetStationNotFound(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewMockStationStore()))

	w := doRequest(router, "GET", "/stations/missing", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

// UpdateStatus Tests

func TestUpdateStatusValid(t *testing.T) {
	store := test.NewSeededMockStationStore()
	recorder := test.NewMockRecorder()
	router := setupTestRouter(NewStationHandlerWithRecorder(store, recorder))

	w := doRequest(router, "PUT", "/stations/3/status", []byte(`{"status":"live"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	response := decodeRegistryResponse(t, w)
	if response.Station == nil || response.Station.Status != models.StatusLive {
		t.Fatalf("expected station 3 to be live, got %+v", response.Station)
	}
	if response.Count != 6 {
		t.Errorf("expected count 6, got %d", response.Count)
	}

	if store.GetCallCount("replace_status") != 1 {
		t.Errorf("expected 1 call to ReplaceStatus, got %d", store.GetCallCount("replace_status"))
	}
	if ops := recorder.GetOperations(); len(ops) != 1 || ops[0] != "replace_status" {
		t.Errorf("expected replace_status to be recorded, got %v", ops)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	store := test.NewSeededMockStationStore()
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "PUT", "/stations/99/status", []byte(`{"status":"live"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	response := decodeRegistryResponse(t, w)
	if response.Station != nil {
		t.Errorf("expected no station for unknown id, got %+v", response.Station)
	}
	if response.Count != 6 {
		t.Errorf("expected count 6, got %d", response.Count)
	}
}

func TestUpdateStatusMissingField(t *testing.T) {
	store := test.NewSeededMockStationStore()
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "PUT", "/stations/3/status", []byte(`{}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if store.GetCallCount("replace_status") != 0 {
		t.Errorf("expected no call to ReplaceStatus, got %d", store.GetCallCount("replace_status"))
	}
}

func TestUpdateStatusAcceptsUnknownStatus(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewSeededMockStationStore()))

	w := doRequest(router, "PUT", "/stations/1/status", []byte(`{"status":"on-air"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	response := decodeRegistryResponse(t, w)
	if response.Station == nil || response.Station.Status != "on-air" {
		t.Errorf("expected status on-air, got %+v", response.Station)
	}
}

// EditStation Tests

func TestEditStationMergesFields(t *testing.T) {
	store := test.NewMockStationStore(test.NewTestStation())
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "PATCH", "/stations/TEST-1", []byte(`{"name":"Renamed","viewers":5}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	response := decodeRegistryResponse(t, w)
	if response.Station == nil {
		t.Fatal("expected station in response")
	}
	want := test.NewTestStation()
	want.Name = "Renamed"
	want.Viewers = 5
	if *response.Station != want {
		t.Errorf("expected %+v, got %+v", want, *response.Station)
	}
}

func TestEditStationCannotChangeID(t *testing.T) {
	store := test.NewMockStationStore(test.NewTestStation())
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "PATCH", "/stations/TEST-1", []byte(`{"id":"other","name":"Renamed"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if _, ok := store.Snapshot().Get("TEST-1"); !ok {
		t.Error("expected station TEST-1 to keep its id")
	}
	if store.Snapshot().Contains("other") {
		t.Error("expected no station with id other")
	}
}

func TestEditStationInvalidJSON(t *testing.T) {
	store := test.NewMockStationStore(test.NewTestStation())
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "PATCH", "/stations/TEST-1", []byte("invalid json"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if store.GetCallCount("merge_edit") != 0 {
		t.Errorf("expected no call to MergeEdit, got %d", store.GetCallCount("merge_edit"))
	}
}

// AddStation Tests

func TestAddStationDefaults(t *testing.T) {
	store := test.NewSeededMockStationStore()
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "POST", "/stations", []byte(`{}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	response := decodeRegistryResponse(t, w)
	if response.Count != 7 {
		t.Errorf("expected count 7, got %d", response.Count)
	}
	if response.Station == nil {
		t.Fatal("expected created station in response")
	}
	if response.Station.Name != "New Station" || response.Station.Channel != "NEW" {
		t.Errorf("unexpected defaults: %+v", response.Station)
	}
	if response.Station.Status != models.StatusOffline {
		t.Errorf("expected offline status, got %s", response.Station.Status)
	}
	if response.StationID != response.Station.ID || response.StationID == "" {
		t.Errorf("expected station_id to match created id, got %q", response.StationID)
	}
}

func TestAddStationEmptyBody(t *testing.T) {
	store := test.NewSeededMockStationStore()
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "POST", "/stations", []byte{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	response := decodeRegistryResponse(t, w)
	if response.Station == nil || response.Station.Name != "New Station" {
		t.Errorf("expected a default station, got %+v", response.Station)
	}
	if store.GetCallCount("append") != 1 {
		t.Errorf("expected 1 call to Append, got %d", store.GetCallCount("append"))
	}
}

func TestAddStationIgnoresSuppliedID(t *testing.T) {
	store := test.NewSeededMockStationStore()
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "POST", "/stations", []byte(`{"id":"1","name":"Paris"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	response := decodeRegistryResponse(t, w)
	if response.StationID == "1" {
		t.Error("expected a fresh id, got the supplied one")
	}
	if response.Station.Name != "Paris" {
		t.Errorf("expected name Paris, got %s", response.Station.Name)
	}
}

func TestAddStationInvalidJSON(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewSeededMockStationStore()))

	w := doRequest(router, "POST", "/stations", []byte("{"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// RemoveStation Tests

func TestRemoveStation(t *testing.T) {
	store := test.NewSeededMockStationStore()
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "DELETE", "/stations/2", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	response := decodeRegistryResponse(t, w)
	if response.Count != 5 {
		t.Errorf("expected count 5, got %d", response.Count)
	}
	if store.Snapshot().Contains("2") {
		t.Error("expected station 2 to be removed")
	}
}

func TestRemoveStationUnknownID(t *testing.T) {
	store := test.NewSeededMockStationStore()
	router := setupTestRouter(NewStationHandler(store))

	w := doRequest(router, "DELETE", "/stations/99", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if response := decodeRegistryResponse(t, w); response.Count != 6 {
		t.Errorf("expected count 6, got %d", response.Count)
	}
}

// LiveStream Tests

func TestLiveStreamLiveStation(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewMockStationStore(test.NewTestStation())))

	w := doRequest(router, "GET", "/stations/TEST-1/stream", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var response models.StreamResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	want := "https://www.youtube.com/embed/abc123?autoplay=1&mute=1"
	if response.EmbedURL != want {
		t.Errorf("expected embed url %s, got %s", want, response.EmbedURL)
	}
}

func TestLiveStreamSuppressed(t *testing.T) {
	noParam := test.NewTestStationWithID("no-param")
	noParam.StreamURL = "https://www.youtube.com/live"

	store := test.NewMockStationStore(
		test.NewTestStationWithStatus("standby", models.StatusStandby),
		noParam,
	)
	router := setupTestRouter(NewStationHandler(store))

	for _, path := range []string{"/stations/standby/stream", "/stations/no-param/stream", "/stations/missing/stream"} {
		w := doRequest(router, "GET", path, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("%s: expected status 204, got %d", path, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("%s: expected empty body, got %q", path, w.Body.String())
		}
	}
}

// Stats / Analytics Tests

func TestStatsSeed(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewSeededMockStationStore()))

	w := doRequest(router, "GET", "/stats", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var response models.StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.TotalStations != 6 {
		t.Errorf("expected 6 stations, got %d", response.TotalStations)
	}
	if response.ActiveStations != 4 {
		t.Errorf("expected 4 live stations, got %d", response.ActiveStations)
	}
	if response.CoveragePercent != 67 {
		t.Errorf("expected coverage 67, got %d", response.CoveragePercent)
	}
}

func TestAnalyticsIsIllustrative(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewSeededMockStationStore()))

	w := doRequest(router, "GET", "/analytics", nil)

	var response models.AnalyticsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !response.Illustrative {
		t.Error("expected analytics to be flagged illustrative")
	}
}

// HealthCheck Tests

func TestHealthCheckReturns200(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewMockStationStore()))

	w := doRequest(router, "GET", "/health", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Status != "healthy" {
		t.Errorf("expected status 'healthy', got '%s'", response.Status)
	}
	if response.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestHealthCheckContentType(t *testing.T) {
	router := setupTestRouter(NewStationHandler(test.NewMockStationStore()))

	w := doRequest(router, "GET", "/health", nil)

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json; charset=utf-8" {
		t.Errorf("expected Content-Type 'application/json; charset=utf-8', got '%s'", contentType)
	}
}
