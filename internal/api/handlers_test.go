package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/server/config"
	"estatehub/server/internal/cache"
	"estatehub/server/internal/database"
	"estatehub/server/internal/models"
	"estatehub/server/internal/notify"
	"estatehub/server/internal/ratelimit"
)

func setupTestServer(t *testing.T) (*gin.Engine, *database.Database) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.JWTSecret = "test-secret"
	cfg.JWTExpiryHours = 24

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// No Redis in tests: the limiter passes through and the cache is a
	// no-op.
	handler := NewHandler(db, logger, cfg, cache.New(nil), notify.NewTelegramNotifier(logger, "", ""))
	limiter := ratelimit.NewLimiter(nil, 15*time.Minute, logger)

	router := gin.New()
	SetupRoutes(router, handler, limiter)
	return router, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), dest))
}

func seedActiveProperty(t *testing.T, db *database.Database, p models.Property) models.Property {
	t.Helper()
	if p.Title == "" {
		p.Title = "Listing"
	}
	if p.PropertyType == "" {
		p.PropertyType = "apartment"
	}
	if p.Area == 0 {
		p.Area = 1000
	}
	if p.Location == "" {
		p.Location = "Locality"
	}
	if p.City == "" {
		p.City = "City"
	}
	if p.State == "" {
		p.State = "State"
	}
	require.NoError(t, db.GetDB().Create(&p).Error)
	return p
}

type searchResponse struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
}

func TestSearchPropertiesEndpoint(t *testing.T) {
	router, db := setupTestServer(t)
	seedActiveProperty(t, db, models.Property{Title: "Mumbai Flat", City: "Mumbai", Price: 6_000_000, IsActive: true})
	seedActiveProperty(t, db, models.Property{Title: "Pune Flat", City: "Pune", Price: 3_000_000, IsActive: true})
	seedActiveProperty(t, db, models.Property{Title: "Hidden", City: "Mumbai", IsActive: false})

	recorder := doRequest(t, router, http.MethodGet, "/api/properties", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp searchResponse
	decodeBody(t, recorder, &resp)
	assert.Equal(t, int64(2), resp.Total, "inactive rows never reach the public endpoint")

	recorder = doRequest(t, router, http.MethodGet, "/api/properties?city=mumbai", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &resp)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Properties, 1)
	assert.Equal(t, "Mumbai Flat", resp.Properties[0].Title)
}

func TestSearchPropertiesEndpoint_InvalidParams(t *testing.T) {
	router, _ := setupTestServer(t)

	for _, query := range []string{
		"minPrice=abc",
		"sortOrder=upward",
		"isFeatured=maybe",
	} {
		recorder := doRequest(t, router, http.MethodGet, "/api/properties?"+query, nil, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "query %q", query)
	}
}

func TestSearchPropertiesEndpoint_PaginationClamps(t *testing.T) {
	router, db := setupTestServer(t)
	seedActiveProperty(t, db, models.Property{Title: "Only", IsActive: true})

	// Out-of-range pagination clamps to the first page instead of failing.
	for _, query := range []string{"page=0", "page=-3", "limit=0"} {
		recorder := doRequest(t, router, http.MethodGet, "/api/properties?"+query, nil, "")
		require.Equal(t, http.StatusOK, recorder.Code, "query %q", query)

		var resp searchResponse
		decodeBody(t, recorder, &resp)
		assert.Equal(t, int64(1), resp.Total)
		require.Len(t, resp.Properties, 1, "query %q", query)
		assert.Equal(t, "Only", resp.Properties[0].Title)
	}
}

func TestGetPropertyEndpoint_ViewCount(t *testing.T) {
	router, db := setupTestServer(t)
	p := seedActiveProperty(t, db, models.Property{IsActive: true})

	recorder := doRequest(t, router, http.MethodGet, "/api/properties/1", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var first models.Property
	decodeBody(t, recorder, &first)
	assert.Equal(t, 0, first.ViewCount, "response carries the pre-increment value")

	recorder = doRequest(t, router, http.MethodGet, "/api/properties/1", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var second models.Property
	decodeBody(t, recorder, &second)
	assert.Equal(t, 1, second.ViewCount)

	stored, err := db.GetProperty(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ViewCount, "two fetches count exactly twice")
}

func TestGetPropertyEndpoint_NotFound(t *testing.T) {
	router, db := setupTestServer(t)
	inactive := seedActiveProperty(t, db, models.Property{IsActive: false})

	recorder := doRequest(t, router, http.MethodGet, "/api/properties/999", nil, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// Soft-deleted listings are indistinguishable from absent ones.
	recorder = doRequest(t, router, http.MethodGet, "/api/properties/"+itoa(inactive.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, "/api/properties/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestFeaturedPropertiesEndpoint(t *testing.T) {
	router, db := setupTestServer(t)
	for i := 0; i < 8; i++ {
		seedActiveProperty(t, db, models.Property{
			IsFeatured: true,
			IsActive:   true,
			CreatedAt:  time.Date(2024, 2, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	seedActiveProperty(t, db, models.Property{IsFeatured: false, IsActive: true})

	recorder := doRequest(t, router, http.MethodGet, "/api/properties/featured", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var properties []models.Property
	decodeBody(t, recorder, &properties)
	assert.Len(t, properties, models.DefaultFeaturedLimit)

	recorder = doRequest(t, router, http.MethodGet, "/api/properties/featured?limit=2", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &properties)
	assert.Len(t, properties, 2)
}

func TestCreateLeadEndpoint(t *testing.T) {
	router, db := setupTestServer(t)

	recorder := doRequest(t, router, http.MethodPost, "/api/leads", map[string]interface{}{
		"name":  "Asha Rao",
		"email": "asha@example.com",
		"phone": "+919876543210",
	}, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var lead models.Lead
	decodeBody(t, recorder, &lead)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, models.DefaultLeadSource, lead.Source)

	stored, err := db.GetLead(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", stored.Name)
}

func TestCreateLeadEndpoint_Validation(t *testing.T) {
	router, _ := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing email", map[string]interface{}{"name": "A", "phone": "1"}},
		{"bad email", map[string]interface{}{"name": "A", "email": "nope", "phone": "1"}},
		{"missing phone", map[string]interface{}{"name": "A", "email": "a@example.com"}},
		{"missing name", map[string]interface{}{"email": "a@example.com", "phone": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(t, router, http.MethodPost, "/api/leads", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestSearchSuggestionsEndpoint(t *testing.T) {
	router, db := setupTestServer(t)
	seedActiveProperty(t, db, models.Property{Location: "Andheri West", City: "Mumbai", ViewCount: 10, IsActive: true})
	seedActiveProperty(t, db, models.Property{Location: "Andheri West", City: "Mumbai", ViewCount: 5, IsActive: true})
	seedActiveProperty(t, db, models.Property{Location: "Andheri East", City: "Mumbai", ViewCount: 1, IsActive: true})

	// Queries under two characters short-circuit to an empty list. A
	// single multi-byte rune is still one character.
	for _, query := range []string{"q=a", "q=%C3%A9"} {
		recorder := doRequest(t, router, http.MethodGet, "/api/search/suggestions?"+query, nil, "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "[]", recorder.Body.String(), "query %q", query)
	}

	recorder := doRequest(t, router, http.MethodGet, "/api/search/suggestions?q=andheri", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var suggestions []models.SearchSuggestion
	decodeBody(t, recorder, &suggestions)
	require.Len(t, suggestions, 2, "duplicate localities collapse")
	assert.Equal(t, "Andheri West", suggestions[0].Value)
	assert.Equal(t, "Andheri West, Mumbai", suggestions[0].Label)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
