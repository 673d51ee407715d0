package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estatehub/server/config"
	"estatehub/server/internal/cache"
	"estatehub/server/internal/database"
	"estatehub/server/internal/models"
	"estatehub/server/internal/notify"
)

// Only the default-limit featured response is cached; other limits go
// straight to the database.
const (
	featuredCacheKey = "properties:featured"
	featuredCacheTTL = 5 * time.Minute
)

type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	cfg      *config.Config
	cache    *cache.Cache
	notifier *notify.TelegramNotifier
}

func NewHandler(db *database.Database, logger *logrus.Logger, cfg *config.Config, store *cache.Cache, notifier *notify.TelegramNotifier) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:       db,
		logger:   logger,
		cfg:      cfg,
		cache:    store,
		notifier: notifier,
	}
}

// SearchProperties handles the public filtered property search.
func (h *Handler) SearchProperties(c *gin.Context) {
	var params models.PropertySearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.WithError(err).Error("Failed to parse search parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}
	params.Normalize()

	properties, total, err := h.db.SearchProperties(params, false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to search properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"total":      total,
	})
}

// GetFeaturedProperties returns active featured listings, newest first.
func (h *Handler) GetFeaturedProperties(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(models.DefaultFeaturedLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = models.DefaultFeaturedLimit
	}

	useCache := limit == models.DefaultFeaturedLimit
	if useCache {
		var cached []models.Property
		if hit, err := h.cache.Get(c.Request.Context(), featuredCacheKey, &cached); err != nil {
			h.logger.WithError(err).Warn("Featured properties cache read failed")
		} else if hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	properties, err := h.db.GetFeaturedProperties(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get featured properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured properties"})
		return
	}

	if useCache {
		if err := h.cache.Set(c.Request.Context(), featuredCacheKey, properties, featuredCacheTTL); err != nil {
			h.logger.WithError(err).Warn("Featured properties cache write failed")
		}
	}

	c.JSON(http.StatusOK, properties)
}

// GetProperty returns a single active property and counts the view.
func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	property, err := h.db.GetProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch property"})
		return
	}

	// Counted once per detail fetch; a failed increment must not block the
	// response.
	if err := h.db.IncrementPropertyViews(id); err != nil {
		h.logger.WithError(err).Error("Failed to increment view count")
	}

	c.JSON(http.StatusOK, property)
}

// CreateLead captures a contact-form submission.
func (h *Handler) CreateLead(c *gin.Context) {
	var input models.LeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead data", "details": err.Error()})
		return
	}

	lead, err := h.db.CreateLead(input)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create lead")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead"})
		return
	}

	if h.notifier.Enabled() {
		go func(lead models.Lead) {
			if err := h.notifier.NotifyNewLead(&lead); err != nil {
				h.logger.WithError(err).Warn("Failed to send lead notification")
			}
		}(*lead)
	}

	c.JSON(http.StatusCreated, lead)
}

// GetSearchSuggestions returns autocomplete entries for the search bar.
// Queries shorter than two characters yield an empty list.
func (h *Handler) GetSearchSuggestions(c *gin.Context) {
	query := c.Query("q")
	if utf8.RuneCountInString(query) < 2 {
		c.JSON(http.StatusOK, []models.SearchSuggestion{})
		return
	}

	properties, _, err := h.db.SearchProperties(models.PropertySearchParams{
		Location:  query,
		Page:      1,
		Limit:     5,
		SortBy:    models.SortByViewCount,
		SortOrder: "desc",
	}, false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch search suggestions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	suggestions := []models.SearchSuggestion{}
	seen := map[string]bool{}
	for _, p := range properties {
		if seen[p.Location] {
			continue
		}
		seen[p.Location] = true
		suggestions = append(suggestions, models.SearchSuggestion{
			Value: p.Location,
			Label: p.Location + ", " + p.City,
		})
	}

	c.JSON(http.StatusOK, suggestions)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
