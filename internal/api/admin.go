package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"estatehub/server/internal/auth"
	"estatehub/server/internal/database"
	"estatehub/server/internal/models"
)

// Login validates admin credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	admin, err := h.db.ValidateCredentials(input.Username, input.Password)
	if err != nil {
		h.logger.WithError(err).Error("Failed to validate credentials")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ttl := time.Duration(h.cfg.JWTExpiryHours) * time.Hour
	token, err := auth.IssueToken(admin, h.cfg.JWTSecret, ttl)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin.Profile(),
	})
}

// VerifyAdmin confirms the bearer token still maps to an active admin.
func (h *Handler) VerifyAdmin(c *gin.Context) {
	claims := adminClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	admin, err := h.db.GetAdmin(claims.AdminID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to verify admin")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin.Profile()})
}

func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.db.GetDashboardStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// AdminSearchProperties mirrors the public search but includes inactive
// rows.
func (h *Handler) AdminSearchProperties(c *gin.Context) {
	var params models.PropertySearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.WithError(err).Error("Failed to parse search parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}
	params.Normalize()

	properties, total, err := h.db.SearchProperties(params, true)
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

func (h *Handler) CreateProperty(c *gin.Context) {
	var input models.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property data", "details": err.Error()})
		return
	}

	property, err := h.db.CreateProperty(input)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	h.invalidateFeaturedCache(c)
	c.JSON(http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	var input models.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property data", "details": err.Error()})
		return
	}

	property, err := h.db.UpdateProperty(id, input)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	h.invalidateFeaturedCache(c)
	c.JSON(http.StatusOK, property)
}

// DeleteProperty soft-deletes: the listing disappears from public reads but
// the row persists.
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	err := h.db.SoftDeleteProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	h.invalidateFeaturedCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

func (h *Handler) GetLeads(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)

	leads, total, err := h.db.GetLeads(page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get leads")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"total": total,
	})
}

func (h *Handler) UpdateLead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID"})
		return
	}

	var input models.UpdateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead data", "details": err.Error()})
		return
	}

	lead, err := h.db.UpdateLead(id, input)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update lead")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

// DeleteLead removes the lead permanently.
func (h *Handler) DeleteLead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID"})
		return
	}

	err := h.db.DeleteLead(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete lead")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted successfully"})
}

func (h *Handler) invalidateFeaturedCache(c *gin.Context) {
	if err := h.cache.Delete(c.Request.Context(), featuredCacheKey); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate featured cache")
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value := c.Query(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
