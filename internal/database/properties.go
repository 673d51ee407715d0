package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"estatehub/server/internal/models"
)

func emptyIfNil(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}

// sortColumns maps the allowed sort keys to columns. Unknown keys fall back
// to created_at.
var sortColumns = map[string]string{
	models.SortByPrice:     "price",
	models.SortByArea:      "area",
	models.SortByCreatedAt: "created_at",
	models.SortByViewCount: "view_count",
}

// propertyFilters builds the predicate set shared by the windowed query and
// the total count. All supplied filters combine with AND.
func propertyFilters(params models.PropertySearchParams, includeInactive bool) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if !includeInactive {
			tx = tx.Where("is_active = ?", true)
		}
		if params.Location != "" {
			pattern := "%" + strings.ToLower(params.Location) + "%"
			tx = tx.Where("LOWER(location) LIKE ? OR LOWER(city) LIKE ?", pattern, pattern)
		}
		if params.PropertyType != "" {
			tx = tx.Where("property_type = ?", params.PropertyType)
		}
		if params.BHKType != "" {
			tx = tx.Where("bhk_type = ?", params.BHKType)
		}
		if params.City != "" {
			tx = tx.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(params.City)+"%")
		}
		if params.PossessionStatus != "" {
			tx = tx.Where("possession_status = ?", params.PossessionStatus)
		}
		if params.MinPrice != nil {
			tx = tx.Where("price >= ?", *params.MinPrice)
		}
		if params.MaxPrice != nil {
			tx = tx.Where("price <= ?", *params.MaxPrice)
		}
		if params.MinArea != nil {
			tx = tx.Where("area >= ?", *params.MinArea)
		}
		if params.MaxArea != nil {
			tx = tx.Where("area <= ?", *params.MaxArea)
		}
		// Only an explicit true restricts; there is no way to request
		// non-featured listings.
		if params.IsFeatured != nil && *params.IsFeatured {
			tx = tx.Where("is_featured = ?", true)
		}
		// Superset containment: every requested amenity must be present.
		for _, amenity := range params.Amenities {
			tx = tx.Where(
				"EXISTS (SELECT 1 FROM json_each(properties.amenities) WHERE json_each.value = ?)",
				amenity,
			)
		}
		return tx
	}
}

// SearchProperties returns the page of properties matching params along with
// the total match count ignoring the pagination window. Public callers get
// active rows only; includeInactive lifts that restriction for admin reads.
func (d *Database) SearchProperties(params models.PropertySearchParams, includeInactive bool) ([]models.Property, int64, error) {
	params.Normalize()
	filters := propertyFilters(params, includeInactive)

	var total int64
	if err := filters(d.db.Model(&models.Property{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if params.SortOrder == "asc" {
		direction = "ASC"
	}

	properties := []models.Property{}
	err := filters(d.db.Model(&models.Property{})).
		Order(column + " " + direction).
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&properties).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query properties: %w", err)
	}

	return properties, total, nil
}

// GetProperty returns an active property by id.
func (d *Database) GetProperty(id uint) (*models.Property, error) {
	var property models.Property
	err := d.db.Where("id = ? AND is_active = ?", id, true).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// GetPropertyAnyState returns a property regardless of its active flag.
func (d *Database) GetPropertyAnyState(id uint) (*models.Property, error) {
	var property models.Property
	err := d.db.First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// GetFeaturedProperties returns active featured listings, newest first.
func (d *Database) GetFeaturedProperties(limit int) ([]models.Property, error) {
	if limit <= 0 {
		limit = models.DefaultFeaturedLimit
	}
	if limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}

	properties := []models.Property{}
	err := d.db.
		Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}
	return properties, nil
}

func (d *Database) CreateProperty(input models.CreatePropertyInput) (*models.Property, error) {
	property := models.Property{
		Title:            input.Title,
		Description:      input.Description,
		PropertyType:     input.PropertyType,
		BHKType:          input.BHKType,
		Price:            input.Price,
		PricePerSqft:     input.PricePerSqft,
		Area:             input.Area,
		Location:         input.Location,
		City:             input.City,
		State:            input.State,
		Pincode:          input.Pincode,
		Address:          input.Address,
		BuilderName:      input.BuilderName,
		ProjectStatus:    input.ProjectStatus,
		PossessionStatus: input.PossessionStatus,
		Bedrooms:         input.Bedrooms,
		Bathrooms:        input.Bathrooms,
		Floor:            input.Floor,
		TotalFloors:      input.TotalFloors,
		Facing:           input.Facing,
		Furnishing:       input.Furnishing,
		ParkingSpaces:    input.ParkingSpaces,
		Balconies:        input.Balconies,
		Amenities:        emptyIfNil(input.Amenities),
		Images:           emptyIfNil(input.Images),
		VirtualTourURL:   input.VirtualTourURL,
		FeaturedImageURL: input.FeaturedImageURL,
		IsActive:         true,
	}
	if input.IsFeatured != nil {
		property.IsFeatured = *input.IsFeatured
	}
	if input.IsActive != nil {
		property.IsActive = *input.IsActive
	}

	if err := d.db.Create(&property).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return &property, nil
}

// UpdateProperty applies the non-nil fields of input to the property and
// returns the updated row. The view counter is not touchable through here.
func (d *Database) UpdateProperty(id uint, input models.UpdatePropertyInput) (*models.Property, error) {
	updates := propertyUpdates(input)

	if len(updates) > 0 {
		result := d.db.Model(&models.Property{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return d.GetPropertyAnyState(id)
}

// SoftDeleteProperty marks a property inactive. The row persists.
func (d *Database) SoftDeleteProperty(id uint) error {
	result := d.db.Model(&models.Property{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementPropertyViews bumps the view counter server-side so concurrent
// detail fetches never lose updates.
func (d *Database) IncrementPropertyViews(id uint) error {
	err := d.db.Model(&models.Property{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

func propertyUpdates(input models.UpdatePropertyInput) map[string]interface{} {
	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.PropertyType != nil {
		updates["property_type"] = *input.PropertyType
	}
	if input.BHKType != nil {
		updates["bhk_type"] = *input.BHKType
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.PricePerSqft != nil {
		updates["price_per_sqft"] = *input.PricePerSqft
	}
	if input.Area != nil {
		updates["area"] = *input.Area
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.State != nil {
		updates["state"] = *input.State
	}
	if input.Pincode != nil {
		updates["pincode"] = *input.Pincode
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.BuilderName != nil {
		updates["builder_name"] = *input.BuilderName
	}
	if input.ProjectStatus != nil {
		updates["project_status"] = *input.ProjectStatus
	}
	if input.PossessionStatus != nil {
		updates["possession_status"] = *input.PossessionStatus
	}
	if input.Bedrooms != nil {
		updates["bedrooms"] = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		updates["bathrooms"] = *input.Bathrooms
	}
	if input.Floor != nil {
		updates["floor"] = *input.Floor
	}
	if input.TotalFloors != nil {
		updates["total_floors"] = *input.TotalFloors
	}
	if input.Facing != nil {
		updates["facing"] = *input.Facing
	}
	if input.Furnishing != nil {
		updates["furnishing"] = *input.Furnishing
	}
	if input.ParkingSpaces != nil {
		updates["parking_spaces"] = *input.ParkingSpaces
	}
	if input.Balconies != nil {
		updates["balconies"] = *input.Balconies
	}
	if input.Amenities != nil {
		updates["amenities"] = emptyIfNil(*input.Amenities)
	}
	if input.Images != nil {
		updates["images"] = emptyIfNil(*input.Images)
	}
	if input.VirtualTourURL != nil {
		updates["virtual_tour_url"] = *input.VirtualTourURL
	}
	if input.FeaturedImageURL != nil {
		updates["featured_image_url"] = *input.FeaturedImageURL
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	return updates
}
