package models

import (
	"time"

	"gorm.io/datatypes"
)

// Property is a listing. Soft deletion flips IsActive to false; the row
// stays in storage and is hidden from all public reads.
type Property struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Title            string                      `gorm:"size:255;not null" json:"title"`
	Description      string                      `gorm:"type:text" json:"description"`
	PropertyType     string                      `gorm:"size:50;not null;index" json:"propertyType"`
	BHKType          string                      `gorm:"column:bhk_type;size:20;index" json:"bhkType"`
	Price            float64                     `gorm:"not null;index" json:"price"`
	PricePerSqft     float64                     `json:"pricePerSqft"`
	Area             int                         `gorm:"not null" json:"area"`
	Location         string                      `gorm:"size:255;not null" json:"location"`
	City             string                      `gorm:"size:100;not null;index" json:"city"`
	State            string                      `gorm:"size:100;not null" json:"state"`
	Pincode          string                      `gorm:"size:10" json:"pincode"`
	Address          string                      `gorm:"type:text" json:"address"`
	BuilderName      string                      `gorm:"size:255" json:"builderName"`
	ProjectStatus    string                      `gorm:"size:50" json:"projectStatus"`
	PossessionStatus string                      `gorm:"size:50" json:"possessionStatus"`
	Bedrooms         int                         `json:"bedrooms"`
	Bathrooms        int                         `json:"bathrooms"`
	Floor            int                         `json:"floor"`
	TotalFloors      int                         `json:"totalFloors"`
	Facing           string                      `gorm:"size:50" json:"facing"`
	Furnishing       string                      `gorm:"size:50" json:"furnishing"`
	ParkingSpaces    int                         `gorm:"default:0" json:"parkingSpaces"`
	Balconies        int                         `gorm:"default:0" json:"balconies"`
	Amenities        datatypes.JSONSlice[string] `json:"amenities"`
	Images           datatypes.JSONSlice[string] `json:"images"`
	VirtualTourURL   string                      `gorm:"type:text" json:"virtualTourUrl"`
	FeaturedImageURL string                      `gorm:"type:text" json:"featuredImageUrl"`
	IsFeatured       bool                        `gorm:"default:false;index" json:"isFeatured"`
	IsActive         bool                        `gorm:"index" json:"isActive"`
	ViewCount        int                         `gorm:"default:0" json:"viewCount"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

// Sortable search keys; anything else falls back to createdAt.
const (
	SortByPrice     = "price"
	SortByArea      = "area"
	SortByCreatedAt = "createdAt"
	SortByViewCount = "viewCount"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	DefaultFeaturedLimit = 6
)

// PropertySearchParams carries the filter, sort and pagination inputs of a
// property search. Absent fields impose no restriction; all supplied
// predicates combine with AND.
type PropertySearchParams struct {
	Location         string   `form:"location"`
	PropertyType     string   `form:"propertyType"`
	BHKType          string   `form:"bhkType"`
	City             string   `form:"city"`
	PossessionStatus string   `form:"possessionStatus"`
	MinPrice         *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice         *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	MinArea          *int     `form:"minArea" binding:"omitempty,gte=0"`
	MaxArea          *int     `form:"maxArea" binding:"omitempty,gte=0"`
	// Only true restricts the result set; there is deliberately no way to
	// request non-featured listings.
	IsFeatured *bool    `form:"isFeatured"`
	Amenities  []string `form:"amenities"`
	// Out-of-range pagination clamps in Normalize rather than failing
	// the request.
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sortBy,default=createdAt"`
	SortOrder string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

// Normalize clamps pagination to sane bounds and fills sort defaults.
func (p *PropertySearchParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	if p.SortBy == "" {
		p.SortBy = SortByCreatedAt
	}
}

// CreatePropertyInput is the admin payload for a new listing.
type CreatePropertyInput struct {
	Title            string   `json:"title" binding:"required,max=255"`
	Description      string   `json:"description"`
	PropertyType     string   `json:"propertyType" binding:"required,max=50"`
	BHKType          string   `json:"bhkType" binding:"max=20"`
	Price            float64  `json:"price" binding:"gte=0"`
	PricePerSqft     float64  `json:"pricePerSqft" binding:"gte=0"`
	Area             int      `json:"area" binding:"required,gt=0"`
	Location         string   `json:"location" binding:"required,max=255"`
	City             string   `json:"city" binding:"required,max=100"`
	State            string   `json:"state" binding:"required,max=100"`
	Pincode          string   `json:"pincode" binding:"max=10"`
	Address          string   `json:"address"`
	BuilderName      string   `json:"builderName" binding:"max=255"`
	ProjectStatus    string   `json:"projectStatus" binding:"max=50"`
	PossessionStatus string   `json:"possessionStatus" binding:"max=50"`
	Bedrooms         int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms        int      `json:"bathrooms" binding:"gte=0"`
	Floor            int      `json:"floor"`
	TotalFloors      int      `json:"totalFloors" binding:"gte=0"`
	Facing           string   `json:"facing" binding:"max=50"`
	Furnishing       string   `json:"furnishing" binding:"max=50"`
	ParkingSpaces    int      `json:"parkingSpaces" binding:"gte=0"`
	Balconies        int      `json:"balconies" binding:"gte=0"`
	Amenities        []string `json:"amenities"`
	Images           []string `json:"images"`
	VirtualTourURL   string   `json:"virtualTourUrl"`
	FeaturedImageURL string   `json:"featuredImageUrl"`
	IsFeatured       *bool    `json:"isFeatured"`
	IsActive         *bool    `json:"isActive"`
}

// UpdatePropertyInput is a partial update; nil fields are left untouched.
type UpdatePropertyInput struct {
	Title            *string   `json:"title" binding:"omitempty,max=255"`
	Description      *string   `json:"description"`
	PropertyType     *string   `json:"propertyType" binding:"omitempty,max=50"`
	BHKType          *string   `json:"bhkType" binding:"omitempty,max=20"`
	Price            *float64  `json:"price" binding:"omitempty,gte=0"`
	PricePerSqft     *float64  `json:"pricePerSqft" binding:"omitempty,gte=0"`
	Area             *int      `json:"area" binding:"omitempty,gt=0"`
	Location         *string   `json:"location" binding:"omitempty,max=255"`
	City             *string   `json:"city" binding:"omitempty,max=100"`
	State            *string   `json:"state" binding:"omitempty,max=100"`
	Pincode          *string   `json:"pincode" binding:"omitempty,max=10"`
	Address          *string   `json:"address"`
	BuilderName      *string   `json:"builderName" binding:"omitempty,max=255"`
	ProjectStatus    *string   `json:"projectStatus" binding:"omitempty,max=50"`
	PossessionStatus *string   `json:"possessionStatus" binding:"omitempty,max=50"`
	Bedrooms         *int      `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms        *int      `json:"bathrooms" binding:"omitempty,gte=0"`
	Floor            *int      `json:"floor"`
	TotalFloors      *int      `json:"totalFloors" binding:"omitempty,gte=0"`
	Facing           *string   `json:"facing" binding:"omitempty,max=50"`
	Furnishing       *string   `json:"furnishing" binding:"omitempty,max=50"`
	ParkingSpaces    *int      `json:"parkingSpaces" binding:"omitempty,gte=0"`
	Balconies        *int      `json:"balconies" binding:"omitempty,gte=0"`
	Amenities        *[]string `json:"amenities"`
	Images           *[]string `json:"images"`
	VirtualTourURL   *string   `json:"virtualTourUrl"`
	FeaturedImageURL *string   `json:"featuredImageUrl"`
	IsFeatured       *bool     `json:"isFeatured"`
	IsActive         *bool     `json:"isActive"`
}

// SearchSuggestion is one autocomplete entry for the search bar.
type SearchSuggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
