package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"estatehub/server/internal/models"
)

// GetLeads returns a page of leads, newest first, plus the total count.
func (d *Database) GetLeads(page, limit int) ([]models.Lead, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}

	var total int64
	if err := d.db.Model(&models.Lead{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	leads := []models.Lead{}
	err := d.db.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&leads).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leads: %w", err)
	}

	return leads, total, nil
}

func (d *Database) GetLead(id uint) (*models.Lead, error) {
	var lead models.Lead
	err := d.db.First(&lead, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &lead, nil
}

func (d *Database) CreateLead(input models.LeadInput) (*models.Lead, error) {
	lead := models.Lead{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		PropertyID: input.PropertyID,
		Source:     input.Source,
		Status:     models.LeadStatusNew,
	}
	if lead.Source == "" {
		lead.Source = models.DefaultLeadSource
	}

	if err := d.db.Create(&lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return &lead, nil
}

// UpdateLead applies the non-nil fields of input and returns the updated
// row. Status transitions are unconstrained.
func (d *Database) UpdateLead(id uint, input models.UpdateLeadInput) (*models.Lead, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Message != nil {
		updates["message"] = *input.Message
	}
	if input.PropertyID != nil {
		updates["property_id"] = *input.PropertyID
	}
	if input.Source != nil {
		updates["source"] = *input.Source
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		result := d.db.Model(&models.Lead{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update lead: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return d.GetLead(id)
}

// DeleteLead removes the row permanently.
func (d *Database) DeleteLead(id uint) error {
	result := d.db.Delete(&models.Lead{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lead: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
