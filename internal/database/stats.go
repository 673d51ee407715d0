package database

import (
	"fmt"

	"estatehub/server/internal/models"
)

// DashboardStats summarizes the admin dashboard counters.
type DashboardStats struct {
	TotalProperties int64 `json:"totalProperties"`
	TotalLeads      int64 `json:"totalLeads"`
	ActiveListings  int64 `json:"activeListings"`
	MonthlyViews    int64 `json:"monthlyViews"`
}

func (d *Database) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := d.db.Model(&models.Property{}).Count(&stats.TotalProperties).Error; err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	if err := d.db.Model(&models.Property{}).Where("is_active = ?", true).Count(&stats.ActiveListings).Error; err != nil {
		return nil, fmt.Errorf("failed to count active listings: %w", err)
	}
	if err := d.db.Model(&models.Property{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&stats.MonthlyViews).Error; err != nil {
		return nil, fmt.Errorf("failed to sum views: %w", err)
	}
	if err := d.db.Model(&models.Lead{}).Count(&stats.TotalLeads).Error; err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	return &stats, nil
}
