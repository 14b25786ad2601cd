// Package models holds the client and staff records the assessment engine
// reads. Both are owned by other modules; only the compliance snapshot on
// Client is written here.
package models

import (
	"slices"
	"time"

	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
)

type StaffRole string

const (
	RoleStaff StaffRole = "STAFF"
	RoleAdmin StaffRole = "ADMIN"
)

func (r StaffRole) IsValid() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Client is the subset of a client record scored by the engine.
type Client struct {
	ID         id.ClientID     `json:"id"`
	Name       string          `json:"name"`
	Type       risk.ClientType `json:"client_type"`
	Country    string          `json:"country"`
	Businesses []string        `json:"businesses"`

	// Compliance snapshot written by the latest assessment. AmlRiskRating is
	// empty until the first assessment and never PROHIBITED.
	AmlRiskRating                risk.Rating `json:"aml_risk_rating,omitempty"`
	IsPEP                        bool        `json:"is_pep"`
	RequiresEnhancedDueDiligence bool        `json:"requires_enhanced_due_diligence"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComplianceUpdate is applied to a client after an assessment is created.
type ComplianceUpdate struct {
	RiskRating  risk.Rating
	IsPEP       bool
	RequiresEDD bool
	UpdatedAt   time.Time
}

// NewComplianceUpdate collapses PROHIBITED to HIGH for the client record.
func NewComplianceUpdate(rating risk.Rating, isPEP, requiresEDD bool, at time.Time) ComplianceUpdate {
	return ComplianceUpdate{
		RiskRating:  rating.ClientSnapshot(),
		IsPEP:       isPEP,
		RequiresEDD: requiresEDD,
		UpdatedAt:   at,
	}
}

// Apply writes the update onto c.
func (u ComplianceUpdate) Apply(c *Client) {
	c.AmlRiskRating = u.RiskRating
	c.IsPEP = u.IsPEP
	c.RequiresEnhancedDueDiligence = u.RequiresEDD
	c.UpdatedAt = u.UpdatedAt
}

// ComplianceSnapshot returns the update that would restore c's current
// compliance fields.
func (c *Client) ComplianceSnapshot() ComplianceUpdate {
	return ComplianceUpdate{
		RiskRating:  c.AmlRiskRating,
		IsPEP:       c.IsPEP,
		RequiresEDD: c.RequiresEnhancedDueDiligence,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c *Client) Summary() ClientSummary {
	return ClientSummary{ID: c.ID, Name: c.Name, Type: c.Type}
}

type ClientSummary struct {
	ID   id.ClientID     `json:"id"`
	Name string          `json:"name"`
	Type risk.ClientType `json:"client_type"`
}

// Staff is an authenticated firm member.
type Staff struct {
	ID         id.StaffID `json:"id"`
	UserID     id.UserID  `json:"user_id"`
	Name       string     `json:"name"`
	Role       StaffRole  `json:"role"`
	Businesses []string   `json:"businesses"`
	IsActive   bool       `json:"is_active"`
}

func (s *Staff) IsAdmin() bool {
	return s != nil && s.IsActive && s.Role == RoleAdmin
}

// AccessibleBusinesses is empty for inactive staff.
func (s *Staff) AccessibleBusinesses() []string {
	if s == nil || !s.IsActive {
		return nil
	}
	return s.Businesses
}

// CanAccess reports whether the staff member shares a business with c.
func (s *Staff) CanAccess(c *Client) bool {
	if c == nil {
		return false
	}
	businesses := s.AccessibleBusinesses()
	return slices.ContainsFunc(c.Businesses, func(b string) bool {
		return slices.Contains(businesses, b)
	})
}

func (s *Staff) Summary() StaffSummary {
	return StaffSummary{ID: s.ID, Name: s.Name}
}

type StaffSummary struct {
	ID   id.StaffID `json:"id"`
	Name string     `json:"name"`
}
