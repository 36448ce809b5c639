// Package domain contains persistence models for the organization mirror.
package domain

import "time"

// Organization is the datastore mirror of a tenant. The identity
// provider owns the id and name; the datastore owns everything else.
type Organization struct {
	ID                  string    `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"type:text;not null" json:"name"`
	LegalName           *string   `gorm:"type:text" json:"legal_name"`
	Slug                *string   `gorm:"type:text" json:"slug"`
	PrimaryEmail        *string   `gorm:"type:text" json:"primary_email"`
	PrimaryPhone        *string   `gorm:"type:text" json:"primary_phone"`
	AddressLine1        *string   `gorm:"type:text" json:"address_line1"`
	AddressLine2        *string   `gorm:"type:text" json:"address_line2"`
	City                *string   `gorm:"type:text" json:"city"`
	State               *string   `gorm:"type:text" json:"state"`
	ZipCode             *string   `gorm:"type:text" json:"zip_code"`
	Country             string    `gorm:"type:text;not null;default:USA" json:"country"`
	Currency            string    `gorm:"type:text;not null;default:USD" json:"currency"`
	DefaultBillingTerms int       `gorm:"not null;default:30" json:"default_billing_terms"`
	IsProvider          bool      `gorm:"not null;default:true" json:"is_provider"`
	IsBroker            bool      `gorm:"not null;default:false" json:"is_broker"`
	Active              bool      `gorm:"not null;default:true" json:"active"`
	PlanID              *string   `gorm:"type:text" json:"plan_id"`
	BillingAnchorDay    *int      `json:"billing_anchor_day"`
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Organization) TableName() string { return "organizations" }

// Setting is a key/value/type triple scoped to an organization.
type Setting struct {
	OrgID        string `gorm:"column:org_id;primaryKey" json:"org_id"`
	SettingKey   string `gorm:"primaryKey" json:"setting_key"`
	SettingValue string `gorm:"type:text;not null" json:"setting_value"`
	SettingType  string `gorm:"type:text;not null;default:string" json:"setting_type"`
}

func (Setting) TableName() string { return "organization_settings" }

// User is a mirrored member record, read-only here.
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OrgID       *string   `gorm:"column:org_id" json:"org_id"`
	Email       *string   `json:"email"`
	DisplayName *string   `json:"display_name"`
	Role        *string   `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
