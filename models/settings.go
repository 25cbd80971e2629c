package models

import "time"

// SiteSettings is the admin-editable site customization document.
type SiteSettings struct {
	CompanyName  string    `json:"companyName"`
	Tagline      string    `json:"tagline"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	WhatsApp     string    `json:"whatsapp"`
	Address      string    `json:"address"`
	PrimaryColor string    `json:"primaryColor"`
	AccentColor  string    `json:"accentColor"`
	HeroTitle    string    `json:"heroTitle"`
	HeroSubtitle string    `json:"heroSubtitle"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}
