package models

import "time"

// Company представляє компанію (тенанта) Genuka, яка встановила застосунок
type Company struct {
	ID                string     `gorm:"primaryKey;size:255" json:"id"`
	Handle            *string    `gorm:"uniqueIndex;size:255" json:"handle"`
	Name              string     `gorm:"not null;size:255" json:"name"`
	Description       *string    `gorm:"type:text" json:"description"`
	LogoURL           *string    `gorm:"size:500" json:"logo_url"`
	Phone             *string    `gorm:"size:50" json:"phone"`
	AuthorizationCode string     `gorm:"size:500" json:"-"`
	AccessToken       string     `gorm:"type:text" json:"-"`
	RefreshToken      string     `gorm:"type:text" json:"-"`
	TokenExpiresAt    *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName явно задає ім'я таблиці для GORM
func (Company) TableName() string {
	return "companies"
}

// HasRefreshToken перевіряє чи є у компанії збережений refresh token провайдера
func (c *Company) HasRefreshToken() bool {
	return c.RefreshToken != ""
}

// CompanyProfile представляє публічні поля компанії, які можна віддати браузеру
type CompanyProfile struct {
	ID          string    `json:"id"`
	Handle      *string   `json:"handle"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	LogoURL     *string   `json:"logo_url"`
	Phone       *string   `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile повертає публічне представлення компанії без токенів
func (c *Company) Profile() CompanyProfile {
	return CompanyProfile{
		ID:          c.ID,
		Handle:      c.Handle,
		Name:        c.Name,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		Phone:       c.Phone,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CompanySummary коротка інформація про компанію для домашньої сторінки
type CompanySummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Handle *string `json:"handle"`
}

// CompanyInfo представляє відповідь Genuka API з інформацією про компанію
type CompanyInfo struct {
	ID          string          `json:"id,omitempty"`
	Handle      *string         `json:"handle,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	LogoURL     *string         `json:"logoUrl,omitempty"`
	Metadata    CompanyMetadata `json:"metadata,omitempty"`
}

// CompanyMetadata містить додаткові дані компанії від Genuka
type CompanyMetadata struct {
	Contact *string `json:"contact,omitempty"`
}
