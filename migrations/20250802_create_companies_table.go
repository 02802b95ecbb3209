package migrations

import (
	"time"

	"gorm.io/gorm"
)

// companyTable модель таблиці companies на момент створення
type companyTable struct {
	ID                string  `gorm:"primaryKey;size:255"`
	Handle            *string `gorm:"size:255"`
	Name              string  `gorm:"not null;size:255"`
	Description       *string `gorm:"type:text"`
	LogoURL           *string `gorm:"size:500"`
	Phone             *string `gorm:"size:50"`
	AuthorizationCode string  `gorm:"size:500"`
	AccessToken       string  `gorm:"type:text"`
	RefreshToken      string  `gorm:"type:text"`
	TokenExpiresAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName явно задає ім'я таблиці для GORM
func (companyTable) TableName() string {
	return "companies"
}

// CreateCompaniesTable створює таблицю companies
func CreateCompaniesTable(tx *gorm.DB) error {
	return tx.AutoMigrate(&companyTable{})
}

// DropCompaniesTable видаляє таблицю companies
func DropCompaniesTable(tx *gorm.DB) error {
	return tx.Migrator().DropTable("companies")
}
