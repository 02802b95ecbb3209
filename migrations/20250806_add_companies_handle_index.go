package migrations

import (
	"genuka-bridge/internal/models"

	"gorm.io/gorm"
)

const companiesHandleIndex = "idx_companies_handle"

// AddCompaniesHandleIndex додає унікальний індекс на handle компанії
func AddCompaniesHandleIndex(tx *gorm.DB) error {
	migrator := tx.Migrator()
	if migrator.HasIndex(&models.Company{}, companiesHandleIndex) {
		return nil
	}
	return migrator.CreateIndex(&models.Company{}, companiesHandleIndex)
}

// DropCompaniesHandleIndex видаляє унікальний індекс handle
func DropCompaniesHandleIndex(tx *gorm.DB) error {
	migrator := tx.Migrator()
	if !migrator.HasIndex(&models.Company{}, companiesHandleIndex) {
		return nil
	}
	return migrator.DropIndex(&models.Company{}, companiesHandleIndex)
}
