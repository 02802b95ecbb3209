package services

import (
	"context"
	"errors"
	"fmt"

	"genuka-bridge/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// колонки, які перезаписуються при повторній інсталяції
var upsertColumns = []string{
	"handle",
	"name",
	"description",
	"logo_url",
	"phone",
	"authorization_code",
	"access_token",
	"refresh_token",
	"token_expires_at",
	"updated_at",
}

// companyService реалізація CompanyService
type companyService struct {
	db *gorm.DB
}

// NewCompanyService створює новий CompanyService
func NewCompanyService(db *gorm.DB) CompanyService {
	return &companyService{
		db: db,
	}
}

func (s *companyService) FindByID(ctx context.Context, id string) (*models.Company, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *companyService) FindByHandle(ctx context.Context, handle string) (*models.Company, error) {
	return s.findOne(ctx, "handle = ?", handle)
}

func (s *companyService) FindByAccessToken(ctx context.Context, accessToken string) (*models.Company, error) {
	return s.findOne(ctx, "access_token = ?", accessToken)
}

// FindAll повертає всі компанії, новіші першими
func (s *companyService) FindAll(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}
	return companies, nil
}

// Upsert створює компанію або оновлює існуючу за ID, created_at не змінюється
func (s *companyService) Upsert(ctx context.Context, company *models.Company) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(company).Error
	if err != nil {
		return fmt.Errorf("failed to upsert company %s: %w", company.ID, err)
	}

	logrus.WithFields(logrus.Fields{
		"company_id": company.ID,
		"name":       company.Name,
	}).Info("Company saved")

	return nil
}

// UpdateByID оновлює вказані поля компанії
func (s *companyService) UpdateByID(ctx context.Context, id string, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update company %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

// DeleteByID видаляє компанію; відсутність запису не є помилкою
func (s *companyService) DeleteByID(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Company{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete company %s: %w", id, result.Error)
	}

	logrus.WithFields(logrus.Fields{
		"company_id": id,
		"deleted":    result.RowsAffected,
	}).Info("Company deleted")

	return nil
}

func (s *companyService) findOne(ctx context.Context, query string, arg interface{}) (*models.Company, error) {
	var company models.Company
	err := s.db.WithContext(ctx).Where(query, arg).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}
