package migrations

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration одна версійна зміна схеми
type Migration struct {
	ID   string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

// SchemaMigration запис про застосовану міграцію
type SchemaMigration struct {
	ID        string    `gorm:"primaryKey;size:255"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName явно задає ім'я таблиці для GORM
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// All повертає всі міграції у порядку застосування
func All() []Migration {
	return []Migration{
		{ID: "20250802_create_companies_table", Up: CreateCompaniesTable, Down: DropCompaniesTable},
		{ID: "20250806_add_companies_handle_index", Up: AddCompaniesHandleIndex, Down: DropCompaniesHandleIndex},
	}
}

// Run застосовує всі ще не застосовані міграції
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	applied, err := appliedIDs(db)
	if err != nil {
		return err
	}

	for _, m := range All() {
		if applied[m.ID] {
			logrus.WithField("migration", m.ID).Debug("Migration already applied, skipping")
			continue
		}

		logrus.WithField("migration", m.ID).Info("🛠️  Applying migration")
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{ID: m.ID, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", m.ID, err)
		}
	}

	logrus.Info("✅ Database migrations completed successfully")
	return nil
}

// Rollback відкочує останню застосовану міграцію
func Rollback(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	applied, err := appliedIDs(db)
	if err != nil {
		return err
	}

	all := All()
	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if !applied[m.ID] {
			continue
		}

		logrus.WithField("migration", m.ID).Info("↩️  Rolling back migration")
		return db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("rollback %s failed: %w", m.ID, err)
			}
			return tx.Delete(&SchemaMigration{ID: m.ID}).Error
		})
	}

	logrus.Info("Nothing to roll back")
	return nil
}

func appliedIDs(db *gorm.DB) (map[string]bool, error) {
	var rows []SchemaMigration
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}

	applied := make(map[string]bool, len(rows))
	for _, row := range rows {
		applied[row.ID] = true
	}
	return applied, nil
}
