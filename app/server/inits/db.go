package inits

import (
	"fmt"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string, seedAdminEmail string, seedAdminUsername string) (db *gorm.DB, err error) {
	// TranslateError so unique-constraint violations surface as gorm.ErrDuplicatedKey
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{TranslateError: true}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = seedAdmin(db, seedAdminEmail, seedAdminUsername); err != nil {
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Event{},
	)
}

// seedAdmin creates the first administrator account so the moderation routes
// are reachable on a fresh deployment. Accounts are otherwise only created
// through sign-up, which always starts non-admin. Runs only when both seed
// values are configured and no account exists yet.
func seedAdmin(db *gorm.DB, email string, username string) (err error) {
	if email == "" || username == "" {
		return nil
	}

	var counter int64
	if err = db.Model(&models.Account{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get account count: %w", err)
	} else if counter > 0 {
		return nil
	}

	if err = db.Create(&models.Account{
		Email:    email,
		Username: username,
		IsAdmin:  true,
	}).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	return nil
}
