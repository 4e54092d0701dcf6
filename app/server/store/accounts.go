package store

import (
	"context"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

func (s *Accounts) Create(ctx context.Context, account *models.Account) error {
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Accounts) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *Accounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// UsernameExists is the advisory pre-check used by sign-up forms. It is
// inherently racy against concurrent writes; Create remains the authority.
func (s *Accounts) UsernameExists(ctx context.Context, username string) (bool, error) {
	var counter int64
	if err := s.db.WithContext(ctx).Model(&models.Account{}).Where("username = ?", username).Count(&counter).Error; err != nil {
		return false, translate(err)
	}
	return counter > 0, nil
}

func (s *Accounts) UpdateUsername(ctx context.Context, account *models.Account, username string) error {
	if err := s.db.WithContext(ctx).Model(account).Update("username", username).Error; err != nil {
		return translate(err)
	}
	return nil
}

// UpdateFlags persists the account's admin and disabled flags as currently
// set on the model.
func (s *Accounts) UpdateFlags(ctx context.Context, account *models.Account) error {
	if err := s.db.WithContext(ctx).Model(account).Select("is_admin", "is_disabled").Updates(account).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Search matches the filter against username or email, case-insensitively.
// A negative offset disables pagination.
func (s *Accounts) Search(ctx context.Context, filter string, offset int, limit int) ([]models.Account, int64, error) {
	var (
		accounts []models.Account
		counter  int64
	)

	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Account{})
		if filter != "" {
			pattern := "%" + filter + "%"
			q = q.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
		}
		return q
	}

	if err := base().Count(&counter).Error; err != nil {
		return nil, 0, translate(err)
	}

	q := base().Order("created_at ASC")
	if offset >= 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&accounts).Error; err != nil {
		return nil, 0, translate(err)
	}

	return accounts, counter, nil
}
