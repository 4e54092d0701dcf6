package store

import (
	"context"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Events struct {
	db *gorm.DB
}

func NewEvents(db *gorm.DB) *Events {
	return &Events{db: db}
}

func (s *Events) Create(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Events) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// Save writes the full event row back, comment thread included.
func (s *Events) Save(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Events) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Search matches the filter against the event title, case-insensitively.
// A blank filter returns every event; a negative offset disables pagination.
func (s *Events) Search(ctx context.Context, filter string, offset int, limit int) ([]models.Event, int64, error) {
	var (
		events  []models.Event
		counter int64
	)

	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Event{})
		if filter != "" {
			q = q.Where("title ILIKE ?", "%"+filter+"%")
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
	if err := q.Find(&events).Error; err != nil {
		return nil, 0, translate(err)
	}

	return events, counter, nil
}
