package repositories

import (
	"context"

	"metta-coop-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// noticeRepository implements NoticeRepository interface
type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

// Create creates a new notice
func (r *noticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

// List lists notices, newest first
func (r *noticeRepository) List(ctx context.Context) ([]*models.Notice, error) {
	var notices []*models.Notice
	err := r.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Find(&notices).Error
	return notices, err
}

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// List lists events in chronological order
func (r *eventRepository) List(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Order("date ASC, id ASC").
		Find(&events).Error
	return events, err
}
