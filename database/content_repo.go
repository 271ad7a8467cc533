package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ContentRepo struct {
	db *gorm.DB
}

func NewContentRepo(db *gorm.DB) *ContentRepo {
	return &ContentRepo{db}
}

// FindAll returns every content section. Callers must not rely on the order.
func (r *ContentRepo) FindAll(ctx context.Context) ([]models.Content, error) {
	content := []models.Content{}
	err := r.db.WithContext(ctx).Find(&content).Error
	return content, err
}

func (r *ContentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Content{}).Count(&count).Error
	return count, err
}

// AddAll inserts the given sections in one statement.
func (r *ContentRepo) AddAll(ctx context.Context, content []models.Content) error {
	return r.db.WithContext(ctx).Create(&content).Error
}

func (r *ContentRepo) withDB(db *gorm.DB) *ContentRepo {
	return &ContentRepo{db}
}
