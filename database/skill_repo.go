package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAllOrdered returns skills ascending by order, ties broken by id.
func (r *SkillRepo) FindAllOrdered(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&count).Error
	return count, err
}

func (r *SkillRepo) AddAll(ctx context.Context, skills []models.Skill) error {
	return r.db.WithContext(ctx).Create(&skills).Error
}

func (r *SkillRepo) withDB(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}
