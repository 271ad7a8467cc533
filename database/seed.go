package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// seedLockKey identifies the Postgres advisory lock held while seeding.
const seedLockKey int64 = 0x706f7274666f6c69

// DefaultContent is the copy inserted into an empty content table.
func DefaultContent() []models.InsertContent {
	return []models.InsertContent{
		{
			Section: "hero_tagline",
			Text:    "I build mobile apps and games that make a difference.",
		},
		{
			Section: "about",
			Text:    "I'm a mobile app and game developer. I focus on building tools that automate the boring stuff and systems that just work. I learn deeply to understand how things work at their core.",
		},
		{
			Section: "work",
			Text:    "I'm currently building Orderlyy, an automated shop system for Telegram and WhatsApp. I also built Arena Anywhere, a one-tap platform to play PPSSPP eFootball online without the hassle of VPNs or manual IP sharing.",
		},
	}
}

// DefaultSkills is the list inserted into an empty skills table.
func DefaultSkills() []models.InsertSkill {
	return []models.InsertSkill{
		{Name: "Mobile App Development", Order: 1},
		{Name: "Game Development", Order: 2},
		{Name: "System Automation", Order: 3},
		{Name: "Backend Logic", Order: 4},
	}
}

// SeedInitialData fills the content and skills tables with their defaults,
// each only when that whole table is empty. A table holding any row is left
// untouched, so deleted defaults are never backfilled. On Postgres the check
// and insert run under a transaction-scoped advisory lock so concurrent
// startups cannot both insert.
func (d Database) SeedInitialData(ctx context.Context) error {
	err := d.db.WithContext(ctx).Clauses(dbresolver.Write).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", seedLockKey).Error; err != nil {
				return errs.NewStorageError("lock", "seed", err)
			}
		}

		contentRepo := d.contentRepo.withDB(tx)
		count, err := contentRepo.Count(ctx)
		if err != nil {
			return errs.NewStorageError("count", "content", err)
		}
		if count == 0 {
			rows, err := contentRecords(DefaultContent())
			if err != nil {
				return err
			}
			if err := contentRepo.AddAll(ctx, rows); err != nil {
				return errs.NewStorageError("seed", "content", err)
			}
		}

		skillRepo := d.skillRepo.withDB(tx)
		count, err = skillRepo.Count(ctx)
		if err != nil {
			return errs.NewStorageError("count", "skills", err)
		}
		if count == 0 {
			rows, err := skillRecords(DefaultSkills())
			if err != nil {
				return err
			}
			if err := skillRepo.AddAll(ctx, rows); err != nil {
				return errs.NewStorageError("seed", "skills", err)
			}
		}

		return nil
	})
	if err != nil && !errs.IsStorageError(err) && !models.IsValidationError(err) {
		return errs.NewStorageError("commit", "seed", err)
	}
	return err
}

func contentRecords(inserts []models.InsertContent) ([]models.Content, error) {
	rows := make([]models.Content, 0, len(inserts))
	for _, in := range inserts {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, in.Record())
	}
	return rows, nil
}

func skillRecords(inserts []models.InsertSkill) ([]models.Skill, error) {
	rows := make([]models.Skill, 0, len(inserts))
	for _, in := range inserts {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, in.Record())
	}
	return rows, nil
}
