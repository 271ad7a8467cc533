package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Storage is the durable access the route layer depends on.
type Storage interface {
	GetContent(ctx context.Context) ([]models.Content, error)
	GetSkills(ctx context.Context) ([]models.Skill, error)
	SaveMessage(ctx context.Context, message models.InsertContactMessage) error
	SeedInitialData(ctx context.Context) error
}

type Database struct {
	db                 *gorm.DB
	contentRepo        *ContentRepo
	skillRepo          *SkillRepo
	contactMessageRepo *ContactMessageRepo
}

var _ Storage = Database{}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		contentRepo:        NewContentRepo(db),
		skillRepo:          NewSkillRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ContentRepo() *ContentRepo {
	return d.contentRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) GetContent(ctx context.Context) ([]models.Content, error) {
	content, err := d.contentRepo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewStorageError("find", "content", err)
	}
	return content, nil
}

func (d Database) GetSkills(ctx context.Context) ([]models.Skill, error) {
	skills, err := d.skillRepo.FindAllOrdered(ctx)
	if err != nil {
		return nil, errs.NewStorageError("find", "skills", err)
	}
	return skills, nil
}

func (d Database) SaveMessage(ctx context.Context, message models.InsertContactMessage) error {
	record := message.Record()
	if err := d.contactMessageRepo.Add(ctx, &record); err != nil {
		return errs.NewStorageError("save", "contact message", err)
	}
	return nil
}

// Migrate creates the content, skills and contact_messages tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Open connects to the database selected by DB_TYPE and registers any read
// replicas listed in DATABASE_REPLICA_URLS.
func Open(c map[string]string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	}

	dbType := config.GetString(c, "DB_TYPE", "postgres")
	var dialector gorm.Dialector
	switch dbType {
	case "supa":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
		dialector = postgres.New(postgres.Config{DSN: connStr, PreferSimpleProtocol: true})
	case "postgres":
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return nil, errs.NewConfigMissingError("DATABASE_URL")
		}
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	case "sqlite":
		dialector = sqlite.Open(config.GetString(c, "SQLITE_PATH", "portfolio.db"))
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDatabaseConnection, err)
	}

	if replicas := config.GetList(c, "DATABASE_REPLICA_URLS"); len(replicas) > 0 && dbType != "sqlite" {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("%w: ping: %w", errs.ErrDatabaseConnection, err)
	}

	return db, nil
}
