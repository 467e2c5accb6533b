// Package sqlite is the embedded gorm-backed store used for local development and tests.
package sqlite

import (
	"errors"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	repo "github.com/oksasatya/planify/internal/domain/repository"
)

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type projectModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Owner       string `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	TechStack   string // JSON array
	Pinned      bool
	EmailAlerts bool
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
}

func (projectModel) TableName() string { return "projects" }

type taskModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	ProjectID   string `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null"`
	Priority    string `gorm:"not null"`
	StartDate   *time.Time
	EndDate     *time.Time
	AssignedTo  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskModel) TableName() string { return "tasks" }

// Open opens (creating if needed) the database file at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// single writer keeps sqlite free of "database is locked"
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&userModel{}, &projectModel{}, &taskModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return repo.ErrDuplicate
	}
	return err
}
