package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "storage_records"
}

func OpenSQLite(dbPath string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := database.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate storage schema: %w", err)
	}

	return database, nil
}

// SQLiteKV stores each key as one row of the storage_records table.
type SQLiteKV struct {
	database *gorm.DB
}

func NewSQLiteKV(database *gorm.DB) *SQLiteKV {
	return &SQLiteKV{database: database}
}

func (store *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	record := Record{}
	err := store.database.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %q: %w", key, err)
	}
	return record.Value, true, nil
}

func (store *SQLiteKV) Set(ctx context.Context, key string, value string) error {
	record := Record{Key: key, Value: value}
	err := store.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

func (store *SQLiteKV) Delete(ctx context.Context, key string) error {
	if err := store.database.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}
