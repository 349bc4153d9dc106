package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// record is a single stored value.
type record struct {
	Key       string `gorm:"column:storage_key;primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string {
	return "records"
}

// SQLite stores all values in a single table of an SQLite database.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens the database at path and migrates the schema. Use
// ":memory:" for a database that only lives as long as the adapter.
func NewSQLite(path string) (*SQLite, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &gormLogger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// One connection prevents SQLITE_BUSY errors and keeps in-memory
	// databases from being recreated for every connection
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("error during DB migration: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyEmpty
	}

	var r record
	err := s.db.WithContext(ctx).Where(&record{Key: key}).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dbError("load", key, err)
	}

	return r.Value, true, nil
}

func (s *SQLite) Save(ctx context.Context, key, text string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record{Key: key, Value: text}).Error
	if err != nil {
		return dbError("save", key, err)
	}

	return nil
}

// dbError adds the SQLite result code to errors returned by the database.
func dbError(op, key string, err error) error {
	var sqliteErr *go_sqlite.Error
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("could not %s %s (sqlite code %d): %w", op, key, sqliteErr.Code(), err)
	}

	return fmt.Errorf("could not %s %s: %w", op, key, err)
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
