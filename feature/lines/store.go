package lines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mango-sync/core/database"
	"mango-sync/core/reconcile"

	"gorm.io/gorm"
)

// Store persists phone numbers. Every write is its own transaction.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates the table and its unique number index if needed.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&PhoneNumber{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// VerifySchema checks that the table exists with every column the sync uses.
func (s *Store) VerifySchema(ctx context.Context) error {
	columns, err := database.GetTableColumns(ctx, s.db, TableName)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("table %s does not exist", TableName)
	}
	if missing := database.MissingColumns(columns, Columns); len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", TableName, strings.Join(missing, ", "))
	}
	return nil
}

// FindByNumber returns the row for number, or (nil, nil) when there is none.
func (s *Store) FindByNumber(ctx context.Context, number string) (*PhoneNumber, error) {
	var row PhoneNumber
	err := s.db.WithContext(ctx).Where("number = ?", number).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch number %s: %w", number, err)
	}
	return &row, nil
}

// Create inserts a row for line. A duplicate number is rejected by the unique index.
func (s *Store) Create(ctx context.Context, line reconcile.Line) error {
	now := s.now()
	row := PhoneNumber{
		LineID:     line.RemoteID,
		Number:     line.Number,
		Name:       line.Name,
		Comment:    line.Comment,
		Region:     line.Region,
		SchemaID:   line.SchemaID,
		SchemaName: line.SchemaName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create number %s: %w", line.Number, err)
	}
	return nil
}

// Update overwrites the mutable fields of existing from line and stamps updated_at.
// number and created_at are never written. existing reflects the new values only
// after the transaction commits.
func (s *Store) Update(ctx context.Context, existing *PhoneNumber, line reconcile.Line) error {
	now := s.now()
	updates := map[string]any{
		"line_id":     line.RemoteID,
		"name":        line.Name,
		"comment":     line.Comment,
		"region":      line.Region,
		"schema_id":   line.SchemaID,
		"schema_name": line.SchemaName,
		"updated_at":  now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&PhoneNumber{}).Where("id = ?", existing.ID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update number %s: %w", existing.Number, err)
	}

	existing.LineID = line.RemoteID
	existing.Name = line.Name
	existing.Comment = line.Comment
	existing.Region = line.Region
	existing.SchemaID = line.SchemaID
	existing.SchemaName = line.SchemaName
	existing.UpdatedAt = now
	return nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&PhoneNumber{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count numbers: %w", err)
	}
	return n, nil
}
