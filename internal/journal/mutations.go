package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-cards/gradecard/internal/grades"
)

// Op identifies the kind of mutation that was attempted
type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
)

// Entry is one attempted mutation against the grade store
type Entry struct {
	ID        string
	Op        Op
	Category  grades.Category
	Subject   string
	Value     float64
	NewValue  *float64 // edit only
	OK        bool
	Error     string
	CreatedAt time.Time
}

// Record stores an entry. ID and CreatedAt are filled in when empty.
func (d *DB) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	var newValue sql.NullFloat64
	if e.NewValue != nil {
		newValue = sql.NullFloat64{Float64: *e.NewValue, Valid: true}
	}

	_, err := d.ExecContext(ctx, `
		INSERT INTO mutations (id, op, category, subject, value, new_value, ok, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, string(e.Op), string(e.Category), e.Subject, e.Value, newValue, e.OK, e.Error, e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("record mutation: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (d *DB) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.QueryContext(ctx, `
		SELECT id, op, category, subject, value, new_value, ok, error, created_at
		FROM mutations ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list mutations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			op, cat   string
			value     sql.NullFloat64
			newValue  sql.NullFloat64
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &op, &cat, &e.Subject, &value, &newValue, &e.OK, &e.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		e.Op = Op(op)
		e.Category = grades.Category(cat)
		e.Value = value.Float64
		if newValue.Valid {
			v := newValue.Float64
			e.NewValue = &v
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
