package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		notNull    bool
		check      bool
	}{
		{name: "translated duplicate", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), unique: true},
		{name: "translated foreign key", err: gorm.ErrForeignKeyViolated, foreignKey: true},
		{name: "pg unique", err: fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"}), unique: true},
		{name: "pg check", err: &pgconn.PgError{Code: "23514", Message: "violates check"}, check: true},
		{name: "pg not null", err: &pgconn.PgError{Code: "23502"}, notNull: true},
		{name: "pg other code is not matched by text", err: &pgconn.PgError{Code: "40001", Message: "unique constraint"}},
		{name: "sqlite unique text", err: errors.New("UNIQUE constraint failed: tags.key"), unique: true},
		{name: "sqlite check text", err: errors.New("CHECK constraint failed: price_non_negative"), check: true},
		{name: "sqlite not null text", err: errors.New("NOT NULL constraint failed: users.email"), notNull: true},
		{name: "unrelated", err: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.notNull, isNotNullConstraintViolation(tt.err))
			assert.Equal(t, tt.check, isCheckConstraintViolation(tt.err))
		})
	}

	assert.False(t, isUniqueConstraintViolation(nil))
}
