package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SQLSTATE codes of the integrity constraint class.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// constraint describes how one kind of violation surfaces: as a translated gorm error,
// as a PostgreSQL SQLSTATE, or as text from drivers that do neither (SQLite in tests).
type constraint struct {
	translated error
	sqlState   string
	phrases    []string
}

//nolint:gochecknoglobals
var (
	uniqueConstraint     = constraint{gorm.ErrDuplicatedKey, pgUniqueViolation, []string{"duplicate key", "unique constraint"}}
	foreignKeyConstraint = constraint{gorm.ErrForeignKeyViolated, pgForeignKeyViolation, []string{"foreign key"}}
	notNullConstraint    = constraint{nil, pgNotNullViolation, []string{"null value", "not null"}}
	checkConstraint      = constraint{gorm.ErrCheckConstraintViolated, pgCheckViolation, []string{"check constraint"}}
)

func (c constraint) violatedBy(err error) bool {
	if err == nil {
		return false
	}
	if c.translated != nil && errors.Is(err, c.translated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == c.sqlState
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range c.phrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}

	return strings.Contains(msg, c.sqlState)
}

func isUniqueConstraintViolation(err error) bool     { return uniqueConstraint.violatedBy(err) }
func isForeignKeyConstraintViolation(err error) bool { return foreignKeyConstraint.violatedBy(err) }
func isNotNullConstraintViolation(err error) bool    { return notNullConstraint.violatedBy(err) }
func isCheckConstraintViolation(err error) bool      { return checkConstraint.violatedBy(err) }
