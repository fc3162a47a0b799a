package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE 23505 unique_violation, 22P02 invalid_text_representation.
const (
	uniqueViolationCode = "23505"
	invalidTextRepCode  = "22P02"
)

// WrapError translates database/sql and pgx errors into the shared sentinel
// taxonomy so callers can match with errors.Is without importing the driver.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s", common.ErrConflict, pgErr.ConstraintName)
		case invalidTextRepCode:
			// A malformed id can never match a generated uuid. Treat it as
			// absent so both backends answer the same way.
			return common.ErrNotFound
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %s", common.ErrConnectivity, err)
	}

	return err
}
