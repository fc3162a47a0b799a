package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows", sql.ErrNoRows, common.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("get: %w", sql.ErrNoRows), common.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "master_mobile_no_key"}, common.ErrConflict},
		{"malformed uuid", &pgconn.PgError{Code: "22P02"}, common.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestWrapError_UnknownErrorUntouched(t *testing.T) {
	in := errors.New("disk on fire")
	assert.Equal(t, in, WrapError(in))
}
