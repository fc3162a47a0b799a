package calllog

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var callLogCols = []string{
	"id", "date", "mobile_no", "project", "town", "requester", "rd_code", "rd_name",
	"state", "designation", "name", "module", "issue", "solution", "solved_on",
	"call_on", "type", "created_by", "created_at",
}

func callLogRow(id string, date time.Time, issue string) []driver.Value {
	return []driver.Value{id, date, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, issue,
		nil, nil, nil, nil, nil, date}
}

func TestCreate_UsesCurrentTimeWhenDateMissing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`(?s)INSERT INTO call_log_entries.*RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("new-id"))

	before := time.Now().UTC()
	id, err := repo.Create(context.Background(), &models.CallLogEntry{Issue: "printer jam"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.False(t, before.After(time.Now().UTC()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NoRange_NoDateFilter(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	d1 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(callLogCols).
		AddRow(callLogRow("a", d1, "first")...).
		AddRow(callLogRow("b", d2, "second")...)

	mock.ExpectQuery(`(?s)FROM call_log_entries\s+WHERE 1=1 ORDER BY date DESC`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), models.DateRange{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Issue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_FullRange_EndExtendedToEndOfDay(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	endOfDay := time.Date(2025, 3, 5, 23, 59, 59, 999999999, time.UTC)

	mock.ExpectQuery(`(?s)WHERE 1=1 AND date >= \$1 AND date <= \$2 ORDER BY date DESC`).
		WithArgs(start, endOfDay).
		WillReturnRows(sqlmock.NewRows(callLogCols))

	_, err = repo.List(context.Background(), models.DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_StartOnly_SinglePlaceholder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)WHERE 1=1 AND date >= \$1 ORDER BY date DESC`).
		WithArgs(start).
		WillReturnRows(sqlmock.NewRows(callLogCols))

	_, err = repo.List(context.Background(), models.DateRange{Start: &start})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
