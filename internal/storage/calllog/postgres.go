package calllog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/dbx"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/strx"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.CallLogEntry) (string, error) {
	entry.Normalize()

	date := entry.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	query :=
		`INSERT INTO call_log_entries
		 (id, date, mobile_no, project, town, requester, rd_code, rd_name, state,
		  designation, name, module, issue, solution, solved_on, call_on, type, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), date,
		strx.CleanPtr(entry.MobileNo), strx.CleanPtr(entry.Project), strx.CleanPtr(entry.Town),
		strx.CleanPtr(entry.Requester), strx.CleanPtr(entry.RDCode), strx.CleanPtr(entry.RDName),
		strx.CleanPtr(entry.State), strx.CleanPtr(entry.Designation), strx.CleanPtr(entry.Name),
		strx.CleanPtr(entry.Module), strx.CleanPtr(entry.Issue), strx.CleanPtr(entry.Solution),
		strx.CleanPtr(entry.SolvedOn), strx.CleanPtr(entry.CallOn), strx.CleanPtr(entry.Type),
		strx.CleanPtr(entry.CreatedBy)).Scan(&id)
	if err != nil {
		return "", dbx.WrapError(err)
	}
	return id, nil
}

func (r *PostgresRepository) List(ctx context.Context, dr models.DateRange) ([]models.CallLogEntry, error) {
	query :=
		`SELECT id, date, mobile_no, project, town, requester, rd_code, rd_name, state,
		        designation, name, module, issue, solution, solved_on, call_on, type,
		        created_by, created_at
		 FROM call_log_entries
		 WHERE 1=1`

	var args []any
	start, end := dr.Bounds()
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer rows.Close()

	var out []models.CallLogEntry
	for rows.Next() {
		var e models.CallLogEntry
		var mobileNo, project, town, requester, rdCode, rdName, state,
			designation, name, module, issue, solution, solvedOn, callOn, typ,
			createdBy sql.NullString

		err := rows.Scan(&e.ID, &e.Date, &mobileNo, &project, &town, &requester,
			&rdCode, &rdName, &state, &designation, &name, &module, &issue,
			&solution, &solvedOn, &callOn, &typ, &createdBy, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan call log entry: %w", err)
		}

		e.MobileNo = mobileNo.String
		e.Project = project.String
		e.Town = town.String
		e.Requester = requester.String
		e.RDCode = rdCode.String
		e.RDName = rdName.String
		e.State = state.String
		e.Designation = designation.String
		e.Name = name.String
		e.Module = module.String
		e.Issue = issue.String
		e.Solution = solution.String
		e.SolvedOn = solvedOn.String
		e.CallOn = callOn.String
		e.Type = typ.String
		e.CreatedBy = createdBy.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(err)
	}
	return out, nil
}
