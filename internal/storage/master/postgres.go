package master

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/common"
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

const masterColumns = `id, mobile_no, project, town_type, requester, rd_code, rd_name,
       town, state, designation, name, gst_no, email_id,
       created_by, updated_by, created_at, updated_at`

func scanMaster(row interface{ Scan(...any) error }) (*models.MasterRecord, error) {
	var rec models.MasterRecord
	var project, townType, requester, rdCode, rdName, town, state,
		designation, name, gstNo, emailID, createdBy, updatedBy sql.NullString

	err := row.Scan(&rec.ID, &rec.MobileNo, &project, &townType, &requester,
		&rdCode, &rdName, &town, &state, &designation, &name, &gstNo, &emailID,
		&createdBy, &updatedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rec.Project = project.String
	rec.TownType = townType.String
	rec.Requester = requester.String
	rec.RDCode = rdCode.String
	rec.RDName = rdName.String
	rec.Town = town.String
	rec.State = state.String
	rec.Designation = designation.String
	rec.Name = name.String
	rec.GSTNo = gstNo.String
	rec.EmailID = emailID.String
	rec.CreatedBy = createdBy.String
	rec.UpdatedBy = updatedBy.String
	return &rec, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.MasterRecord, error) {
	query := `SELECT ` + masterColumns + ` FROM master ORDER BY mobile_no`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer rows.Close()

	var out []models.MasterRecord
	for rows.Next() {
		rec, err := scanMaster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan master record: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.MasterRecord, error) {
	query := `SELECT ` + masterColumns + ` FROM master WHERE id = $1`

	rec, err := scanMaster(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	return rec, nil
}

func (r *PostgresRepository) GetByMobile(ctx context.Context, mobileNo string) (*models.MasterRecord, error) {
	query := `SELECT ` + masterColumns + ` FROM master WHERE mobile_no = $1`

	rec, err := scanMaster(r.db.QueryRowContext(ctx, query, strx.Clean(mobileNo)))
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	return rec, nil
}

func insertMaster(ctx context.Context, db dbx.DBTX, rec *models.MasterRecord) (string, error) {
	query :=
		`INSERT INTO master (id, mobile_no, project, town_type, requester, rd_code, rd_name,
                     town, state, designation, name, gst_no, email_id, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id
		 `

	var id string
	err := db.QueryRowContext(ctx, query,
		uuid.New().String(), rec.MobileNo,
		strx.CleanPtr(rec.Project), strx.CleanPtr(rec.TownType), strx.CleanPtr(rec.Requester),
		strx.CleanPtr(rec.RDCode), strx.CleanPtr(rec.RDName), strx.CleanPtr(rec.Town),
		strx.CleanPtr(rec.State), strx.CleanPtr(rec.Designation), strx.CleanPtr(rec.Name),
		strx.CleanPtr(rec.GSTNo), strx.CleanPtr(rec.EmailID),
		strx.CleanPtr(rec.CreatedBy), strx.CleanPtr(rec.UpdatedBy)).Scan(&id)
	if err != nil {
		return "", dbx.WrapError(err)
	}
	return id, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.MasterRecord) (string, error) {
	rec.Normalize()
	if rec.MobileNo == "" {
		return "", fmt.Errorf("%w: mobile number is required", common.ErrValidation)
	}
	return insertMaster(ctx, r.db, rec)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, rec *models.MasterRecord) (bool, error) {
	rec.Normalize()

	query :=
		`UPDATE master
		 SET mobile_no = $1, project = $2, town_type = $3, requester = $4, rd_code = $5,
		     rd_name = $6, town = $7, state = $8, designation = $9, name = $10,
		     gst_no = $11, email_id = $12, updated_by = $13, updated_at = now()
		 WHERE id = $14
		 `

	res, err := r.db.ExecContext(ctx, query,
		rec.MobileNo,
		strx.CleanPtr(rec.Project), strx.CleanPtr(rec.TownType), strx.CleanPtr(rec.Requester),
		strx.CleanPtr(rec.RDCode), strx.CleanPtr(rec.RDName), strx.CleanPtr(rec.Town),
		strx.CleanPtr(rec.State), strx.CleanPtr(rec.Designation), strx.CleanPtr(rec.Name),
		strx.CleanPtr(rec.GSTNo), strx.CleanPtr(rec.EmailID), strx.CleanPtr(rec.UpdatedBy), id)
	if err != nil {
		return false, dbx.WrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, common.ErrNotFound
	}
	return true, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM master WHERE id = $1`, id)
	if err != nil {
		return dbx.WrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ReplaceAll clears and bulk-inserts inside one transaction, so on this
// backend the operation is atomic: either the new set is fully in place or
// the old one is untouched.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, recs []models.MasterRecord) (int, error) {
	inserted := 0

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM master`); err != nil {
			return dbx.WrapError(err)
		}
		for i := range recs {
			recs[i].Normalize()
			if _, err := insertMaster(ctx, tx, &recs[i]); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
