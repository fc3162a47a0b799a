package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/dbx"
	"github.com/dmitrijs2005/callkeeper/internal/models"
)

// The postgres backend keeps each singleton as one row under a fixed text
// primary key: email_config, misc_data (vocabularies as a JSONB document)
// and app_config (connection profile and activation record as two rows).
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ---- Email configuration ----

func (r *PostgresRepository) EmailConfigGet(ctx context.Context) (*models.EmailConfig, error) {
	query := `SELECT smtp_server, smtp_port, smtp_user, smtp_password, updated_at
	          FROM email_config WHERE id = $1`

	var cfg models.EmailConfig
	var server, user, password sql.NullString
	var port sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, EmailConfigKey).
		Scan(&server, &port, &user, &password, &cfg.UpdatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}

	cfg.SMTPServer = server.String
	cfg.SMTPPort = int(port.Int64)
	cfg.SMTPUser = user.String
	cfg.SMTPPassword = password.String
	return &cfg, nil
}

func (r *PostgresRepository) EmailConfigSave(ctx context.Context, cfg *models.EmailConfig) error {
	query :=
		`INSERT INTO email_config (id, smtp_server, smtp_port, smtp_user, smtp_password, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (id) DO UPDATE
		 SET smtp_server = EXCLUDED.smtp_server, smtp_port = EXCLUDED.smtp_port,
		     smtp_user = EXCLUDED.smtp_user, smtp_password = EXCLUDED.smtp_password,
		     updated_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query, EmailConfigKey,
		cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return dbx.WrapError(err)
}

func (r *PostgresRepository) EmailConfigDelete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM email_config WHERE id = $1`, EmailConfigKey)
	return dbx.WrapError(err)
}

// ---- Dropdown vocabularies ----

func (r *PostgresRepository) MetadataGet(ctx context.Context) (*models.Metadata, error) {
	query := `SELECT data, updated_at FROM misc_data WHERE id = $1`

	var raw []byte
	var m models.Metadata
	err := r.db.QueryRowContext(ctx, query, MetadataKey).Scan(&raw, &m.UpdatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode metadata document: %w", err)
	}
	return &m, nil
}

func (r *PostgresRepository) MetadataSave(ctx context.Context, m *models.Metadata) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode metadata document: %w", err)
	}

	query :=
		`INSERT INTO misc_data (id, data, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
		 `

	_, err = r.db.ExecContext(ctx, query, MetadataKey, raw)
	return dbx.WrapError(err)
}

func (r *PostgresRepository) MetadataUpdateField(ctx context.Context, field string, values []string) error {
	if !ValidMetadataField(field) {
		return fmt.Errorf("%w: unknown metadata field %q", common.ErrValidation, field)
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode metadata field: %w", err)
	}

	// jsonb_set replaces just the one vocabulary in a single statement, so
	// the update is atomic. The migration creates misc_data without seeding
	// a row; the insert arm covers that first write.
	query :=
		`INSERT INTO misc_data (id, data, updated_at)
		 VALUES ($1, jsonb_build_object($2::text, $3::jsonb), now())
		 ON CONFLICT (id) DO UPDATE
		 SET data = jsonb_set(misc_data.data, ARRAY[$2::text], $3::jsonb, true), updated_at = now()
		 `

	_, err = r.db.ExecContext(ctx, query, MetadataKey, field, raw)
	return dbx.WrapError(err)
}

// ---- Activation ----

func (r *PostgresRepository) ActivationGet(ctx context.Context) (*models.ActivationRecord, error) {
	query := `SELECT holder_name, holder_email, holder_mobile, activation_key, hardware_id, activated_at
	          FROM app_config WHERE id = $1 AND activation_key IS NOT NULL`

	var rec models.ActivationRecord
	var name, email, mobile, key, hwid sql.NullString
	var activatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, ActivationKey).
		Scan(&name, &email, &mobile, &key, &hwid, &activatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}

	rec.Name = name.String
	rec.Email = email.String
	rec.Mobile = mobile.String
	rec.Key = key.String
	rec.HardwareID = hwid.String
	rec.ActivatedAt = activatedAt.Time
	return &rec, nil
}

func (r *PostgresRepository) ActivationSave(ctx context.Context, rec *models.ActivationRecord) error {
	query :=
		`INSERT INTO app_config (id, holder_name, holder_email, holder_mobile, activation_key, hardware_id, activated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (id) DO UPDATE
		 SET holder_name = EXCLUDED.holder_name, holder_email = EXCLUDED.holder_email,
		     holder_mobile = EXCLUDED.holder_mobile, activation_key = EXCLUDED.activation_key,
		     hardware_id = EXCLUDED.hardware_id, activated_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query, ActivationKey,
		rec.Name, rec.Email, rec.Mobile, rec.Key, rec.HardwareID)
	return dbx.WrapError(err)
}

// ---- Connection profile ----

func (r *PostgresRepository) AppSettingsGet(ctx context.Context) (*models.AppSettings, error) {
	query := `SELECT backend, uri, database_name, backup_path, authenticated_user, created_at
	          FROM app_config WHERE id = $1`

	var s models.AppSettings
	var backend, uri, database, backupPath, authUser sql.NullString
	err := r.db.QueryRowContext(ctx, query, AppSettingsKey).
		Scan(&backend, &uri, &database, &backupPath, &authUser, &s.CreatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}

	s.Backend = backend.String
	s.URI = uri.String
	s.Database = database.String
	s.BackupPath = backupPath.String
	s.AuthenticatedUser = authUser.String
	return &s, nil
}

func (r *PostgresRepository) AppSettingsSave(ctx context.Context, s *models.AppSettings) error {
	query :=
		`INSERT INTO app_config (id, backend, uri, database_name, backup_path, authenticated_user, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (id) DO UPDATE
		 SET backend = EXCLUDED.backend, uri = EXCLUDED.uri,
		     database_name = EXCLUDED.database_name, backup_path = EXCLUDED.backup_path,
		     authenticated_user = EXCLUDED.authenticated_user, created_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query, AppSettingsKey,
		s.Backend, s.URI, s.Database, s.BackupPath, s.AuthenticatedUser)
	return dbx.WrapError(err)
}
