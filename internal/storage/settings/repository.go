// Package settings persists the singleton configuration documents: SMTP
// parameters, dropdown vocabularies, the activation record and the
// connection profile. Each lives under a fixed, well-known key so every
// save is an upsert against that key, never an insert of a new record.
package settings

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/callkeeper/internal/models"
)

// Fixed singleton keys, shared by both backends.
const (
	EmailConfigKey = "email_settings"
	MetadataKey    = "dropdown_values"
	AppSettingsKey = "active"
	ActivationKey  = "activation"
)

type Repository interface {
	// EmailConfigGet returns the SMTP configuration, common.ErrNotFound
	// when it was never saved.
	EmailConfigGet(ctx context.Context) (*models.EmailConfig, error)
	EmailConfigSave(ctx context.Context, cfg *models.EmailConfig) error
	EmailConfigDelete(ctx context.Context) error

	// MetadataGet returns the dropdown vocabularies, common.ErrNotFound
	// when never saved.
	MetadataGet(ctx context.Context) (*models.Metadata, error)
	MetadataSave(ctx context.Context, m *models.Metadata) error
	// MetadataUpdateField atomically replaces a single vocabulary. The field
	// name must be one of models.MetadataFields.
	MetadataUpdateField(ctx context.Context, field string, values []string) error

	ActivationGet(ctx context.Context) (*models.ActivationRecord, error)
	ActivationSave(ctx context.Context, rec *models.ActivationRecord) error

	AppSettingsGet(ctx context.Context) (*models.AppSettings, error)
	AppSettingsSave(ctx context.Context, s *models.AppSettings) error
}

// ValidMetadataField reports whether field names a known vocabulary.
func ValidMetadataField(field string) bool {
	return slices.Contains(models.MetadataFields, field)
}
