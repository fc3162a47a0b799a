package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/storage/mongox"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. appConfig holds both the connection profile and the
// activation record, under different fixed ids; the backup service excludes
// it (and users) from dumps.
const (
	EmailConfigCollection = "emailConfig"
	MetadataCollection    = "miscData"
	AppConfigCollection   = "appConfig"
)

type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

func upsertByKey(ctx context.Context, col *mongo.Collection, key string, set bson.M) error {
	_, err := col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	return mongox.WrapError(err)
}

// ---- Email configuration ----

type emailConfigDoc struct {
	SMTPServer   string    `bson:"smtp_server"`
	SMTPPort     int       `bson:"smtp_port"`
	SMTPUser     string    `bson:"smtp_user"`
	SMTPPassword string    `bson:"smtp_password"`
	UpdatedAt    time.Time `bson:"UpdatedDate"`
}

func (r *MongoRepository) EmailConfigGet(ctx context.Context) (*models.EmailConfig, error) {
	var d emailConfigDoc
	err := r.db.Collection(EmailConfigCollection).
		FindOne(ctx, bson.M{"_id": EmailConfigKey}).Decode(&d)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return &models.EmailConfig{
		SMTPServer:   d.SMTPServer,
		SMTPPort:     d.SMTPPort,
		SMTPUser:     d.SMTPUser,
		SMTPPassword: d.SMTPPassword,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func (r *MongoRepository) EmailConfigSave(ctx context.Context, cfg *models.EmailConfig) error {
	return upsertByKey(ctx, r.db.Collection(EmailConfigCollection), EmailConfigKey, bson.M{
		"smtp_server":   cfg.SMTPServer,
		"smtp_port":     cfg.SMTPPort,
		"smtp_user":     cfg.SMTPUser,
		"smtp_password": cfg.SMTPPassword,
		"UpdatedDate":   time.Now().UTC(),
	})
}

func (r *MongoRepository) EmailConfigDelete(ctx context.Context) error {
	_, err := r.db.Collection(EmailConfigCollection).
		DeleteOne(ctx, bson.M{"_id": EmailConfigKey})
	return mongox.WrapError(err)
}

// ---- Dropdown vocabularies ----

type metadataDoc struct {
	Projects     []string  `bson:"projects"`
	TownTypes    []string  `bson:"town_types"`
	Requesters   []string  `bson:"requesters"`
	Designations []string  `bson:"designations"`
	Modules      []string  `bson:"modules"`
	Issues       []string  `bson:"issues"`
	Solutions    []string  `bson:"solutions"`
	SolvedOn     []string  `bson:"solved_on"`
	CallOn       []string  `bson:"call_on"`
	Types        []string  `bson:"types"`
	UpdatedAt    time.Time `bson:"UpdatedDate"`
}

func (r *MongoRepository) MetadataGet(ctx context.Context) (*models.Metadata, error) {
	var d metadataDoc
	err := r.db.Collection(MetadataCollection).
		FindOne(ctx, bson.M{"_id": MetadataKey}).Decode(&d)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return &models.Metadata{
		Projects:     d.Projects,
		TownTypes:    d.TownTypes,
		Requesters:   d.Requesters,
		Designations: d.Designations,
		Modules:      d.Modules,
		Issues:       d.Issues,
		Solutions:    d.Solutions,
		SolvedOn:     d.SolvedOn,
		CallOn:       d.CallOn,
		Types:        d.Types,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func (r *MongoRepository) MetadataSave(ctx context.Context, m *models.Metadata) error {
	return upsertByKey(ctx, r.db.Collection(MetadataCollection), MetadataKey, bson.M{
		"projects":     m.Projects,
		"town_types":   m.TownTypes,
		"requesters":   m.Requesters,
		"designations": m.Designations,
		"modules":      m.Modules,
		"issues":       m.Issues,
		"solutions":    m.Solutions,
		"solved_on":    m.SolvedOn,
		"call_on":      m.CallOn,
		"types":        m.Types,
		"UpdatedDate":  time.Now().UTC(),
	})
}

func (r *MongoRepository) MetadataUpdateField(ctx context.Context, field string, values []string) error {
	if !ValidMetadataField(field) {
		return fmt.Errorf("%w: unknown metadata field %q", common.ErrValidation, field)
	}
	return upsertByKey(ctx, r.db.Collection(MetadataCollection), MetadataKey, bson.M{
		field:         values,
		"UpdatedDate": time.Now().UTC(),
	})
}

// ---- Activation ----

type activationDoc struct {
	Name        string    `bson:"name"`
	Email       string    `bson:"email"`
	Mobile      string    `bson:"mobile"`
	Key         string    `bson:"key"`
	HardwareID  string    `bson:"hwid"`
	ActivatedAt time.Time `bson:"ActivatedDate"`
}

func (r *MongoRepository) ActivationGet(ctx context.Context) (*models.ActivationRecord, error) {
	var d activationDoc
	err := r.db.Collection(AppConfigCollection).
		FindOne(ctx, bson.M{"_id": ActivationKey}).Decode(&d)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return &models.ActivationRecord{
		Name:        d.Name,
		Email:       d.Email,
		Mobile:      d.Mobile,
		Key:         d.Key,
		HardwareID:  d.HardwareID,
		ActivatedAt: d.ActivatedAt,
	}, nil
}

func (r *MongoRepository) ActivationSave(ctx context.Context, rec *models.ActivationRecord) error {
	return upsertByKey(ctx, r.db.Collection(AppConfigCollection), ActivationKey, bson.M{
		"name":          rec.Name,
		"email":         rec.Email,
		"mobile":        rec.Mobile,
		"key":           rec.Key,
		"hwid":          rec.HardwareID,
		"ActivatedDate": time.Now().UTC(),
	})
}

// ---- Connection profile ----

type appSettingsDoc struct {
	Backend           string    `bson:"backend"`
	URI               string    `bson:"uri"`
	Database          string    `bson:"database"`
	BackupPath        string    `bson:"backup_path"`
	AuthenticatedUser string    `bson:"authenticated_user"`
	CreatedAt         time.Time `bson:"createdAt"`
}

func (r *MongoRepository) AppSettingsGet(ctx context.Context) (*models.AppSettings, error) {
	var d appSettingsDoc
	err := r.db.Collection(AppConfigCollection).
		FindOne(ctx, bson.M{"_id": AppSettingsKey}).Decode(&d)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return &models.AppSettings{
		Backend:           d.Backend,
		URI:               d.URI,
		Database:          d.Database,
		BackupPath:        d.BackupPath,
		AuthenticatedUser: d.AuthenticatedUser,
		CreatedAt:         d.CreatedAt,
	}, nil
}

func (r *MongoRepository) AppSettingsSave(ctx context.Context, s *models.AppSettings) error {
	return upsertByKey(ctx, r.db.Collection(AppConfigCollection), AppSettingsKey, bson.M{
		"backend":            s.Backend,
		"uri":                s.URI,
		"database":           s.Database,
		"backup_path":        s.BackupPath,
		"authenticated_user": s.AuthenticatedUser,
		"createdAt":          time.Now().UTC(),
	})
}
