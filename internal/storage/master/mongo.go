package master

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/storage/mongox"
	"github.com/dmitrijs2005/callkeeper/internal/strx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the mongo collection backing this repository.
const CollectionName = "master"

// masterDoc is the BSON shape of a directory entry. Optional fields are
// pointers so empty values persist as null.
type masterDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	MobileNo    string             `bson:"MobileNo"`
	Project     *string            `bson:"Project"`
	TownType    *string            `bson:"TownType"`
	Requester   *string            `bson:"Requester"`
	RDCode      *string            `bson:"RDCode"`
	RDName      *string            `bson:"RDName"`
	Town        *string            `bson:"Town"`
	State       *string            `bson:"State"`
	Designation *string            `bson:"Designation"`
	Name        *string            `bson:"Name"`
	GSTNo       *string            `bson:"GSTNo"`
	EmailID     *string            `bson:"EmailID"`
	CreatedBy   *string            `bson:"CreatedBy"`
	UpdatedBy   *string            `bson:"UpdatedBy"`
	CreatedAt   time.Time          `bson:"CreatedDate"`
	UpdatedAt   time.Time          `bson:"UpdatedDate"`
}

func toDoc(rec *models.MasterRecord, now time.Time) masterDoc {
	created := rec.CreatedAt
	if created.IsZero() {
		created = now
	}
	return masterDoc{
		MobileNo:    rec.MobileNo,
		Project:     strx.CleanPtr(rec.Project),
		TownType:    strx.CleanPtr(rec.TownType),
		Requester:   strx.CleanPtr(rec.Requester),
		RDCode:      strx.CleanPtr(rec.RDCode),
		RDName:      strx.CleanPtr(rec.RDName),
		Town:        strx.CleanPtr(rec.Town),
		State:       strx.CleanPtr(rec.State),
		Designation: strx.CleanPtr(rec.Designation),
		Name:        strx.CleanPtr(rec.Name),
		GSTNo:       strx.CleanPtr(rec.GSTNo),
		EmailID:     strx.CleanPtr(rec.EmailID),
		CreatedBy:   strx.CleanPtr(rec.CreatedBy),
		UpdatedBy:   strx.CleanPtr(rec.UpdatedBy),
		CreatedAt:   created,
		UpdatedAt:   now,
	}
}

func fromDoc(d *masterDoc) *models.MasterRecord {
	return &models.MasterRecord{
		ID:          d.ID.Hex(),
		MobileNo:    d.MobileNo,
		Project:     strx.FromPtr(d.Project),
		TownType:    strx.FromPtr(d.TownType),
		Requester:   strx.FromPtr(d.Requester),
		RDCode:      strx.FromPtr(d.RDCode),
		RDName:      strx.FromPtr(d.RDName),
		Town:        strx.FromPtr(d.Town),
		State:       strx.FromPtr(d.State),
		Designation: strx.FromPtr(d.Designation),
		Name:        strx.FromPtr(d.Name),
		GSTNo:       strx.FromPtr(d.GSTNo),
		EmailID:     strx.FromPtr(d.EmailID),
		CreatedBy:   strx.FromPtr(d.CreatedBy),
		UpdatedBy:   strx.FromPtr(d.UpdatedBy),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(CollectionName)}
}

func (r *MongoRepository) List(ctx context.Context) ([]models.MasterRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "MobileNo", Value: 1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	defer cur.Close(ctx)

	var out []models.MasterRecord
	for cur.Next(ctx) {
		var d masterDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode master record: %w", err)
		}
		out = append(out, *fromDoc(&d))
	}
	if err := cur.Err(); err != nil {
		return nil, mongox.WrapError(err)
	}
	return out, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.MasterRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	var d masterDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mongox.WrapError(err)
	}
	return fromDoc(&d), nil
}

func (r *MongoRepository) GetByMobile(ctx context.Context, mobileNo string) (*models.MasterRecord, error) {
	var d masterDoc
	err := r.col.FindOne(ctx, bson.M{"MobileNo": strx.Clean(mobileNo)}).Decode(&d)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return fromDoc(&d), nil
}

func (r *MongoRepository) Create(ctx context.Context, rec *models.MasterRecord) (string, error) {
	rec.Normalize()
	if rec.MobileNo == "" {
		return "", fmt.Errorf("%w: mobile number is required", common.ErrValidation)
	}

	res, err := r.col.InsertOne(ctx, toDoc(rec, time.Now().UTC()))
	if err != nil {
		return "", mongox.WrapError(err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, rec *models.MasterRecord) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, common.ErrNotFound
	}

	rec.Normalize()
	doc := toDoc(rec, time.Now().UTC())

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"MobileNo":    doc.MobileNo,
		"Project":     doc.Project,
		"TownType":    doc.TownType,
		"Requester":   doc.Requester,
		"RDCode":      doc.RDCode,
		"RDName":      doc.RDName,
		"Town":        doc.Town,
		"State":       doc.State,
		"Designation": doc.Designation,
		"Name":        doc.Name,
		"GSTNo":       doc.GSTNo,
		"EmailID":     doc.EmailID,
		"UpdatedBy":   doc.UpdatedBy,
		"UpdatedDate": doc.UpdatedAt,
	}})
	if err != nil {
		return false, mongox.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return false, common.ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongox.WrapError(err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ReplaceAll is clear-then-insert: the two phases are not atomic on this
// backend, so a failure after the clear leaves the store empty rather than
// partially populated.
func (r *MongoRepository) ReplaceAll(ctx context.Context, recs []models.MasterRecord) (int, error) {
	if _, err := r.col.DeleteMany(ctx, bson.D{}); err != nil {
		return 0, mongox.WrapError(err)
	}
	if len(recs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(recs))
	for i := range recs {
		recs[i].Normalize()
		docs = append(docs, toDoc(&recs[i], now))
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		return inserted, mongox.WrapError(err)
	}
	return len(res.InsertedIDs), nil
}
