package calllog

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/storage/mongox"
	"github.com/dmitrijs2005/callkeeper/internal/strx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "callLogEntries"

type callLogDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Date        time.Time          `bson:"Date"`
	MobileNo    *string            `bson:"MobileNo"`
	Project     *string            `bson:"Project"`
	Town        *string            `bson:"Town"`
	Requester   *string            `bson:"Requester"`
	RDCode      *string            `bson:"RDCode"`
	RDName      *string            `bson:"RDName"`
	State       *string            `bson:"State"`
	Designation *string            `bson:"Designation"`
	Name        *string            `bson:"Name"`
	Module      *string            `bson:"Module"`
	Issue       *string            `bson:"Issue"`
	Solution    *string            `bson:"Solution"`
	SolvedOn    *string            `bson:"SolvedOn"`
	CallOn      *string            `bson:"CallOn"`
	Type        *string            `bson:"Type"`
	CreatedBy   *string            `bson:"CreatedBy"`
	CreatedAt   time.Time          `bson:"CreatedDate"`
}

func fromDoc(d *callLogDoc) *models.CallLogEntry {
	return &models.CallLogEntry{
		ID:          d.ID.Hex(),
		Date:        d.Date,
		MobileNo:    strx.FromPtr(d.MobileNo),
		Project:     strx.FromPtr(d.Project),
		Town:        strx.FromPtr(d.Town),
		Requester:   strx.FromPtr(d.Requester),
		RDCode:      strx.FromPtr(d.RDCode),
		RDName:      strx.FromPtr(d.RDName),
		State:       strx.FromPtr(d.State),
		Designation: strx.FromPtr(d.Designation),
		Name:        strx.FromPtr(d.Name),
		Module:      strx.FromPtr(d.Module),
		Issue:       strx.FromPtr(d.Issue),
		Solution:    strx.FromPtr(d.Solution),
		SolvedOn:    strx.FromPtr(d.SolvedOn),
		CallOn:      strx.FromPtr(d.CallOn),
		Type:        strx.FromPtr(d.Type),
		CreatedBy:   strx.FromPtr(d.CreatedBy),
		CreatedAt:   d.CreatedAt,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(CollectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, entry *models.CallLogEntry) (string, error) {
	entry.Normalize()

	now := time.Now().UTC()
	date := entry.Date
	if date.IsZero() {
		date = now
	}

	doc := callLogDoc{
		Date:        date,
		MobileNo:    strx.CleanPtr(entry.MobileNo),
		Project:     strx.CleanPtr(entry.Project),
		Town:        strx.CleanPtr(entry.Town),
		Requester:   strx.CleanPtr(entry.Requester),
		RDCode:      strx.CleanPtr(entry.RDCode),
		RDName:      strx.CleanPtr(entry.RDName),
		State:       strx.CleanPtr(entry.State),
		Designation: strx.CleanPtr(entry.Designation),
		Name:        strx.CleanPtr(entry.Name),
		Module:      strx.CleanPtr(entry.Module),
		Issue:       strx.CleanPtr(entry.Issue),
		Solution:    strx.CleanPtr(entry.Solution),
		SolvedOn:    strx.CleanPtr(entry.SolvedOn),
		CallOn:      strx.CleanPtr(entry.CallOn),
		Type:        strx.CleanPtr(entry.Type),
		CreatedBy:   strx.CleanPtr(entry.CreatedBy),
		CreatedAt:   now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", mongox.WrapError(err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoRepository) List(ctx context.Context, dr models.DateRange) ([]models.CallLogEntry, error) {
	filter := bson.M{}
	start, end := dr.Bounds()
	if start != nil || end != nil {
		dateFilter := bson.M{}
		if start != nil {
			dateFilter["$gte"] = *start
		}
		if end != nil {
			dateFilter["$lte"] = *end
		}
		filter["Date"] = dateFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "Date", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	defer cur.Close(ctx)

	var out []models.CallLogEntry
	for cur.Next(ctx) {
		var d callLogDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode call log entry: %w", err)
		}
		out = append(out, *fromDoc(&d))
	}
	if err := cur.Err(); err != nil {
		return nil, mongox.WrapError(err)
	}
	return out, nil
}
