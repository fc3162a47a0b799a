package users

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
)

const CollectionName = "users"

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"CreatedDate"`
	UpdatedAt    time.Time          `bson:"UpdatedDate"`
}

func fromDoc(d *userDoc) *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(CollectionName)}
}

func (r *MongoRepository) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	defer cur.Close(ctx)

	var out []models.User
	for cur.Next(ctx) {
		var d userDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, *fromDoc(&d))
	}
	if err := cur.Err(); err != nil {
		return nil, mongox.WrapError(err)
	}
	return out, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	var d userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mongox.WrapError(err)
	}
	return fromDoc(&d), nil
}

func (r *MongoRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var d userDoc
	err := r.col.FindOne(ctx, bson.M{"username": strx.Clean(username)}).Decode(&d)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return fromDoc(&d), nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (string, error) {
	username := strx.Clean(user.Username)
	if username == "" {
		return "", fmt.Errorf("%w: username is required", common.ErrValidation)
	}

	now := time.Now().UTC()
	res, err := r.col.InsertOne(ctx, userDoc{
		Username:     username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", mongox.WrapError(err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, user *models.User) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, common.ErrNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password":    user.PasswordHash,
		"UpdatedDate": time.Now().UTC(),
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
