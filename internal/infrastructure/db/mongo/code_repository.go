package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitforge/playground-api/internal/core/domain"
)

const codesCollection = "codes"

// MongoCodeRepository implements ports.CodeRepository using MongoDB.
type MongoCodeRepository struct {
	coll *mongo.Collection
}

func NewCodeRepository(db *mongo.Database) *MongoCodeRepository {
	return &MongoCodeRepository{coll: db.Collection(codesCollection)}
}

type mongoCode struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	Title     string             `bson:"title"`
	Code      string             `bson:"code"`
	Language  string             `bson:"language"`
	CreatedAt primitive.DateTime `bson:"created_at"`
}

// FindByOwner returns the owner's snippets sorted by creation time descending.
func (r *MongoCodeRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.SavedCode, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find codes: %w", err)
	}
	defer cursor.Close(ctx)

	codes := []domain.SavedCode{}
	for cursor.Next(ctx) {
		var mc mongoCode
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode code: %w", err)
		}
		codes = append(codes, domain.SavedCode{
			ID:        mc.ID.Hex(),
			OwnerID:   mc.OwnerID.Hex(),
			Title:     mc.Title,
			Code:      mc.Code,
			Language:  mc.Language,
			CreatedAt: mc.CreatedAt.Time().UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate codes: %w", err)
	}

	return codes, nil
}
