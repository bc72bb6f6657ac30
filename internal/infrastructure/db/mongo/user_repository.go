package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bitforge/playground-api/internal/core/domain"
)

const usersCollection = "users"

// MongoUserRepository implements ports.UserRepository using MongoDB.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Email        string               `bson:"email"`
	PasswordHash string               `bson:"password_hash"`
	Picture      string               `bson:"picture,omitempty"`
	SavedCodes   []primitive.ObjectID `bson:"saved_codes"`
	CreatedAt    primitive.DateTime   `bson:"created_at"`
	UpdatedAt    primitive.DateTime   `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Picture:      user.Picture,
		SavedCodes:   []primitive.ObjectID{},
		CreatedAt:    primitive.NewDateTimeFromTime(user.CreatedAt),
		UpdatedAt:    primitive.NewDateTimeFromTime(user.UpdatedAt),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to get ID
	created, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	saved := make([]string, 0, len(mu.SavedCodes))
	for _, oid := range mu.SavedCodes {
		saved = append(saved, oid.Hex())
	}

	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Picture:      mu.Picture,
		SavedCodes:   saved,
		CreatedAt:    dateTimeToTime(mu.CreatedAt),
		UpdatedAt:    dateTimeToTime(mu.UpdatedAt),
	}, nil
}

func dateTimeToTime(dt primitive.DateTime) time.Time {
	if dt == 0 {
		return time.Time{}
	}
	return dt.Time().UTC()
}
