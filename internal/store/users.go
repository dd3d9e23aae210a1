// Package store provides the MongoDB-backed collections behind the workflow
// engine and the topic pages.
package store

import (
	"context"
	"errors"
	"fmt"

	"goboard/internal/auth"
	"goboard/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Users implements auth.UserStore over a Mongo collection.
type Users struct {
	col *mongo.Collection
}

func NewUsers(col *mongo.Collection) *Users {
	return &Users{col: col}
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *Users) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"reset_token": token})
}

func (s *Users) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrNotFound
		}
		return nil, fmt.Errorf("retrieving user: %w", err)
	}
	return &user, nil
}

// Insert stores a new user and returns its id. The unique index on email
// makes this the authoritative duplicate check.
func (s *Users) Insert(ctx context.Context, user *models.User) (string, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", auth.ErrDuplicateEmail
		}
		return "", fmt.Errorf("inserting user: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = oid
	return oid.Hex(), nil
}

// UpdateFields applies a $set for the given fields and a $unset for the given
// field names on one user document.
func (s *Users) UpdateFields(ctx context.Context, id string, set map[string]any, unset []string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return auth.ErrNotFound
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = bson.M(set)
	}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, f := range unset {
			fields[f] = ""
		}
		update["$unset"] = fields
	}
	if len(update) == 0 {
		return nil
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrNotFound
	}
	return nil
}
