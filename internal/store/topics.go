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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Topics provides the forum content collection.
type Topics struct {
	col *mongo.Collection
}

func NewTopics(col *mongo.Collection) *Topics {
	return &Topics{col: col}
}

func (s *Topics) Insert(ctx context.Context, topic *models.Topic) error {
	res, err := s.col.InsertOne(ctx, topic)
	if err != nil {
		return fmt.Errorf("inserting topic: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		topic.ID = oid
	}
	return nil
}

func (s *Topics) Get(ctx context.Context, id string) (*models.Topic, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrNotFound
	}
	var topic models.Topic
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&topic)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrNotFound
		}
		return nil, fmt.Errorf("retrieving topic: %w", err)
	}
	return &topic, nil
}

// List returns topics newest first, optionally filtered by category.
func (s *Topics) List(ctx context.Context, category string) ([]models.Topic, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer cur.Close(ctx)
	var topics []models.Topic
	if err := cur.All(ctx, &topics); err != nil {
		return nil, fmt.Errorf("decoding topics: %w", err)
	}
	return topics, nil
}

// Search delegates full-text search to the Mongo text index on title/body.
func (s *Topics) Search(ctx context.Context, query string) ([]models.Topic, error) {
	cur, err := s.col.Find(ctx, bson.M{"$text": bson.M{"$search": query}})
	if err != nil {
		return nil, fmt.Errorf("searching topics: %w", err)
	}
	defer cur.Close(ctx)
	var topics []models.Topic
	if err := cur.All(ctx, &topics); err != nil {
		return nil, fmt.Errorf("decoding topics: %w", err)
	}
	return topics, nil
}

// Categories returns the distinct category names in use.
func (s *Topics) Categories(ctx context.Context) ([]string, error) {
	values, err := s.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			categories = append(categories, name)
		}
	}
	return categories, nil
}
