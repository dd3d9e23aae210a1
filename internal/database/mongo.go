package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes a connection to MongoDB and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	ctxPing, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing, nil); err != nil {
		return nil, err
	}
	log.Println("Connected to MongoDB")
	return client, nil
}

// UserCollection returns the users collection.
func UserCollection(client *mongo.Client, db string) *mongo.Collection {
	return client.Database(db).Collection("users")
}

// TopicCollection returns the topics collection.
func TopicCollection(client *mongo.Client, db string) *mongo.Collection {
	return client.Database(db).Collection("topics")
}

// EnsureIndexes creates the indexes the application relies on: the unique
// email index is the authority for duplicate registration (the in-workflow
// check is only a fast path), and the text index backs topic search.
func EnsureIndexes(ctx context.Context, users, topics *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = topics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "body", Value: "text"},
		},
	})
	return err
}
