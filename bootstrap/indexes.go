package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the handlers rely on: the feed is always
// read newest first, and email verification looks users up by token.
func EnsureIndexes(db *mongo.Database) error {
	_, err := db.Collection("posts").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("posts_createdAt_desc"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "verificationToken", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("users_verification_token"),
		},
	)
	return err
}
