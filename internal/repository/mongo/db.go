package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes a connection to MongoDB and verifies it with a ping.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// DisconnectDB closes the connection.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. Call once
// during application startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		userCollectionName: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "qrCode", Value: 1}}, Options: options.Index().SetSparse(true)},
			{Keys: bson.D{{Key: "points", Value: -1}}},
		},
		apparelCollectionName: {
			{Keys: bson.D{{Key: "qrCode", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		workoutCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "apparelId", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		userAchievementCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "achievementId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		userChallengeCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "challengeId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		integrationCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "appName", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, indexes := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}
