package mongo

import (
	"context"
	"errors"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const integrationCollectionName = "integrated_apps"

// mongoIntegrationRepository implements repository.IntegrationRepository
// using MongoDB.
type mongoIntegrationRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoIntegrationRepository creates a new instance of
// mongoIntegrationRepository.
func NewMongoIntegrationRepository(db *mongo.Database) repository.IntegrationRepository {
	return &mongoIntegrationRepository{
		db:         db,
		collection: db.Collection(integrationCollectionName),
	}
}

func (r *mongoIntegrationRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.IntegratedApp, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	apps := []domain.IntegratedApp{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *mongoIntegrationRepository) Connect(ctx context.Context, userID int64, appName, accessToken, refreshToken string, now time.Time) (*domain.IntegratedApp, error) {
	app, err := r.find(ctx, userID, appName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if app == nil {
		id, err := nextID(ctx, r.db, integrationCollectionName)
		if err != nil {
			return nil, err
		}
		app = &domain.IntegratedApp{
			ID:      id,
			UserID:  userID,
			AppName: appName,
		}
	}
	app.Connected = true
	app.AccessToken = accessToken
	app.RefreshToken = refreshToken
	app.LastSynced = &now

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": app.ID}, app, options.Replace().SetUpsert(true)); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *mongoIntegrationRepository) Disconnect(ctx context.Context, userID int64, appName string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"userId": userID, "appName": appName},
		bson.M{
			"$set":   bson.M{"connected": false},
			"$unset": bson.M{"accessToken": "", "refreshToken": ""},
		},
	)
	return err
}

func (r *mongoIntegrationRepository) find(ctx context.Context, userID int64, appName string) (*domain.IntegratedApp, error) {
	var app domain.IntegratedApp
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "appName": appName}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}
