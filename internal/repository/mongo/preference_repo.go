package mongo

import (
	"context"
	"errors"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	preferenceCollectionName     = "user_preferences"
	recommendationCollectionName = "recommendations"
)

// mongoPreferenceRepository implements repository.PreferenceRepository using
// MongoDB. Preferences are keyed by user id, one document per user.
type mongoPreferenceRepository struct {
	collection *mongo.Collection
}

// NewMongoPreferenceRepository creates a new instance of
// mongoPreferenceRepository.
func NewMongoPreferenceRepository(db *mongo.Database) repository.PreferenceRepository {
	return &mongoPreferenceRepository{
		collection: db.Collection(preferenceCollectionName),
	}
}

func (r *mongoPreferenceRepository) Get(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	var prefs domain.UserPreferences
	if err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&prefs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *mongoPreferenceRepository) Save(ctx context.Context, prefs *domain.UserPreferences) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": prefs.UserID}, prefs, options.Replace().SetUpsert(true))
	return err
}

// mongoRecommendationRepository implements
// repository.RecommendationRepository using MongoDB.
type mongoRecommendationRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoRecommendationRepository creates a new instance of
// mongoRecommendationRepository.
func NewMongoRecommendationRepository(db *mongo.Database) repository.RecommendationRepository {
	return &mongoRecommendationRepository{
		db:         db,
		collection: db.Collection(recommendationCollectionName),
	}
}

func (r *mongoRecommendationRepository) Create(ctx context.Context, rec *domain.WorkoutRecommendation) (int64, error) {
	id, err := nextID(ctx, r.db, recommendationCollectionName)
	if err != nil {
		return 0, err
	}
	rec.ID = id

	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *mongoRecommendationRepository) GetByID(ctx context.Context, id int64) (*domain.WorkoutRecommendation, error) {
	var rec domain.WorkoutRecommendation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *mongoRecommendationRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.WorkoutRecommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recs := []domain.WorkoutRecommendation{}
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *mongoRecommendationRepository) MarkCompleted(ctx context.Context, id int64) (*domain.WorkoutRecommendation, error) {
	var rec domain.WorkoutRecommendation
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isCompleted": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
