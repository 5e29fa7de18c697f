package mongo

import (
	"context"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository using
// MongoDB. Workouts are immutable, so the repository only inserts and
// lists.
type mongoWorkoutRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new instance of
// mongoWorkoutRepository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		db:         db,
		collection: db.Collection(workoutCollectionName),
	}
}

func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (int64, error) {
	id, err := nextID(ctx, r.db, workoutCollectionName)
	if err != nil {
		return 0, err
	}
	workout.ID = id

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *mongoWorkoutRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Workout, error) {
	return r.find(ctx, bson.M{"userId": userID}, limit)
}

func (r *mongoWorkoutRepository) GetByApparelID(ctx context.Context, apparelID int64, limit int) ([]domain.Workout, error) {
	return r.find(ctx, bson.M{"apparelId": apparelID}, limit)
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, limit int) ([]domain.Workout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}
