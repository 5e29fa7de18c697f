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

const apparelCollectionName = "apparel"

// mongoApparelRepository implements repository.ApparelRepository using
// MongoDB.
type mongoApparelRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoApparelRepository creates a new instance of
// mongoApparelRepository.
func NewMongoApparelRepository(db *mongo.Database) repository.ApparelRepository {
	return &mongoApparelRepository{
		db:         db,
		collection: db.Collection(apparelCollectionName),
	}
}

func (r *mongoApparelRepository) Create(ctx context.Context, apparel *domain.Apparel) (int64, error) {
	id, err := nextID(ctx, r.db, apparelCollectionName)
	if err != nil {
		return 0, err
	}
	apparel.ID = id

	if _, err := r.collection.InsertOne(ctx, apparel); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *mongoApparelRepository) GetByID(ctx context.Context, id int64) (*domain.Apparel, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoApparelRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Apparel, error) {
	return r.findOne(ctx, bson.M{"qrCode": qrCode})
}

func (r *mongoApparelRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Apparel, error) {
	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *mongoApparelRepository) UpdateQRCode(ctx context.Context, apparelID int64, qrCode string) (*domain.Apparel, error) {
	var apparel domain.Apparel
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": apparelID},
		bson.M{"$set": bson.M{"qrCode": qrCode}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&apparel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &apparel, nil
}

func (r *mongoApparelRepository) RecordUsage(ctx context.Context, apparelID int64, duration, calories int, now time.Time) (*domain.Apparel, error) {
	apparel, err := r.GetByID(ctx, apparelID)
	if err != nil {
		return nil, err
	}

	updated := apparel.WithUsage(duration, calories, now)
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": apparelID}, &updated)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return &updated, nil
}

func (r *mongoApparelRepository) MostUsed(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error) {
	return r.ranked(ctx, userID, "usageCount", limit)
}

func (r *mongoApparelRepository) BestPerforming(ctx context.Context, userID int64, limit int) ([]domain.Apparel, error) {
	return r.ranked(ctx, userID, "performanceRating", limit)
}

func (r *mongoApparelRepository) ranked(ctx context.Context, userID int64, field string, limit int) ([]domain.Apparel, error) {
	opts := options.Find().SetSort(bson.D{{Key: field, Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *mongoApparelRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Apparel, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	apparel := []domain.Apparel{}
	if err := cursor.All(ctx, &apparel); err != nil {
		return nil, err
	}
	return apparel, nil
}

func (r *mongoApparelRepository) findOne(ctx context.Context, filter bson.M) (*domain.Apparel, error) {
	var apparel domain.Apparel
	if err := r.collection.FindOne(ctx, filter).Decode(&apparel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &apparel, nil
}
