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

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository using MongoDB.
type mongoUserRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		db:         db,
		collection: db.Collection(userCollectionName),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	id, err := nextID(ctx, r.db, userCollectionName)
	if err != nil {
		return 0, err
	}
	user.ID = id

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"qrCode": qrCode})
}

func (r *mongoUserRepository) UpdateQRCode(ctx context.Context, userID int64, qrCode string) (*domain.User, error) {
	return r.updateOne(ctx, userID, bson.M{"$set": bson.M{"qrCode": qrCode}})
}

func (r *mongoUserRepository) AddPoints(ctx context.Context, userID int64, points int) (*domain.User, error) {
	// Read-modify-write keeps the level formula in one place (the domain).
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := user.AddPoints(points)
	return r.updateOne(ctx, userID, bson.M{"$set": bson.M{
		"points": updated.Points,
		"level":  updated.Level,
	}})
}

func (r *mongoUserRepository) UpdatePrivacy(ctx context.Context, userID int64, settings domain.PrivacySettings) (*domain.User, error) {
	return r.updateOne(ctx, userID, bson.M{"$set": bson.M{"privacySettings": settings}})
}

func (r *mongoUserRepository) UpdateProfilePicture(ctx context.Context, userID int64, objectKey string) (*domain.User, error) {
	return r.updateOne(ctx, userID, bson.M{"$set": bson.M{"profilePicture": objectKey}})
}

func (r *mongoUserRepository) Leaderboard(ctx context.Context, limit int) ([]domain.User, error) {
	filter := bson.M{"privacySettings.showInLeaderboard": true}
	// Secondary _id sort keeps insertion order for equal point totals.
	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) updateOne(ctx context.Context, userID int64, update bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
