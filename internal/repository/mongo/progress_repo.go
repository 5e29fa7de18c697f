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

const (
	achievementCollectionName     = "achievements"
	userAchievementCollectionName = "user_achievements"
	challengeCollectionName       = "challenges"
	userChallengeCollectionName   = "user_challenges"
)

// mongoAchievementRepository implements repository.AchievementRepository
// using MongoDB.
type mongoAchievementRepository struct {
	db           *mongo.Database
	catalog      *mongo.Collection
	userProgress *mongo.Collection
}

// NewMongoAchievementRepository creates a new instance of
// mongoAchievementRepository.
func NewMongoAchievementRepository(db *mongo.Database) repository.AchievementRepository {
	return &mongoAchievementRepository{
		db:           db,
		catalog:      db.Collection(achievementCollectionName),
		userProgress: db.Collection(userAchievementCollectionName),
	}
}

func (r *mongoAchievementRepository) CreateAchievement(ctx context.Context, achievement *domain.Achievement) (int64, error) {
	id, err := nextID(ctx, r.db, achievementCollectionName)
	if err != nil {
		return 0, err
	}
	achievement.ID = id

	if _, err := r.catalog.InsertOne(ctx, achievement); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *mongoAchievementRepository) GetAchievements(ctx context.Context) ([]domain.Achievement, error) {
	cursor, err := r.catalog.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	achievements := []domain.Achievement{}
	if err := cursor.All(ctx, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *mongoAchievementRepository) GetAchievementByName(ctx context.Context, name string) (*domain.Achievement, error) {
	var achievement domain.Achievement
	if err := r.catalog.FindOne(ctx, bson.M{"name": name}).Decode(&achievement); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &achievement, nil
}

func (r *mongoAchievementRepository) GetUserAchievements(ctx context.Context, userID int64) ([]domain.UserAchievement, error) {
	cursor, err := r.userProgress.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.UserAchievement{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoAchievementRepository) Unlock(ctx context.Context, userID, achievementID int64, now time.Time) (*domain.UserAchievement, bool, error) {
	existing, err := r.findUserAchievement(ctx, userID, achievementID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil && existing.Completed {
		return existing, false, nil
	}

	if existing == nil {
		id, err := nextID(ctx, r.db, userAchievementCollectionName)
		if err != nil {
			return nil, false, err
		}
		existing = &domain.UserAchievement{
			ID:            id,
			UserID:        userID,
			AchievementID: achievementID,
		}
	}
	existing.Progress = 100
	existing.Completed = true
	existing.DateEarned = &now

	if err := r.upsertUserAchievement(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, true, nil
}

func (r *mongoAchievementRepository) UpdateProgress(ctx context.Context, userID, achievementID int64, progress int, now time.Time) (*domain.UserAchievement, bool, error) {
	existing, err := r.findUserAchievement(ctx, userID, achievementID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	if existing == nil {
		id, err := nextID(ctx, r.db, userAchievementCollectionName)
		if err != nil {
			return nil, false, err
		}
		existing = &domain.UserAchievement{
			ID:            id,
			UserID:        userID,
			AchievementID: achievementID,
		}
	} else if progress <= existing.Progress {
		// Progress never moves backwards.
		return existing, false, nil
	}

	wasCompleted := existing.Completed
	existing.Progress = progress
	if progress >= 100 {
		existing.Completed = true
		if existing.DateEarned == nil {
			existing.DateEarned = &now
		}
	}

	if err := r.upsertUserAchievement(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, existing.Completed && !wasCompleted, nil
}

func (r *mongoAchievementRepository) findUserAchievement(ctx context.Context, userID, achievementID int64) (*domain.UserAchievement, error) {
	var ua domain.UserAchievement
	err := r.userProgress.FindOne(ctx, bson.M{"userId": userID, "achievementId": achievementID}).Decode(&ua)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ua, nil
}

func (r *mongoAchievementRepository) upsertUserAchievement(ctx context.Context, ua *domain.UserAchievement) error {
	_, err := r.userProgress.ReplaceOne(ctx, bson.M{"_id": ua.ID}, ua, options.Replace().SetUpsert(true))
	return err
}

// mongoChallengeRepository implements repository.ChallengeRepository using
// MongoDB.
type mongoChallengeRepository struct {
	db           *mongo.Database
	catalog      *mongo.Collection
	userProgress *mongo.Collection
}

// NewMongoChallengeRepository creates a new instance of
// mongoChallengeRepository.
func NewMongoChallengeRepository(db *mongo.Database) repository.ChallengeRepository {
	return &mongoChallengeRepository{
		db:           db,
		catalog:      db.Collection(challengeCollectionName),
		userProgress: db.Collection(userChallengeCollectionName),
	}
}

func (r *mongoChallengeRepository) CreateChallenge(ctx context.Context, challenge *domain.Challenge) (int64, error) {
	id, err := nextID(ctx, r.db, challengeCollectionName)
	if err != nil {
		return 0, err
	}
	challenge.ID = id

	if _, err := r.catalog.InsertOne(ctx, challenge); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *mongoChallengeRepository) GetChallenges(ctx context.Context) ([]domain.Challenge, error) {
	cursor, err := r.catalog.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	challenges := []domain.Challenge{}
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *mongoChallengeRepository) GetChallengeByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	var challenge domain.Challenge
	if err := r.catalog.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *mongoChallengeRepository) GetUserChallenges(ctx context.Context, userID int64) ([]domain.UserChallenge, error) {
	cursor, err := r.userProgress.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.UserChallenge{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoChallengeRepository) Join(ctx context.Context, userID, challengeID int64, now time.Time) (*domain.UserChallenge, error) {
	if _, err := r.GetChallengeByID(ctx, challengeID); err != nil {
		return nil, err
	}

	if existing, err := r.findUserChallenge(ctx, userID, challengeID); err == nil {
		return existing, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err := nextID(ctx, r.db, userChallengeCollectionName)
	if err != nil {
		return nil, err
	}
	uc := &domain.UserChallenge{
		ID:          id,
		UserID:      userID,
		ChallengeID: challengeID,
		DateJoined:  now,
	}
	if _, err := r.userProgress.InsertOne(ctx, uc); err != nil {
		// A concurrent join hit the unique index first; return its record.
		if mongo.IsDuplicateKeyError(err) {
			return r.findUserChallenge(ctx, userID, challengeID)
		}
		return nil, err
	}
	return uc, nil
}

func (r *mongoChallengeRepository) UpdateProgress(ctx context.Context, userID, challengeID int64, progress int) (*domain.UserChallenge, bool, error) {
	existing, err := r.findUserChallenge(ctx, userID, challengeID)
	if err != nil {
		return nil, false, err
	}

	if progress <= existing.Progress {
		return existing, false, nil
	}

	wasCompleted := existing.Completed
	existing.Progress = progress
	if progress >= 100 {
		existing.Completed = true
	}

	if _, err := r.userProgress.ReplaceOne(ctx, bson.M{"_id": existing.ID}, existing); err != nil {
		return nil, false, err
	}
	return existing, existing.Completed && !wasCompleted, nil
}

func (r *mongoChallengeRepository) findUserChallenge(ctx context.Context, userID, challengeID int64) (*domain.UserChallenge, error) {
	var uc domain.UserChallenge
	err := r.userProgress.FindOne(ctx, bson.M{"userId": userID, "challengeId": challengeID}).Decode(&uc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &uc, nil
}
