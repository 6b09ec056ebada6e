package store

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnect/models"
)

const profileCollection = "profiles"

type profileMongoStore struct {
	db *mongo.Database
}

// NewProfileMongoStore creates the profiles store and ensures the unique
// owner index, which enforces at most one profile per user.
func NewProfileMongoStore(ctx context.Context, logger *logrus.Logger, db *mongo.Database) ProfileStore {
	collection := db.Collection(profileCollection)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create profile user index")
	}

	return &profileMongoStore{db: db}
}

func (s *profileMongoStore) GetProfileByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Collection(profileCollection).FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *profileMongoStore) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	cursor, err := s.db.Collection(profileCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpsertProfile applies the sparse field set atomically: supplied fields
// overwrite, absent fields are preserved, and a missing profile is created
// with empty experience and education sequences.
func (s *profileMongoStore) UpsertProfile(
	ctx context.Context,
	userID primitive.ObjectID,
	fields ProfileFields,
) (*models.Profile, error) {
	set := bson.M{"user": userID}
	if fields.Company != nil {
		set["company"] = *fields.Company
	}
	if fields.Website != nil {
		set["website"] = *fields.Website
	}
	if fields.Location != nil {
		set["location"] = *fields.Location
	}
	if fields.Status != nil {
		set["status"] = *fields.Status
	}
	if fields.Bio != nil {
		set["bio"] = *fields.Bio
	}
	if fields.GithubUsername != nil {
		set["githubusername"] = *fields.GithubUsername
	}
	if fields.Skills != nil {
		set["skills"] = fields.Skills
	}
	if fields.Social != nil {
		set["social"] = *fields.Social
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"createdAt":  time.Now().Unix(),
		},
	}

	result := s.db.Collection(profileCollection).FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile models.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *profileMongoStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	result, err := s.db.Collection(profileCollection).ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *profileMongoStore) DeleteProfileByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.db.Collection(profileCollection).DeleteOne(ctx, bson.M{"user": userID})
	return err
}
