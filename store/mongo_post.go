package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnect/models"
)

const postCollection = "posts"

type postMongoStore struct {
	db *mongo.Database
}

func NewPostMongoStore(db *mongo.Database) PostStore {
	return &postMongoStore{db: db}
}

func (s *postMongoStore) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	post.CreatedAt = time.Now().Unix()
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	_, err := s.db.Collection(postCollection).InsertOne(ctx, post)
	return err
}

func (s *postMongoStore) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.db.Collection(postCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *postMongoStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(postCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postMongoStore) SavePost(ctx context.Context, post *models.Post) error {
	result, err := s.db.Collection(postCollection).ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postMongoStore) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.db.Collection(postCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postMongoStore) DeletePostsByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.db.Collection(postCollection).DeleteMany(ctx, bson.M{"user": userID})
	return err
}
