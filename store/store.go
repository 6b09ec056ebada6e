package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/models"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ProfileFields is the sparse field set applied by a profile upsert.
// Only the fields that are not nil overwrite existing values; nil fields
// leave the stored value untouched. Social is rebuilt from the supplied
// network links on every upsert.
type ProfileFields struct {
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Bio            *string
	GithubUsername *string
	Skills         []string
	Social         *models.Social
}

// UserStore defines user-related database operations.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// ProfileStore defines profile-related database operations. SaveProfile
// persists the whole document and is used after in-place mutation of the
// experience and education arrays.
type ProfileStore interface {
	GetProfileByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	UpsertProfile(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	DeleteProfileByUser(ctx context.Context, userID primitive.ObjectID) error
}

// PostStore defines post-related database operations. SavePost persists the
// whole document after like and comment mutations.
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	SavePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	DeletePostsByUser(ctx context.Context, userID primitive.ObjectID) error
}

// Store bundles the entity stores the handlers depend on.
type Store struct {
	Users    UserStore
	Profiles ProfileStore
	Posts    PostStore
}
