package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/models"
)

// MemoryStore is an in-memory implementation of the entity stores, used by
// the tests in place of MongoDB. All methods copy documents on the way in
// and out so callers never alias stored state.
type MemoryStore struct {
	mu       sync.Mutex
	users    []models.User
	profiles []models.Profile
	posts    []models.Post
}

// NewMemoryStore returns a Store backed by a single MemoryStore.
func NewMemoryStore() *Store {
	m := &MemoryStore{}
	return &Store{Users: m, Profiles: m, Posts: m}
}

func copyProfile(p models.Profile) models.Profile {
	out := p
	if p.Skills != nil {
		out.Skills = append([]string{}, p.Skills...)
	}
	if p.Experience != nil {
		out.Experience = append([]models.Experience{}, p.Experience...)
	}
	if p.Education != nil {
		out.Education = append([]models.Education{}, p.Education...)
	}
	return out
}

func copyPost(p models.Post) models.Post {
	out := p
	if p.Likes != nil {
		out.Likes = append([]models.Like{}, p.Likes...)
	}
	if p.Comments != nil {
		out.Comments = append([]models.Comment{}, p.Comments...)
	}
	return out
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().Unix()
	m.users = append(m.users, *user)
	return nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) GetProfileByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.profiles {
		if p.UserID == userID {
			out := copyProfile(p)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListProfiles(_ context.Context) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, copyProfile(p))
	}
	return out, nil
}

func (m *MemoryStore) UpsertProfile(
	_ context.Context,
	userID primitive.ObjectID,
	fields ProfileFields,
) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, p := range m.profiles {
		if p.UserID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.profiles = append(m.profiles, models.Profile{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			Skills:     []string{},
			Experience: []models.Experience{},
			Education:  []models.Education{},
			CreatedAt:  time.Now().Unix(),
		})
		idx = len(m.profiles) - 1
	}

	p := &m.profiles[idx]
	if fields.Company != nil {
		p.Company = *fields.Company
	}
	if fields.Website != nil {
		p.Website = *fields.Website
	}
	if fields.Location != nil {
		p.Location = *fields.Location
	}
	if fields.Status != nil {
		p.Status = *fields.Status
	}
	if fields.Bio != nil {
		p.Bio = *fields.Bio
	}
	if fields.GithubUsername != nil {
		p.GithubUsername = *fields.GithubUsername
	}
	if fields.Skills != nil {
		p.Skills = append([]string{}, fields.Skills...)
	}
	if fields.Social != nil {
		p.Social = *fields.Social
	}

	out := copyProfile(*p)
	return &out, nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.profiles {
		if p.ID == profile.ID {
			m.profiles[i] = copyProfile(*profile)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) DeleteProfileByUser(_ context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.profiles {
		if p.UserID == userID {
			m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

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
	m.posts = append(m.posts, copyPost(*post))
	return nil
}

func (m *MemoryStore) GetPost(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.posts {
		if p.ID == id {
			out := copyPost(p)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// ListPosts returns posts newest first; insertion order breaks timestamp ties.
func (m *MemoryStore) ListPosts(_ context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Post, 0, len(m.posts))
	for i := len(m.posts) - 1; i >= 0; i-- {
		out = append(out, copyPost(m.posts[i]))
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt > out[j-1].CreatedAt; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (m *MemoryStore) SavePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.posts {
		if p.ID == post.ID {
			m.posts[i] = copyPost(*post)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) DeletePost(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) DeletePostsByUser(_ context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.posts[:0]
	for _, p := range m.posts {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	m.posts = kept
	return nil
}
