package stores

import (
	"sync"

	"github.com/jaylenwa/goblog/models"
)

// MemoryStore is an in-memory IdentityStore and ContentStore used by
// tests. It enforces the same uniqueness rules as the database schema.
type MemoryStore struct {
	mu sync.Mutex

	users    []models.User
	posts    []models.Post
	comments []models.Comment

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextUserID: 1, nextPostID: 1, nextCommentID: 1}
}

func (s *MemoryStore) CreateUser(email, passwordHash, name string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return 0, ErrDuplicateEmail
		}
	}
	user := models.User{
		ID:           s.nextUserID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	}
	s.nextUserID++
	s.users = append(s.users, user)
	return user.ID, nil
}

func (s *MemoryStore) FindByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListPosts() ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, len(s.posts))
	copy(posts, s.posts)
	for i := range posts {
		posts[i].Author = s.userByID(posts[i].AuthorID)
	}
	return posts, nil
}

func (s *MemoryStore) GetPost(id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == id {
			post := p
			post.Author = s.userByID(post.AuthorID)
			return &post, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreatePost(post *models.Post) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.Title == post.Title {
			return 0, ErrDuplicateTitle
		}
	}
	post.ID = s.nextPostID
	s.nextPostID++
	s.posts = append(s.posts, *post)
	return post.ID, nil
}

func (s *MemoryStore) UpdatePost(id uint, fields PostFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		for _, p := range s.posts {
			if p.ID != id && p.Title == fields.Title {
				return ErrDuplicateTitle
			}
		}
		s.posts[i].Title = fields.Title
		s.posts[i].Subtitle = fields.Subtitle
		s.posts[i].Body = fields.Body
		s.posts[i].ImageURL = fields.ImageURL
		s.posts[i].AuthorID = fields.AuthorID
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) DeletePost(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
		kept := s.comments[:0]
		for _, c := range s.comments {
			if c.PostID != id {
				kept = append(kept, c)
			}
		}
		s.comments = kept
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) AddComment(text string, authorID, postID uint) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := models.Comment{
		ID:       s.nextCommentID,
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	s.nextCommentID++
	s.comments = append(s.comments, comment)
	return comment.ID, nil
}

func (s *MemoryStore) CommentsForPost(postID uint) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			c.Author = s.userByID(c.AuthorID)
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// userByID resolves an author for preloaded responses; callers hold the
// lock.
func (s *MemoryStore) userByID(id uint) models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return models.User{}
}
