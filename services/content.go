package services

import (
	"time"

	"github.com/jaylenwa/goblog/models"
	"github.com/jaylenwa/goblog/stores"
	"github.com/jaylenwa/goblog/utils"
)

// publishDateLayout renders dates like "April 05, 2024".
const publishDateLayout = "January 02, 2006"

// ContentService lists, shows, and manages posts and their comments.
// Every gated operation takes the caller's principal explicitly.
type ContentService struct {
	content stores.ContentStore
}

// NewContentService creates a ContentService over the given store.
func NewContentService(content stores.ContentStore) *ContentService {
	return &ContentService{content: content}
}

// ListAllPosts returns every post for the landing page.
func (s *ContentService) ListAllPosts() ([]models.Post, error) {
	return s.content.ListPosts()
}

// ViewPost loads a post and its comments.
func (s *ContentService) ViewPost(id uint) (*models.Post, []models.Comment, error) {
	post, err := s.content.GetPost(id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.content.CommentsForPost(id)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// GetPost loads a single post without its comments.
func (s *ContentService) GetPost(id uint) (*models.Post, error) {
	return s.content.GetPost(id)
}

// AddComment stores a comment by the current principal on a post.
// Anonymous submissions are rejected and nothing is stored.
func (s *ContentService) AddComment(p Principal, postID uint, text string) (uint, error) {
	if !p.Authenticated() {
		return 0, ErrUnauthenticated
	}
	if _, err := s.content.GetPost(postID); err != nil {
		return 0, err
	}
	return s.content.AddComment(utils.Sanitize(text), p.ID, postID)
}

// CreatePost creates a post authored by the privileged principal. The
// publish date is stamped here, once.
func (s *ContentService) CreatePost(p Principal, fields stores.PostFields) (uint, error) {
	if err := RequireAdmin(p); err != nil {
		return 0, err
	}
	post := models.Post{
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Date:     time.Now().Format(publishDateLayout),
		Body:     utils.Sanitize(fields.Body),
		ImageURL: fields.ImageURL,
		AuthorID: p.ID,
	}
	return s.content.CreatePost(&post)
}

// EditPost updates a post's mutable fields. The publish date is not
// among them.
func (s *ContentService) EditPost(p Principal, id uint, fields stores.PostFields) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	fields.Body = utils.Sanitize(fields.Body)
	return s.content.UpdatePost(id, fields)
}

// DeletePost removes a post and its comments.
func (s *ContentService) DeletePost(p Principal, id uint) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	return s.content.DeletePost(id)
}
