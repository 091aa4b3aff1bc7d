package stores

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jaylenwa/goblog/models"
)

// PostFields are the mutable attributes of a post. The publish date is
// deliberately absent: it is set once at creation and edits cannot
// reach it.
type PostFields struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	AuthorID uint
}

// ContentStore persists posts and their comments.
type ContentStore interface {
	ListPosts() ([]models.Post, error)
	GetPost(id uint) (*models.Post, error)
	CreatePost(post *models.Post) (uint, error)
	UpdatePost(id uint, fields PostFields) error
	DeletePost(id uint) error
	AddComment(text string, authorID, postID uint) (uint, error)
	CommentsForPost(postID uint) ([]models.Comment, error)
}

// GormContentStore is the MySQL backed ContentStore.
type GormContentStore struct {
	db *gorm.DB
}

// NewGormContentStore wraps a gorm connection as a ContentStore.
func NewGormContentStore(db *gorm.DB) *GormContentStore {
	return &GormContentStore{db: db}
}

// ListPosts returns all posts in creation order with their authors.
func (s *GormContentStore) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Preload("Author").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *GormContentStore) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *GormContentStore) CreatePost(post *models.Post) (uint, error) {
	if err := s.db.Create(post).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateTitle
		}
		return 0, err
	}
	return post.ID, nil
}

// UpdatePost applies a partial update. Column names are spelled out so
// the date column can never be touched here.
func (s *GormContentStore) UpdatePost(id uint, fields PostFields) error {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	err := s.db.Model(&post).Updates(map[string]interface{}{
		"title":     fields.Title,
		"subtitle":  fields.Subtitle,
		"body":      fields.Body,
		"image_url": fields.ImageURL,
		"author_id": fields.AuthorID,
	}).Error
	if err != nil && isDuplicateKey(err) {
		return ErrDuplicateTitle
	}
	return err
}

// DeletePost removes a post and its comments in one transaction.
func (s *GormContentStore) DeletePost(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *GormContentStore) AddComment(text string, authorID, postID uint) (uint, error) {
	comment := models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// CommentsForPost returns a post's comments in submission order with
// their authors.
func (s *GormContentStore) CommentsForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").Where("post_id = ?", postID).Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
