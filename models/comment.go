package models

// Comment is a reply on a post. Comments are never edited or deleted
// individually; they go away with their post.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	PostID   uint   `gorm:"index;not null" json:"post_id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	Author   User   `json:"author"`
}
