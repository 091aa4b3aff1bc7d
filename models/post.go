package models

// Post is a blog entry written by the privileged account. Date is a
// display string set once at creation and never changed by edits.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle string    `gorm:"size:250;not null" json:"subtitle"`
	Date     string    `gorm:"size:250;not null" json:"date"`
	Body     string    `gorm:"type:text;not null" json:"body"`
	ImageURL string    `gorm:"size:250;not null" json:"image_url"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Author   User      `json:"author"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`
}
