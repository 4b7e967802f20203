package entities

import (
	"fmt"
	"time"
)

// Genre is a named category referenced by books.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"` // uniqueness is checked by the controller, not the schema
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL is the canonical detail path of the genre.
func (g Genre) URL() string {
	return fmt.Sprintf("/catalog/genre/%d", g.ID)
}

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary,omitempty"`
	ISBN      string    `gorm:"size:20" json:"isbn,omitempty"`
	AuthorID  uint      `gorm:"index" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	GenreID   *uint     `gorm:"index" json:"genre_id,omitempty"`
	Genre     *Genre    `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL is the canonical detail path of the book.
func (b Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}
