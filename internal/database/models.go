package database

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/utils"
)

// UserRole is the coarse permission level of an account
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// PersonRole is the role a person is primarily known for
type PersonRole string

const (
	PersonRoleActor    PersonRole = "ACTOR"
	PersonRoleDirector PersonRole = "DIRECTOR"
)

// CreditType is the role a person holds on a specific film
type CreditType string

const (
	CreditActor    CreditType = "ACTOR"
	CreditDirector CreditType = "DIRECTOR"
)

// =============================================================================
// ACCOUNTS
// =============================================================================

// User represents an account that can log in, author reviews and comment
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Don't include password in JSON responses
	Role         UserRole  `gorm:"type:varchar(16);not null;default:USER;index" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Reviews  []Review  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&u.ID)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// AuthorSummary is the only view of a User attached to reviews and comments
type AuthorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func summarize(u *User) *AuthorSummary {
	if u == nil {
		return nil
	}
	return &AuthorSummary{ID: u.ID, Name: u.Name}
}

// =============================================================================
// CATALOG
// =============================================================================

// Film is the root of the catalog; deleting it removes its links, reviews and comments
type Film struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string    `gorm:"not null;index" json:"title"`
	OriginalTitle *string   `json:"originalTitle"`
	ReleaseYear   int       `gorm:"not null" json:"releaseYear"`
	PosterURL     string    `gorm:"column:poster_url;not null" json:"posterUrl"`
	Synopsis      *string   `gorm:"type:text" json:"synopsis"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	FilmGenres  []FilmGenre  `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"filmGenres,omitempty"`
	FilmCredits []FilmCredit `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"filmCredits,omitempty"`
	Reviews     []Review     `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (f *Film) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&f.ID)
	return nil
}

// FilmSummary is the listing projection of a Film
type FilmSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PosterURL   string `json:"posterUrl"`
	ReleaseYear int    `json:"releaseYear"`
}

// Genre is a named film category; names are unique
type Genre struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FilmGenres []FilmGenre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&g.ID)
	return nil
}

// Person is an actor or director
type Person struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	FullName    string     `gorm:"not null;index" json:"fullName"`
	Bio         *string    `gorm:"type:text" json:"bio"`
	PrimaryRole PersonRole `gorm:"type:varchar(16);not null;default:ACTOR;index" json:"primaryRole"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	FilmCredits []FilmCredit `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table name stable across naming strategies
func (Person) TableName() string {
	return "persons"
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&p.ID)
	if p.PrimaryRole == "" {
		p.PrimaryRole = PersonRoleActor
	}
	return nil
}

// FilmGenre links a film to a genre, at most once per pair
type FilmGenre struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	FilmID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_film_genre" json:"filmId"`
	GenreID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_film_genre;index" json:"genreId"`

	Film  *Film  `gorm:"foreignKey:FilmID" json:"film,omitempty"`
	Genre *Genre `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
}

func (fg *FilmGenre) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&fg.ID)
	return nil
}

// FilmCredit links a person to a film in a role, at most once per (film, person, role)
type FilmCredit struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	FilmID        string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_film_person_credit" json:"filmId"`
	PersonID      string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_film_person_credit;index" json:"personId"`
	CreditType    CreditType `gorm:"type:varchar(16);not null;uniqueIndex:idx_film_person_credit" json:"creditType"`
	OrderIndex    *int       `json:"orderIndex"`
	CharacterName *string    `json:"characterName"`

	Film   *Film   `gorm:"foreignKey:FilmID" json:"film,omitempty"`
	Person *Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

func (fc *FilmCredit) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&fc.ID)
	return nil
}

// =============================================================================
// AUDIENCE CONTENT
// =============================================================================

// Review is a curator rating of a film; one per (film, author)
type Review struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Rating     int       `gorm:"not null" json:"rating"`
	ReviewText string    `gorm:"type:text;not null" json:"reviewText"`
	FilmID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_film_author" json:"filmId"`
	AuthorID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_film_author;index" json:"authorId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Film   *Film `gorm:"foreignKey:FilmID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&r.ID)
	return nil
}

// MarshalJSON exposes the author as an AuthorSummary
func (r Review) MarshalJSON() ([]byte, error) {
	type alias Review
	return json.Marshal(struct {
		alias
		Author *AuthorSummary `json:"author,omitempty"`
	}{alias(r), summarize(r.Author)})
}

// Comment is free text left on a film by any user
type Comment struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CommentText string    `gorm:"type:text;not null" json:"commentText"`
	FilmID      string    `gorm:"type:varchar(36);not null;index" json:"filmId"`
	AuthorID    string    `gorm:"type:varchar(36);not null;index" json:"authorId"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Film   *Film `gorm:"foreignKey:FilmID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	utils.EnsureID(&c.ID)
	return nil
}

// MarshalJSON exposes the author as an AuthorSummary
func (c Comment) MarshalJSON() ([]byte, error) {
	type alias Comment
	return json.Marshal(struct {
		alias
		Author *AuthorSummary `json:"author,omitempty"`
	}{alias(c), summarize(c.Author)})
}

// AllModels lists every model in migration order
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Film{},
		&Genre{},
		&Person{},
		&FilmGenre{},
		&FilmCredit{},
		&Review{},
		&Comment{},
	}
}
