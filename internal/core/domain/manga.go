package domain

import "time"

// MangaStatus represents the publication state of a series.
type MangaStatus string

const (
	MangaOngoing   MangaStatus = "ongoing"
	MangaCompleted MangaStatus = "completed"
	MangaHiatus    MangaStatus = "hiatus"
	MangaCancelled MangaStatus = "cancelled"
)

// Genre tags a series with a category.
type Genre struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Page is a single image within a chapter.
type Page struct {
	ID         string `json:"id"`
	ChapterID  string `json:"chapterId"`
	PageNumber int    `json:"pageNumber"`
	ImageURL   string `json:"imageUrl"`
	AltText    string `json:"altText,omitempty"`
}

// Chapter is one installment of a series.
type Chapter struct {
	ID          string    `json:"id"`
	MangaID     string    `json:"mangaId"`
	Number      float64   `json:"number"`
	Title       string    `json:"title"`
	Pages       []Page    `json:"pages,omitempty"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   string    `json:"createdBy,omitempty"`
}

// Manga is the catalog aggregate root.
type Manga struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Author      string      `json:"author,omitempty"`
	Artist      string      `json:"artist,omitempty"`
	Status      MangaStatus `json:"status,omitempty"`
	Genres      []Genre     `json:"genres,omitempty"`
	CoverImage  string      `json:"coverImage,omitempty"`
	Chapters    []Chapter   `json:"chapters,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	CreatedBy   string      `json:"createdBy,omitempty"`
	UpdatedBy   string      `json:"updatedBy,omitempty"`
	IsPublished bool        `json:"isPublished"`
	ViewCount   int64       `json:"viewCount"`
	Rating      float64     `json:"rating"`
}
