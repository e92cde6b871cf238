package handler

import (
	"time"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// Illustrative sample data served when the backend is unreachable, so list
// pages stay usable offline.
var sampleManga = []domain.Manga{
	{
		ID:          "sample-1",
		Title:       "The Wandering Blade",
		Description: "A ronin crosses a war-torn province in search of a stolen heirloom.",
		Author:      "K. Arai",
		Artist:      "K. Arai",
		Status:      domain.MangaOngoing,
		IsPublished: true,
		ViewCount:   12840,
		Rating:      4.6,
		CreatedAt:   time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "sample-2",
		Title:       "Starfall Academy",
		Description: "First-years at an orbital school discover their dorm is older than the station.",
		Author:      "M. Oduya",
		Artist:      "L. Chen",
		Status:      domain.MangaCompleted,
		IsPublished: true,
		ViewCount:   30215,
		Rating:      4.2,
		CreatedAt:   time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
	},
}

var samplePosts = []domain.Post{
	{
		ID:        1,
		Title:     "Welcome to the community board",
		Content:   "Introduce yourself and share what you are reading this week.",
		AuthorID:  "1",
		CreatedAt: time.Date(2025, 1, 5, 9, 30, 0, 0, time.UTC),
	},
	{
		ID:        2,
		Title:     "Chapter discussion threads now weekly",
		Content:   "Discussion threads for ongoing series open every Friday.",
		AuthorID:  "1",
		CreatedAt: time.Date(2025, 2, 14, 18, 0, 0, 0, time.UTC),
	},
}
