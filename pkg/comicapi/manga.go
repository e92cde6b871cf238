package comicapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// CreateMangaRequest is the payload for POST /manga.
type CreateMangaRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Author      string             `json:"author,omitempty"`
	Artist      string             `json:"artist,omitempty"`
	Status      domain.MangaStatus `json:"status,omitempty"`
	GenreIDs    []string           `json:"genreIds,omitempty"`
	CoverImage  string             `json:"coverImage,omitempty"`
	IsPublished bool               `json:"isPublished"`
}

// UpdateMangaRequest is the payload for PUT /manga/:id. Zero-valued fields are
// omitted so the backend treats them as unchanged.
type UpdateMangaRequest struct {
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Author      string             `json:"author,omitempty"`
	Artist      string             `json:"artist,omitempty"`
	Status      domain.MangaStatus `json:"status,omitempty"`
	GenreIDs    []string           `json:"genreIds,omitempty"`
	CoverImage  string             `json:"coverImage,omitempty"`
	IsPublished *bool              `json:"isPublished,omitempty"`
}

// ChapterRequest is the payload for creating or updating a chapter.
type ChapterRequest struct {
	MangaID     string  `json:"mangaId,omitempty"`
	Number      float64 `json:"number"`
	Title       string  `json:"title"`
	IsPublished bool    `json:"isPublished"`
}

// MangaList fetches the full catalog from GET /manga.
func (c *Client) MangaList(ctx context.Context) ([]domain.Manga, error) {
	return getList[domain.Manga](c, ctx, "/manga")
}

// MangaByID fetches one series from GET /manga/:id.
func (c *Client) MangaByID(ctx context.Context, id string) (*domain.Manga, error) {
	var m domain.Manga
	if err := c.Request(ctx, http.MethodGet, "/manga/"+url.PathEscape(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateManga posts a new series.
func (c *Client) CreateManga(ctx context.Context, req CreateMangaRequest) (*domain.Manga, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var m domain.Manga
	if err := c.Request(ctx, http.MethodPost, "/manga", &RequestOptions{Body: body}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateManga updates an existing series.
func (c *Client) UpdateManga(ctx context.Context, id string, req UpdateMangaRequest) (*domain.Manga, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var m domain.Manga
	if err := c.Request(ctx, http.MethodPut, "/manga/"+url.PathEscape(id), &RequestOptions{Body: body}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteManga removes a series.
func (c *Client) DeleteManga(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, "/manga/"+url.PathEscape(id), nil, nil)
}

// MangaChapters lists a series' chapters from GET /manga-chapters?mangaId=.
func (c *Client) MangaChapters(ctx context.Context, mangaID string) ([]domain.Chapter, error) {
	query := url.Values{"mangaId": {mangaID}}
	return getList[domain.Chapter](c, ctx, "/manga-chapters?"+query.Encode())
}

// ChapterByID fetches one chapter.
func (c *Client) ChapterByID(ctx context.Context, id string) (*domain.Chapter, error) {
	var ch domain.Chapter
	if err := c.Request(ctx, http.MethodGet, "/manga-chapters/"+url.PathEscape(id), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// CreateChapter posts a new chapter.
func (c *Client) CreateChapter(ctx context.Context, req ChapterRequest) (*domain.Chapter, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var ch domain.Chapter
	if err := c.Request(ctx, http.MethodPost, "/manga-chapters", &RequestOptions{Body: body}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// UpdateChapter updates an existing chapter.
func (c *Client) UpdateChapter(ctx context.Context, id string, req ChapterRequest) (*domain.Chapter, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var ch domain.Chapter
	if err := c.Request(ctx, http.MethodPut, "/manga-chapters/"+url.PathEscape(id), &RequestOptions{Body: body}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// DeleteChapter removes a chapter.
func (c *Client) DeleteChapter(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, "/manga-chapters/"+url.PathEscape(id), nil, nil)
}

// ChapterImages lists a chapter's page images from GET /chapter-images.
func (c *Client) ChapterImages(ctx context.Context, mangaID, chapterID string) ([]domain.Page, error) {
	query := url.Values{"mangaId": {mangaID}, "chapterId": {chapterID}}
	return getList[domain.Page](c, ctx, "/chapter-images?"+query.Encode())
}

