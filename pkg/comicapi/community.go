package comicapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// CreatePostRequest is the payload for POST /posts.
type CreatePostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
	AuthorID   string `json:"authorId,omitempty"`
}

// CreateCommentRequest is the payload for POST /comments.
type CreateCommentRequest struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// Posts lists community posts. rawQuery, when non-empty, is appended verbatim
// (e.g. "?authorId=7").
func (c *Client) Posts(ctx context.Context, rawQuery string) ([]domain.Post, error) {
	return getList[domain.Post](c, ctx, "/posts"+rawQuery)
}

// PostByID fetches a single post.
func (c *Client) PostByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	if err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*domain.Post, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var p domain.Post
	if err := c.Request(ctx, http.MethodPost, "/posts", &RequestOptions{Body: body}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Comments lists a post's comments from GET /comments?postId=.
func (c *Client) Comments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	return getList[domain.Comment](c, ctx, fmt.Sprintf("/comments?postId=%d", postID))
}

// CreateComment attaches a comment to a post.
func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*domain.Comment, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var cm domain.Comment
	if err := c.Request(ctx, http.MethodPost, "/comments", &RequestOptions{Body: body}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// Bookmarks lists the caller's bookmarks.
func (c *Client) Bookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	return getList[domain.Bookmark](c, ctx, "/bookmarks")
}

// SaveBookmark stores a bookmark.
func (c *Client) SaveBookmark(ctx context.Context, b domain.Bookmark) (*domain.Bookmark, error) {
	body, err := jsonBody(b)
	if err != nil {
		return nil, err
	}
	var saved domain.Bookmark
	if err := c.Request(ctx, http.MethodPost, "/bookmarks", &RequestOptions{Body: body}, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteBookmark removes a bookmark.
func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, "/bookmarks/"+url.PathEscape(id), nil, nil)
}
