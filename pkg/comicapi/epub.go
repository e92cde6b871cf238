package comicapi

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// EpubList lists every EPUB visible to the caller.
func (c *Client) EpubList(ctx context.Context) ([]domain.EpubBook, error) {
	return getList[domain.EpubBook](c, ctx, "/epub")
}

// UserEpubs lists one user's library from GET /epub/user/:userId.
func (c *Client) UserEpubs(ctx context.Context, userID string) ([]domain.EpubBook, error) {
	return getList[domain.EpubBook](c, ctx, "/epub/user/"+url.PathEscape(userID))
}

// EpubByID fetches one book's metadata.
func (c *Client) EpubByID(ctx context.Context, id int64) (*domain.EpubBook, error) {
	var book domain.EpubBook
	if err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/epub/%d", id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteEpub removes a book.
func (c *Client) DeleteEpub(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/epub/%d", id), nil, nil)
}

// UploadEpub streams a multipart upload to POST /epub. The multipart writer
// supplies its own Content-Type so the boundary is preserved; title and
// userID fields are only written when non-empty.
func (c *Client) UploadEpub(ctx context.Context, file io.Reader, filename, title, userID string) (*domain.EpubBook, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if title != "" {
			if err := form.WriteField("title", title); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		if userID != "" {
			if err := form.WriteField("userId", userID); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(form.Close())
	}()

	var book domain.EpubBook
	opts := &RequestOptions{Body: pr, ContentType: form.FormDataContentType()}
	if err := c.Request(ctx, http.MethodPost, "/epub", opts, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// EpubFileURL returns the absolute download URL for a book. The base used is
// the one resolved by probing, so the URL is usable outside this client.
func (c *Client) EpubFileURL(ctx context.Context, id int64) string {
	return fmt.Sprintf("%s/epub/file?id=%d", c.resolveBase(ctx), id)
}

// DownloadEpub fetches the raw EPUB bytes from GET /epub/file?id=.
func (c *Client) DownloadEpub(ctx context.Context, id int64) ([]byte, error) {
	data, _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/epub/file?id=%d", id), nil)
	if err != nil {
		return nil, err
	}
	return data, nil
}
