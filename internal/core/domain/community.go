package domain

import "time"

// Post is a community post.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	CoverImage string    `json:"coverImage,omitempty"`
	AuthorID   string    `json:"authorId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId,omitempty"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bookmark marks a chapter position in a series for a user.
type Bookmark struct {
	ID        string    `json:"id,omitempty"`
	MangaID   string    `json:"mangaId"`
	ChapterID string    `json:"chapterId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EpubBook is an uploaded EPUB in a user's library.
type EpubBook struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	FileName        string    `json:"fileName"`
	FileSizeInBytes int64     `json:"fileSizeInBytes"`
	UploadDate      time.Time `json:"uploadDate"`
}

// DashboardStats is the admin dashboard summary block.
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveUsers       int64 `json:"activeUsers"`
	TotalManga        int64 `json:"totalManga"`
	PublishedManga    int64 `json:"publishedManga"`
	TotalChapters     int64 `json:"totalChapters"`
	TotalViews        int64 `json:"totalViews"`
	NewUsersThisMonth int64 `json:"newUsersThisMonth"`
	NewMangaThisMonth int64 `json:"newMangaThisMonth"`
}

// ActivityLog records a single audited action.
type ActivityLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IPAddress  string    `json:"ipAddress,omitempty"`
}

// ReadingEntry records one chapter-read event in a user's history.
type ReadingEntry struct {
	UserID    string    `json:"userId"`
	MangaID   string    `json:"mangaId"`
	ChapterID string    `json:"chapterId"`
	ReadAt    time.Time `json:"readAt"`
}
