package blogservice

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/sushihentaime/bloglist/internal/common"
)

// Owner is the subset of the owning user embedded in a blog.
type Owner struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	// Owner is nil for blogs created before ownership was recorded.
	Owner *Owner `json:"owner"`
}

// Store is the persistence the blog service needs. GetBlogs and GetBlogByID
// return blogs with the owner populated.
type Store interface {
	GetBlogs(ctx context.Context) ([]Blog, error)
	GetBlogByID(ctx context.Context, id string) (*Blog, error)
	InsertBlog(ctx context.Context, b *Blog) error
	AddBlogToUser(ctx context.Context, userID, blogID string) error
	UpdateBlogLikes(ctx context.Context, id string, likes int) error
	DeleteBlog(ctx context.Context, id string) error
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m      Store
	mb     common.MessageProducer
	logger *slog.Logger
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

type UpdateLikesRequest struct {
	Likes *int `json:"likes"`
}
