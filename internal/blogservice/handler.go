package blogservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewBlogService(store Store, mb common.MessageProducer, logger *slog.Logger) *BlogService {
	if mb == nil {
		mb = common.NopProducer{}
	}

	return &BlogService{
		m:      store,
		mb:     mb,
		logger: logger,
	}
}

// GetBlogs returns every blog with its owner populated.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.GetBlogs(ctx)
}

// GetBlogByID returns a blog by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	id, err := common.ParseID(id)
	if err != nil {
		return nil, err
	}

	b, err := s.m.GetBlogByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	return b, nil
}

// CreateBlog stores a new blog owned by owner and appends it to the owner's blog list.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest, owner Owner) (*Blog, error) {
	v := common.NewValidator()
	validateBlog(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b := Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Owner:  &owner,
	}
	if req.Likes != nil {
		b.Likes = *req.Likes
	}

	err := s.m.InsertBlog(ctx, &b)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserForeignKey):
			return nil, common.NewUnknownUserError()
		default:
			return nil, err
		}
	}

	// Not atomic with the insert. Blog.Owner stays authoritative.
	err = s.m.AddBlogToUser(ctx, owner.ID, b.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogCreatedKey, newBlogEvent(&b))

	return &b, nil
}

// DeleteBlog deletes a blog post. Only the user who created the blog post can delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, callerID string) error {
	b, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return err
	}

	err = s.m.DeleteBlog(ctx, b.ID)
	if err != nil {
		return storeError(err)
	}

	s.publish(ctx, common.BlogDeletedKey, newBlogEvent(b))

	return nil
}

// UpdateLikes sets the like count of a blog. Only the user who created the blog post can update it.
func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes *int, callerID string) (*Blog, error) {
	b, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	v.Check(likes != nil, "likes", "Likes required")
	if likes != nil {
		validateLikes(v, *likes)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.UpdateBlogLikes(ctx, b.ID, *likes)
	if err != nil {
		return nil, storeError(err)
	}

	b.Likes = *likes

	s.publish(ctx, common.BlogLikedKey, newBlogEvent(b))

	return b, nil
}

// Stats summarises all blogs.
func (s *BlogService) Stats(ctx context.Context) (*Stats, error) {
	blogs, err := s.m.GetBlogs(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}, nil
}

// loadOwned loads the blog and checks that callerID owns it. Blogs without
// an owner belong to nobody.
func (s *BlogService) loadOwned(ctx context.Context, id, callerID string) (*Blog, error) {
	b, err := s.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Owner == nil || b.Owner.ID != callerID {
		return nil, common.NewUnauthorizedError()
	}

	return b, nil
}

func storeError(err error) error {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return common.NewNotFoundError("Blog")
	case errors.Is(err, ErrMalformedID):
		return common.NewMalformedIDError()
	default:
		return err
	}
}

type blogEvent struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Likes   int    `json:"likes"`
	OwnerID string `json:"owner_id,omitempty"`
}

func newBlogEvent(b *Blog) blogEvent {
	e := blogEvent{ID: b.ID, Title: b.Title, Likes: b.Likes}
	if b.Owner != nil {
		e.OwnerID = b.Owner.ID
	}
	return e
}

func (s *BlogService) publish(ctx context.Context, key common.BindingKey, event any) {
	if err := common.PublishJSON(ctx, s.mb, key, event); err != nil {
		s.logger.Error("could not publish event", "key", key, "error", err)
	}
}
