package blogservice

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/bloglist/internal/common"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetBlogs(ctx context.Context) ([]Blog, error) {
	args := m.Called(ctx)
	blogs, _ := args.Get(0).([]Blog)
	return blogs, args.Error(1)
}

func (m *MockStore) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Blog)
	return b, args.Error(1)
}

func (m *MockStore) InsertBlog(ctx context.Context, b *Blog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockStore) AddBlogToUser(ctx context.Context, userID, blogID string) error {
	args := m.Called(ctx, userID, blogID)
	return args.Error(0)
}

func (m *MockStore) UpdateBlogLikes(ctx context.Context, id string, likes int) error {
	args := m.Called(ctx, id, likes)
	return args.Error(0)
}

func (m *MockStore) DeleteBlog(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageProducer struct {
	mock.Mock
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(ctx, msg, key, exchange)
	return args.Error(0)
}
