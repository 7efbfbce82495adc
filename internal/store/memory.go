// Package store holds the in-memory implementation of the blog and user
// stores. State is lost when the process exits.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type blogRecord struct {
	id      string
	title   string
	author  string
	url     string
	likes   int
	ownerID string
}

// Memory implements both blogservice.Store and userservice.Store.
type Memory struct {
	mu        sync.RWMutex
	users     map[string]*userservice.User
	usernames map[string]string // username -> user id
	blogs     map[string]*blogRecord
	order     []string // blog ids in insertion order
	userOrder []string
}

var (
	_ blogservice.Store = (*Memory)(nil)
	_ userservice.Store = (*Memory)(nil)
)

func NewMemoryStore() *Memory {
	return &Memory{
		users:     make(map[string]*userservice.User),
		usernames: make(map[string]string),
		blogs:     make(map[string]*blogRecord),
	}
}

// blog builds the public view of r. Callers must hold mu.
func (m *Memory) blog(r *blogRecord) blogservice.Blog {
	b := blogservice.Blog{
		ID:     r.id,
		Title:  r.title,
		Author: r.author,
		URL:    r.url,
		Likes:  r.likes,
	}

	if u, ok := m.users[r.ownerID]; ok {
		b.Owner = &blogservice.Owner{ID: u.ID, Name: u.Name, Username: u.Username}
	}

	return b
}

func copyUser(u *userservice.User) *userservice.User {
	c := *u
	c.Blogs = append([]string{}, u.Blogs...)
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}

func (m *Memory) GetBlogs(ctx context.Context) ([]blogservice.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blogs := make([]blogservice.Blog, 0, len(m.order))
	for _, id := range m.order {
		blogs = append(blogs, m.blog(m.blogs[id]))
	}

	return blogs, nil
}

func (m *Memory) GetBlogByID(ctx context.Context, id string) (*blogservice.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.blogs[id]
	if !ok {
		return nil, blogservice.ErrRecordNotFound
	}

	b := m.blog(r)
	return &b, nil
}

func (m *Memory) InsertBlog(ctx context.Context, b *blogservice.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := &blogRecord{
		id:     uuid.NewString(),
		title:  b.Title,
		author: b.Author,
		url:    b.URL,
		likes:  b.Likes,
	}

	if b.Owner != nil {
		if _, ok := m.users[b.Owner.ID]; !ok {
			return blogservice.ErrUserForeignKey
		}
		r.ownerID = b.Owner.ID
	}

	m.blogs[r.id] = r
	m.order = append(m.order, r.id)
	b.ID = r.id

	return nil
}

func (m *Memory) AddBlogToUser(ctx context.Context, userID, blogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return blogservice.ErrRecordNotFound
	}

	u.Blogs = append(u.Blogs, blogID)
	return nil
}

func (m *Memory) UpdateBlogLikes(ctx context.Context, id string, likes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.blogs[id]
	if !ok {
		return blogservice.ErrRecordNotFound
	}

	r.likes = likes
	return nil
}

func (m *Memory) DeleteBlog(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blogs[id]; !ok {
		return nil
	}

	delete(m.blogs, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return nil
}

func (m *Memory) GetUsers(ctx context.Context) ([]userservice.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]userservice.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		u := copyUser(m.users[id])
		u.PasswordHash = nil
		users = append(users, *u)
	}

	return users, nil
}

func (m *Memory) GetUserByID(ctx context.Context, id string) (*userservice.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, userservice.ErrNotFound
	}

	return copyUser(u), nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*userservice.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, userservice.ErrNotFound
	}

	return copyUser(m.users[id]), nil
}

func (m *Memory) InsertUser(ctx context.Context, u *userservice.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.usernames[u.Username]; ok {
		return userservice.ErrDuplicateUsername
	}

	u.ID = uuid.NewString()
	if u.Blogs == nil {
		u.Blogs = []string{}
	}

	m.users[u.ID] = copyUser(u)
	m.usernames[u.Username] = u.ID
	m.userOrder = append(m.userOrder, u.ID)

	return nil
}
