package services

import (
	"context"

	"github.com/dmitrijs2005/socialfeed/internal/client/client"
	"github.com/dmitrijs2005/socialfeed/internal/client/models"
)

// fakeClient implements client.Client for service tests. Only the fields a
// test sets matter; everything else returns zero values.
type fakeClient struct {
	token string

	RegisterRes *models.AuthResponse
	RegisterErr error
	LoginRes    *models.AuthResponse
	LoginErr    error
	LogoutErr   error

	Posts       []models.Post
	PostsErr    error
	LastAuthor  int64
	Post        *models.Post
	LastContent string
	LastImage   *client.FormFile
	LastUpdate  models.UpdatePostRequest
	DeletedID   string

	LikeResults []bool
	LikeErr     error

	Comments    []models.Comment
	LastComment models.CommentRequest

	AvatarProfile *models.Profile
	AvatarErr     error

	Calls int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) InitToken(context.Context) string { return f.token }
func (f *fakeClient) SetToken(_ context.Context, token string, _ bool) {
	f.token = token
}
func (f *fakeClient) ClearToken(context.Context) { f.token = "" }
func (f *fakeClient) Token() string              { return f.token }
func (f *fakeClient) HasToken() bool             { return f.token != "" }

func (f *fakeClient) Register(_ context.Context, _ models.RegisterRequest) (*models.AuthResponse, error) {
	f.Calls++
	return f.RegisterRes, f.RegisterErr
}

func (f *fakeClient) Login(_ context.Context, _ models.LoginRequest, _ bool) (*models.AuthResponse, error) {
	f.Calls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.token = f.LoginRes.Token
	return f.LoginRes, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.Calls++
	f.token = ""
	return f.LogoutErr
}

func (f *fakeClient) ListPosts(context.Context) ([]models.Post, error) {
	f.Calls++
	return f.Posts, f.PostsErr
}

func (f *fakeClient) ListUserPosts(_ context.Context, authorID int64) ([]models.Post, error) {
	f.Calls++
	f.LastAuthor = authorID
	return f.Posts, f.PostsErr
}

func (f *fakeClient) CreatePost(_ context.Context, content string, image *client.FormFile) (*models.Post, error) {
	f.Calls++
	f.LastContent = content
	f.LastImage = image
	return &models.Post{ID: 1, Content: content}, nil
}

func (f *fakeClient) GetPost(_ context.Context, _ string) (*models.Post, error) {
	f.Calls++
	return f.Post, nil
}

func (f *fakeClient) UpdatePost(_ context.Context, _ string, req models.UpdatePostRequest) (*models.Post, error) {
	f.Calls++
	f.LastUpdate = req
	return &models.Post{ID: 1, Content: req.Content}, nil
}

func (f *fakeClient) DeletePost(_ context.Context, id string) error {
	f.Calls++
	f.DeletedID = id
	return nil
}

func (f *fakeClient) ToggleLike(_ context.Context, _ string) (*models.LikeResult, error) {
	f.Calls++
	if f.LikeErr != nil {
		return nil, f.LikeErr
	}
	liked := f.LikeResults[0]
	f.LikeResults = f.LikeResults[1:]
	return &models.LikeResult{Liked: liked}, nil
}

func (f *fakeClient) ListComments(_ context.Context, _ string) ([]models.Comment, error) {
	f.Calls++
	return f.Comments, nil
}

func (f *fakeClient) CreateComment(_ context.Context, postID string, req models.CommentRequest) (*models.Comment, error) {
	f.Calls++
	f.LastComment = req
	return &models.Comment{ID: 1, Text: req.Text}, nil
}

func (f *fakeClient) UpdateAvatar(_ context.Context, _ client.FormFile) (*models.Profile, error) {
	f.Calls++
	return f.AvatarProfile, f.AvatarErr
}

func (f *fakeClient) GetProfileByUsername(_ context.Context, _ string) (*models.Profile, error) {
	f.Calls++
	return nil, client.ErrNotFound
}
