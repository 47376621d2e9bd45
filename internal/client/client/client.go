package client

import (
	"context"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
)

// Client is the API surface the services depend on.
type Client interface {
	InitToken(ctx context.Context) string
	SetToken(ctx context.Context, token string, remember bool)
	ClearToken(ctx context.Context)
	Token() string
	HasToken() bool

	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest, remember bool) (*models.AuthResponse, error)
	Logout(ctx context.Context) error

	ListPosts(ctx context.Context) ([]models.Post, error)
	ListUserPosts(ctx context.Context, authorID int64) ([]models.Post, error)
	CreatePost(ctx context.Context, content string, image *FormFile) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (*models.LikeResult, error)

	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID string, req models.CommentRequest) (*models.Comment, error)

	UpdateAvatar(ctx context.Context, avatar FormFile) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
}
