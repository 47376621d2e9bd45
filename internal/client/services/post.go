package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/socialfeed/internal/client/client"
	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/common"
)

type PostService interface {
	Feed(ctx context.Context, by models.SortBy) ([]models.Post, error)
	UserPosts(ctx context.Context, ref models.ProfileRef, by models.SortBy) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, content string, image *client.FormFile) (*models.Post, error)
	Update(ctx context.Context, id, content string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, post *models.Post) error
	Comments(ctx context.Context, postID string) ([]models.Comment, error)
	AddComment(ctx context.Context, postID, text string) (*models.Comment, error)
}

type postService struct {
	client client.Client
}

func NewPostService(c client.Client) PostService {
	return &postService{client: c}
}

func (s *postService) Feed(ctx context.Context, by models.SortBy) ([]models.Post, error) {
	posts, err := s.client.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	models.SortPosts(posts, by)
	return posts, nil
}

func (s *postService) UserPosts(ctx context.Context, ref models.ProfileRef, by models.SortBy) ([]models.Post, error) {
	posts, err := s.client.ListUserPosts(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	models.SortPosts(posts, by)
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.client.GetPost(ctx, id)
}

// Create publishes a post. Either non-blank content or an image is required.
func (s *postService) Create(ctx context.Context, content string, image *client.FormFile) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && image == nil {
		return nil, common.ErrEmptyPost
	}
	return s.client.CreatePost(ctx, content, image)
}

func (s *postService) Update(ctx context.Context, id, content string) (*models.Post, error) {
	return s.client.UpdatePost(ctx, id, models.UpdatePostRequest{Content: strings.TrimSpace(content)})
}

func (s *postService) Delete(ctx context.Context, id string) error {
	return s.client.DeletePost(ctx, id)
}

// ToggleLike flips the like state of post on the server and applies the
// result to post in place.
func (s *postService) ToggleLike(ctx context.Context, post *models.Post) error {
	res, err := s.client.ToggleLike(ctx, models.FormatID(post.ID))
	if err != nil {
		return err
	}
	post.ApplyLike(res.Liked)
	return nil
}

// Comments returns the comments of a post, oldest first.
func (s *postService) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.client.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	models.SortComments(comments)
	return comments, nil
}

func (s *postService) AddComment(ctx context.Context, postID, text string) (*models.Comment, error) {
	req := models.CommentRequest{Text: strings.TrimSpace(text)}
	if models.Validate(req) != nil {
		return nil, common.ErrEmptyComment
	}
	return s.client.CreateComment(ctx, postID, req)
}

// CanModify reports whether the signed-in user may edit or delete post: its
// author or a superuser.
func CanModify(s *models.Session, post *models.Post) bool {
	if s == nil || post == nil {
		return false
	}
	if s.IsSuperuser {
		return true
	}
	ref, ok := post.AuthorRef()
	return ok && ref.ID == s.UserID
}
