package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
)

func postPath(id string) string {
	return "/posts/" + url.PathEscape(id) + "/"
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.Request(ctx, "/posts/", RequestOptions{}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) ListUserPosts(ctx context.Context, authorID int64) ([]models.Post, error) {
	var posts []models.Post
	q := url.Values{"author": {strconv.FormatInt(authorID, 10)}}
	if err := c.Request(ctx, "/posts/?"+q.Encode(), RequestOptions{}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost publishes a post as multipart form data. image may be nil.
func (c *HTTPClient) CreatePost(ctx context.Context, content string, image *FormFile) (*models.Post, error) {
	form := NewForm().Add("content", content)
	if image != nil {
		form.AddFile("image_file", *image)
	}
	var p models.Post
	if err := c.Request(ctx, "/posts/", RequestOptions{Method: http.MethodPost, Form: form}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := c.Request(ctx, postPath(id), RequestOptions{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error) {
	var p models.Post
	if err := c.Request(ctx, postPath(id), RequestOptions{Method: http.MethodPatch, JSON: req}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.Request(ctx, postPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func (c *HTTPClient) ToggleLike(ctx context.Context, id string) (*models.LikeResult, error) {
	var res models.LikeResult
	if err := c.Request(ctx, postPath(id)+"like/", RequestOptions{Method: http.MethodPost}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.Request(ctx, postPath(postID)+"comments/", RequestOptions{}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, postID string, req models.CommentRequest) (*models.Comment, error) {
	var cm models.Comment
	if err := c.Request(ctx, postPath(postID)+"comments/", RequestOptions{Method: http.MethodPost, JSON: req}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *HTTPClient) UpdateAvatar(ctx context.Context, avatar FormFile) (*models.Profile, error) {
	form := NewForm().AddFile("avatar", avatar)
	var p models.Profile
	if err := c.Request(ctx, "/profiles/me/", RequestOptions{Method: http.MethodPatch, Form: form}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var p models.Profile
	path := "/profiles/by-username/" + url.PathEscape(username) + "/"
	if err := c.Request(ctx, path, RequestOptions{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ Client = (*HTTPClient)(nil)
