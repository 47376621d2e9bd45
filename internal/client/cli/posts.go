package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/socialfeed/internal/client/client"
	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/client/services"
)

var errNotAllowed = errors.New("You can only change your own posts.")

// post returns the post with id, from the last listing when possible.
func (a *App) post(ctx context.Context, id string) (*models.Post, error) {
	id = strings.TrimPrefix(id, "#")
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		if p, ok := a.posts[n]; ok {
			return p, nil
		}
	}
	p, err := a.postService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.posts[p.ID] = p
	return p, nil
}

func (a *App) Like(ctx context.Context, id string) error {
	p, err := a.post(ctx, id)
	if err != nil {
		return err
	}
	if err := a.postService.ToggleLike(ctx, p); err != nil {
		return err
	}
	verb := "Unliked"
	if p.IsLikedByCurrentUser {
		verb = "Liked"
	}
	a.println(fmt.Sprintf("%s #%d (%d likes)", verb, p.ID, p.LikesCount))
	return nil
}

func (a *App) Comments(ctx context.Context, id string) error {
	comments, err := a.postService.Comments(ctx, strings.TrimPrefix(id, "#"))
	if err != nil {
		return err
	}
	a.printComments(comments)
	return nil
}

// Comment adds text as a comment, prompting for it when empty.
func (a *App) Comment(ctx context.Context, id, text string) error {
	if strings.TrimSpace(text) == "" {
		var err error
		if text, err = a.prompt("Comment"); err != nil {
			return err
		}
	}
	id = strings.TrimPrefix(id, "#")
	c, err := a.postService.AddComment(ctx, id, text)
	if err != nil {
		return err
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		if p, ok := a.posts[n]; ok {
			p.CommentsCount++
		}
	}
	a.println(styles.Success.Render(fmt.Sprintf("Comment #%d added.", c.ID)))
	return nil
}

// New prompts for the body and an optional image file and publishes a post.
func (a *App) New(ctx context.Context) error {
	content, err := getMultiline(a.reader, "Post text", os.Stdout)
	if err != nil {
		return err
	}
	imagePath, err := a.prompt("Image file (empty for none)")
	if err != nil {
		return err
	}

	var image *client.FormFile
	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return err
		}
		defer f.Close()
		image = &client.FormFile{Name: filepath.Base(imagePath), Content: f}
	}

	p, err := a.postService.Create(ctx, content, image)
	if err != nil {
		return err
	}
	a.posts[p.ID] = p
	a.println(styles.Success.Render(fmt.Sprintf("Post #%d published.", p.ID)))
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	p, err := a.post(ctx, id)
	if err != nil {
		return err
	}
	if !services.CanModify(a.session, p) {
		return errNotAllowed
	}
	content, err := getMultiline(a.reader, "New text", os.Stdout)
	if err != nil {
		return err
	}
	updated, err := a.postService.Update(ctx, models.FormatID(p.ID), content)
	if err != nil {
		return err
	}
	a.posts[updated.ID] = updated
	a.println(styles.Success.Render(fmt.Sprintf("Post #%d updated.", updated.ID)))
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	p, err := a.post(ctx, id)
	if err != nil {
		return err
	}
	if !services.CanModify(a.session, p) {
		return errNotAllowed
	}
	ok, err := a.confirm(fmt.Sprintf("Delete post #%d?", p.ID))
	if err != nil || !ok {
		return err
	}
	if err := a.postService.Delete(ctx, models.FormatID(p.ID)); err != nil {
		return err
	}
	delete(a.posts, p.ID)
	a.println(fmt.Sprintf("Post #%d deleted.", p.ID))
	return nil
}

func (a *App) Avatar(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := a.authService.UpdateAvatar(ctx, client.FormFile{Name: filepath.Base(path), Content: f})
	if err != nil {
		return err
	}
	a.session = s
	a.println(styles.Success.Render("Avatar updated."))
	return nil
}
