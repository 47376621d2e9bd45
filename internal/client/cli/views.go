package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/client/services"
)

// render prints the active view. Results fetched under a generation that is
// no longer current are dropped.
func (a *App) render(ctx context.Context) error {
	st := a.nav.State()

	switch a.nav.ActiveView(a.isLoggedIn()) {
	case models.ViewAuth:
		if a.nav.AuthMode() == models.AuthRegister {
			a.println("Create an account with 'register' ('switch' to sign in).")
		} else {
			a.println("Sign in with 'login' ('switch' to create an account).")
		}
		return nil
	case models.ViewProfile:
		ref := a.session.Ref()
		if st.ProfileTarget != nil {
			ref = *st.ProfileTarget
		}
		return a.renderProfile(ctx, ref)
	case models.ViewPost:
		return a.renderPost(ctx, st.PostTarget)
	default:
		return a.renderFeed(ctx)
	}
}

func (a *App) renderFeed(ctx context.Context) error {
	gen := a.nav.Generation()
	posts, err := a.postService.Feed(ctx, a.sortBy)
	if err != nil {
		return err
	}
	if !a.nav.IsCurrent(gen) {
		return nil
	}

	a.println(styles.Title.Render(fmt.Sprintf("Feed (by %s)", a.sortBy)))
	a.printPosts(posts)
	return nil
}

// renderProfile shows a profile header and the user's posts. ref may be a
// partial snapshot; the canonical profile is fetched when available.
func (a *App) renderProfile(ctx context.Context, ref models.ProfileRef) error {
	gen := a.nav.Generation()

	if p, err := a.api.GetProfileByUsername(ctx, ref.Username); err == nil {
		ref = p.Ref(ref.Username)
	} else {
		a.log.Debug(ctx, "using cached profile", "username", ref.Username, "error", err)
	}
	if ref.ID == 0 {
		return fmt.Errorf("Profile %s not found.", ref.Username)
	}

	posts, err := a.postService.UserPosts(ctx, ref, a.sortBy)
	if err != nil {
		return err
	}
	if !a.nav.IsCurrent(gen) {
		return nil
	}

	header := "@" + ref.Username
	if ref.IsSuperuser {
		header += " [admin]"
	}
	a.println(styles.Title.Render(header))
	if ref.Email != "" {
		a.println(styles.Muted.Render(ref.Email))
	}
	if ref.AvatarURL != "" {
		a.println(styles.Muted.Render("avatar: " + ref.AvatarURL))
	}
	a.printPosts(posts)
	return nil
}

func (a *App) renderPost(ctx context.Context, id string) error {
	gen := a.nav.Generation()
	post, err := a.postService.Get(ctx, id)
	if err != nil {
		return err
	}
	comments, err := a.postService.Comments(ctx, id)
	if err != nil {
		return err
	}
	if !a.nav.IsCurrent(gen) {
		return nil
	}

	a.remember(*post)
	a.println(a.formatPost(post))
	a.printComments(comments)
	return nil
}

func (a *App) printPosts(posts []models.Post) {
	if len(posts) == 0 {
		a.println(styles.Muted.Render("No posts yet."))
		return
	}
	for _, p := range posts {
		a.remember(p)
		a.println(a.formatPost(&p))
	}
}

func (a *App) printComments(comments []models.Comment) {
	if len(comments) == 0 {
		a.println(styles.Muted.Render("No comments yet."))
		return
	}
	for _, c := range comments {
		author := "?"
		if c.Author != nil {
			author = c.Author.Username
		}
		a.println(fmt.Sprintf("  %s %s: %s",
			styles.Muted.Render(c.CreatedAt.Local().Format("2006-01-02 15:04")),
			styles.Title.Render(author), c.Text))
	}
}

func (a *App) formatPost(p *models.Post) string {
	liked := ""
	if p.IsLikedByCurrentUser {
		liked = " (liked)"
	}
	meta := fmt.Sprintf("#%d @%s · %s · %d likes%s · %d comments",
		p.ID, p.AuthorUsername, p.Timestamp.Local().Format("2006-01-02 15:04"),
		p.LikesCount, liked, p.CommentsCount)
	if services.CanModify(a.session, p) {
		meta += " · editable"
	}

	var b strings.Builder
	b.WriteString(styles.Muted.Render(meta))
	if p.Content != "" {
		b.WriteString("\n" + p.Content)
	}
	if p.ImageFile != "" {
		b.WriteString("\n" + styles.Muted.Render("image: "+p.ImageFile))
	}
	return styles.PostBox.Render(b.String())
}

func (a *App) remember(p models.Post) {
	a.posts[p.ID] = &p
}

func (a *App) Feed(ctx context.Context) error {
	a.nav.OpenPath(ctx, "/")
	return a.render(ctx)
}

func (a *App) Me(ctx context.Context) error {
	a.nav.OpenOwnProfile(ctx, a.session)
	return a.render(ctx)
}

// Profile opens a profile by username the same way a typed "/<username>"
// link is opened, so an unknown name lands on the feed.
func (a *App) Profile(ctx context.Context, username string) error {
	name := strings.TrimPrefix(username, "@")
	if name == "" {
		return fmt.Errorf("Usage: profile <username>")
	}
	a.nav.OpenPath(ctx, "/"+url.PathEscape(name))
	if st := a.nav.State(); st.Active != models.ViewProfile {
		a.println(styles.Muted.Render(fmt.Sprintf("Profile @%s not found.", name)))
	}
	return a.render(ctx)
}

func (a *App) Post(ctx context.Context, id string) error {
	a.nav.OpenPost(ctx, strings.TrimPrefix(id, "#"))
	return a.render(ctx)
}

// Open follows a deep link such as "/alice" or "/post/42".
func (a *App) Open(ctx context.Context, path string) error {
	a.nav.OpenPath(ctx, path)
	return a.render(ctx)
}

func (a *App) Back(ctx context.Context) error {
	if !a.nav.Back() {
		a.println("Nothing to go back to.")
		return nil
	}
	return a.render(ctx)
}

func (a *App) Sort(ctx context.Context, by string) error {
	a.sortBy = models.ParseSortBy(by)
	return a.render(ctx)
}
