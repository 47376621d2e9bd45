package nav

import (
	"context"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
)

// resolve derives the view state from path, fetching the profile or post
// it names. Lookup failures fall back to the feed and are only logged.
func (n *Navigator) resolve(ctx context.Context, path string) {
	r := parseRoute(path)
	gen := n.newGeneration()

	switch r.kind {
	case routeProfile:
		profile, err := n.lookup.GetProfileByUsername(ctx, r.arg)
		if err != nil {
			n.log.Error(ctx, "Failed to load profile by path", "path", path, "error", err)
			n.commit(ctx, gen, func(st *models.ViewState) {
				st.Active = models.ViewFeed
				st.ProfileTarget = nil
			})
			return
		}
		ref := profile.Ref(r.arg)
		n.commit(ctx, gen, func(st *models.ViewState) {
			st.Active = models.ViewProfile
			st.ProfileTarget = &ref
		})

	case routePost:
		if _, err := n.lookup.GetPost(ctx, r.arg); err != nil {
			n.log.Error(ctx, "Failed to load post by path", "path", path, "error", err)
			n.commit(ctx, gen, func(st *models.ViewState) {
				st.Active = models.ViewFeed
				st.PostTarget = ""
			})
			return
		}
		n.commit(ctx, gen, func(st *models.ViewState) {
			st.Active = models.ViewPost
			st.PostTarget = r.arg
		})

	default:
		n.commit(ctx, gen, func(st *models.ViewState) {
			*st = models.ViewState{Active: models.ViewFeed}
		})
	}
}
