package nav

import (
	"net/url"
	"strings"
)

type routeKind int

const (
	routeFeed routeKind = iota
	routeProfile
	routePost
)

type route struct {
	kind routeKind
	// username for routeProfile, post id for routePost
	arg string
}

// parseRoute maps a location to a route: "/<username>" is a profile,
// "/post/<id>" a post, anything else the feed.
func parseRoute(path string) route {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}
		if u, err := url.PathUnescape(s); err == nil {
			s = u
		}
		segments = append(segments, s)
	}

	switch {
	case len(segments) == 1:
		return route{kind: routeProfile, arg: segments[0]}
	case len(segments) == 2 && segments[0] == "post":
		return route{kind: routePost, arg: segments[1]}
	default:
		return route{kind: routeFeed}
	}
}

func profilePath(username string) string {
	return "/" + url.PathEscape(username)
}

func postPath(id string) string {
	return "/post/" + url.PathEscape(id)
}
