package models

import (
	"sort"
	"time"
)

type Post struct {
	ID                   int64     `json:"id"`
	Author               *UserRef  `json:"author"`
	AuthorID             int64     `json:"author_id"`
	AuthorUsername       string    `json:"author_username"`
	AuthorAvatarURL      string    `json:"author_avatar_url"`
	AuthorIsSuperuser    bool      `json:"author_is_superuser"`
	Content              string    `json:"content"`
	ImageFile            string    `json:"image_file"`
	Timestamp            time.Time `json:"timestamp"`
	CommentsCount        int       `json:"comments_count"`
	LikesCount           int       `json:"likes_count"`
	IsLikedByCurrentUser bool      `json:"is_liked_by_current_user"`
}

// AuthorRef is the reference used to open the author's profile from a post.
// ok is false when the post carries no author id.
func (p *Post) AuthorRef() (ref ProfileRef, ok bool) {
	id := p.AuthorID
	if id == 0 && p.Author != nil {
		id = p.Author.ID
	}
	if id == 0 {
		return ProfileRef{}, false
	}
	return ProfileRef{
		ID:          id,
		Username:    p.AuthorUsername,
		IsSuperuser: p.AuthorIsSuperuser,
		AvatarURL:   p.AuthorAvatarURL,
	}, true
}

// ApplyLike records the outcome of a like toggle on the post.
func (p *Post) ApplyLike(liked bool) {
	p.IsLikedByCurrentUser = liked
	if liked {
		p.LikesCount++
	} else {
		p.LikesCount--
	}
}

type Comment struct {
	ID              int64     `json:"id"`
	Author          *UserRef  `json:"author"`
	AuthorAvatarURL string    `json:"author_avatar_url"`
	Post            int64     `json:"post"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"created_at"`
}

type LikeResult struct {
	Liked  bool   `json:"liked"`
	Detail string `json:"detail,omitempty"`
}

// SortBy orders post lists.
type SortBy string

const (
	SortByTime     SortBy = "time"
	SortByLikes    SortBy = "likes"
	SortByComments SortBy = "comments"
)

// ParseSortBy maps user input to a SortBy; unknown values sort by time.
func ParseSortBy(s string) SortBy {
	switch SortBy(s) {
	case SortByLikes, SortByComments:
		return SortBy(s)
	default:
		return SortByTime
	}
}

// SortPosts sorts posts in place: newest first for time, otherwise by the
// count in descending order. The sort is stable.
func SortPosts(posts []Post, by SortBy) {
	var less func(a, b *Post) bool
	switch by {
	case SortByLikes:
		less = func(a, b *Post) bool { return a.LikesCount > b.LikesCount }
	case SortByComments:
		less = func(a, b *Post) bool { return a.CommentsCount > b.CommentsCount }
	default:
		less = func(a, b *Post) bool { return a.Timestamp.After(b.Timestamp) }
	}
	sort.SliceStable(posts, func(i, j int) bool { return less(&posts[i], &posts[j]) })
}

// SortComments orders comments oldest first.
func SortComments(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}
