package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPostNotFound is returned when a post ID is not in the catalog.
var ErrPostNotFound = errors.New("post not found")

// Kind distinguishes regular posts from reels.
type Kind string

const (
	KindPost Kind = "post"
	KindReel Kind = "reel"
	KindAll  Kind = "" // Filter value matching every kind
)

// Post is a monitored piece of content. Posts are immutable sample records.
type Post struct {
	ID       string `json:"id" yaml:"id"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	ImageURL string `json:"image_url" yaml:"image_url"`
	Caption  string `json:"caption" yaml:"caption"`
	Author   string `json:"author" yaml:"author"`
	Likes    int    `json:"likes" yaml:"likes"`
	Comments int    `json:"comments" yaml:"comments"`
	Age      string `json:"age" yaml:"age"`
}

// Title returns the first line of the caption, used for {{post_title}}.
func (p Post) Title() string {
	title, _, _ := strings.Cut(p.Caption, "\n")
	return strings.TrimSpace(title)
}

var samplePosts = []Post{
	{
		ID:       "1",
		Kind:     KindPost,
		ImageURL: "https://images.unsplash.com/photo-1611162617213-7d7a39e9b1d7?w=400&h=400&fit=crop",
		Caption:  "Amazing sunset at the beach! 🌅 #sunset #beach #photography",
		Author:   "travel_lover",
		Likes:    1247,
		Comments: 89,
		Age:      "2 hours ago",
	},
	{
		ID:       "2",
		Kind:     KindReel,
		ImageURL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=400&fit=crop",
		Caption:  "Quick workout routine 💪 #fitness #workout #motivation",
		Author:   "fitness_guru",
		Likes:    2156,
		Comments: 156,
		Age:      "1 day ago",
	},
	{
		ID:       "3",
		Kind:     KindPost,
		ImageURL: "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400&h=400&fit=crop",
		Caption:  "Delicious homemade pasta! 🍝 #food #cooking #homemade",
		Author:   "foodie_chef",
		Likes:    892,
		Comments: 67,
		Age:      "3 days ago",
	},
	{
		ID:       "4",
		Kind:     KindReel,
		ImageURL: "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?w=400&h=400&fit=crop",
		Caption:  "New product launch! 🚀 #tech #innovation #startup",
		Author:   "tech_startup",
		Likes:    3421,
		Comments: 234,
		Age:      "1 week ago",
	},
	{
		ID:       "5",
		Kind:     KindReel,
		ImageURL: "https://www.youtube.com/embed/JoyKXJdWKOE",
		Caption: "🚀 NEW: Instagram Automation Tool! Automate your comment responses and grow your business! 💼✨\n\n" +
			"🔥 Comment \"interested\" below to get early access!\n\n" +
			"#automation #instagram #business #growth #marketing",
		Author:   "automation_master",
		Likes:    5421,
		Comments: 423,
		Age:      "Just now",
	},
}

// SamplePosts returns a copy of the built-in post catalog.
func SamplePosts() []Post {
	posts := make([]Post, len(samplePosts))
	copy(posts, samplePosts)
	return posts
}

// FindPost looks a post up by ID in the sample catalog.
func FindPost(id string) (Post, error) {
	for _, p := range samplePosts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("%w: %q", ErrPostNotFound, id)
}

// ParseKind parses a kind filter. "all" and "" map to KindAll.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return KindAll, nil
	case "post", "posts":
		return KindPost, nil
	case "reel", "reels":
		return KindReel, nil
	default:
		return KindAll, fmt.Errorf("invalid kind %q (want all, post or reel)", s)
	}
}

// FilterPosts returns the posts whose caption or author contains query
// (case-insensitive) and whose kind matches. KindAll matches every kind.
func FilterPosts(posts []Post, query string, kind Kind) []Post {
	q := strings.ToLower(query)
	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		matchesSearch := strings.Contains(strings.ToLower(p.Caption), q) ||
			strings.Contains(strings.ToLower(p.Author), q)
		matchesKind := kind == KindAll || p.Kind == kind
		if matchesSearch && matchesKind {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
