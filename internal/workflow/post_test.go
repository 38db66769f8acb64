package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSamplePosts(t *testing.T) {
	posts := SamplePosts()
	require.Len(t, posts, 5)

	// Returned slice is a copy
	posts[0].Caption = "changed"
	require.NotEqual(t, "changed", SamplePosts()[0].Caption)
}

func TestFindPost(t *testing.T) {
	p, err := FindPost("5")
	require.NoError(t, err)
	require.Equal(t, "automation_master", p.Author)
	require.Equal(t, KindReel, p.Kind)

	_, err = FindPost("42")
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestFilterPosts(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		kind    Kind
		wantIDs []string
	}{
		{"everything", "", KindAll, []string{"1", "2", "3", "4", "5"}},
		{"reels only", "", KindReel, []string{"2", "4", "5"}},
		{"posts only", "", KindPost, []string{"1", "3"}},
		{"caption search case-insensitive", "PASTA", KindAll, []string{"3"}},
		{"author search", "guru", KindAll, []string{"2"}},
		{"search and kind", "#tech", KindPost, []string{}},
		{"no match", "zzz", KindAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPosts(SamplePosts(), tt.query, tt.kind)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			require.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseKind(t *testing.T) {
	for input, want := range map[string]Kind{"": KindAll, "all": KindAll, "Reels": KindReel, "post": KindPost} {
		got, err := ParseKind(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}
	_, err := ParseKind("story")
	require.Error(t, err)
}

func TestPostTitle(t *testing.T) {
	p, err := FindPost("5")
	require.NoError(t, err)
	require.Equal(t, "🚀 NEW: Instagram Automation Tool! Automate your comment responses and grow your business! 💼✨", p.Title())
}

func TestTemplates(t *testing.T) {
	require.Len(t, QuickTriggers(), 6)
	require.Len(t, ReplyTemplates(), 4)
	for _, tpl := range ReplyTemplates() {
		require.NotEmpty(t, tpl.Message)
	}
}
