package reply

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		message string
		vars    Variables
		want    string
	}{
		{
			name:    "simple substitution",
			message: "Hey {{user_name}}, thanks!",
			vars:    Variables{UserName: "Ada"},
			want:    "Hey Ada, thanks!",
		},
		{
			name:    "all placeholders",
			message: "{{user_name}}|{{username}}|{{comment}}|{{post_title}}",
			vars:    Variables{UserName: "Ada", Username: "ada_l", Comment: "interested", PostTitle: "Launch"},
			want:    "Ada|ada_l|interested|Launch",
		},
		{
			name:    "repeated placeholder",
			message: "@{{username}} @{{username}}",
			vars:    Variables{Username: "x"},
			want:    "@x @x",
		},
		{
			name:    "unknown token untouched",
			message: "{{coupon}} for {{username}}",
			vars:    Variables{Username: "x"},
			want:    "{{coupon}} for x",
		},
		{
			name:    "empty values",
			message: "Hi {{user_name}}!",
			vars:    Variables{},
			want:    "Hi !",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Render(tt.message, tt.vars))
		})
	}
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		caret     int
		token     Placeholder
		want      string
		wantCaret int
	}{
		{"at start", "thanks!", 0, UserName, "{{user_name}}thanks!", 13},
		{"in middle", "Hi !", 3, Username, "Hi {{username}}!", 15},
		{"at end", "Hi ", 3, Comment, "Hi {{comment}}", 14},
		{"caret beyond end clamps", "Hi", 99, PostTitle, "Hi{{post_title}}", 16},
		{"negative caret clamps", "Hi", -5, Username, "{{username}}Hi", 12},
		{"rune offsets with emoji", "😊 yo", 1, UserName, "😊{{user_name}} yo", 14},
		{"empty message", "", 0, Comment, "{{comment}}", 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, caret := InsertAt(tt.message, tt.caret, tt.token)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantCaret, caret)
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Hi {{username}}, re {{comment}} and {{username}} {{coupon}}")
	require.Equal(t, []Placeholder{Username, Comment}, got)
	require.Empty(t, Tokens("no tokens here"))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 50))
	require.Equal(t, "abc...", Truncate("abcdef", 3))
	require.Equal(t, "🌅🌅...", Truncate("🌅🌅🌅", 2))
	require.Equal(t, "keep", Truncate("keep", 0))
}

func TestPlaceholderLabels(t *testing.T) {
	for _, p := range Placeholders() {
		require.Contains(t, p.Label(), string(p))
	}
}

func TestParsePlaceholder(t *testing.T) {
	for input, want := range map[string]Placeholder{
		"username":       Username,
		"{{user_name}}":  UserName,
		" Comment ":      Comment,
		"{{POST_TITLE}}": PostTitle,
	} {
		got, err := ParsePlaceholder(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParsePlaceholder("email")
	require.ErrorIs(t, err, ErrUnknownPlaceholder)
}
