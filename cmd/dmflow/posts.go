package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/dmflow/internal/workflow"
	"github.com/spf13/cobra"
)

var postsFlags struct {
	kind   string
	search string
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the sample posts and reels",
	RunE:  runPosts,
}

func init() {
	postsCmd.Flags().StringVarP(&postsFlags.kind, "kind", "k", "all", "Filter by kind: all, post, reel")
	postsCmd.Flags().StringVarP(&postsFlags.search, "search", "s", "", "Filter by caption or author (case-insensitive)")
}

func runPosts(cmd *cobra.Command, args []string) error {
	kind, err := workflow.ParseKind(postsFlags.kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	posts := workflow.FilterPosts(workflow.SamplePosts(), postsFlags.search, kind)
	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts found. Try adjusting your search or filter.")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(out, "[%s] %-4s @%s • %s likes • %s comments • %s\n    %s\n",
			p.ID, p.Kind, p.Author, humanize.Comma(int64(p.Likes)), humanize.Comma(int64(p.Comments)), p.Age, p.Title())
	}
	return nil
}
