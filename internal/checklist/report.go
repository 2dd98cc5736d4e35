package checklist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samvad-hq/placeholder-checklist/internal/config"
	"github.com/samvad-hq/placeholder-checklist/pkg/placeholder"
	"gopkg.in/yaml.v3"
)

// Report collects the values each checklist step derives.
type Report struct {
	PostCount       int             `json:"post_count" yaml:"post_count"`
	Post            PostDetail      `json:"post" yaml:"post"`
	UserPosts       UserPosts       `json:"user_posts" yaml:"user_posts"`
	CommentUpdates  []CommentUpdate `json:"comment_updates" yaml:"comment_updates"`
	SwappedComments string          `json:"swapped_comments" yaml:"swapped_comments"`
	MissingPost     MissingPost     `json:"missing_post" yaml:"missing_post"`
}

type PostDetail struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Encoding  string `json:"encoding" yaml:"encoding"`
	PoweredBy string `json:"x_powered_by" yaml:"x_powered_by"`
}

type UserPosts struct {
	UserID int `json:"user_id" yaml:"user_id"`
	Count  int `json:"count" yaml:"count"`
}

// CommentUpdate pairs a comment id with the id the PUT response echoed.
type CommentUpdate struct {
	CommentID any `json:"comment_id" yaml:"comment_id"`
	EchoedID  any `json:"echoed_id" yaml:"echoed_id"`
}

type MissingPost struct {
	ID         int `json:"id" yaml:"id"`
	StatusCode int `json:"status_code" yaml:"status_code"`
}

// Render writes the report in the given format (text, json or yaml).
func (r *Report) Render(w io.Writer, format string) error {
	switch format {
	case "", config.ReportText:
		return r.renderText(w)
	case config.ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case config.ReportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func (r *Report) renderText(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("SC1:\nThere are %d posts in total.\n\n", r.PostCount)
	ew.printf("SC2:\nPost %d title: %s\nEncoded property: %s\nX-Powered-By: %s\n\n",
		r.Post.ID, r.Post.Title, r.Post.Encoding, r.Post.PoweredBy)
	ew.printf("SC3:\nUser ID %d has made %d posts.\n\n", r.UserPosts.UserID, r.UserPosts.Count)

	ew.printf("SC4:\n")
	for _, u := range r.CommentUpdates {
		ew.printf("PUT request for comment %s: %s\n", scalar(u.CommentID), scalar(u.EchoedID))
	}
	ew.printf("\nComments back to JSON formatted string:\n%s\n\n", r.SwappedComments)

	ew.printf("SC5:\nResponse code for Post #%d - %d\n\n", r.MissingPost.ID, r.MissingPost.StatusCode)
	ew.printf("Done.\n")
	return ew.err
}

// scalar renders a decoded JSON value the way it appears on the wire.
func scalar(v any) string {
	s, err := placeholder.Encode(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
