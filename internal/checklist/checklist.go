// Package checklist runs the fixed sequence of API calls the driver reports on.
package checklist

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/placeholder-checklist/internal/logger"
	"github.com/samvad-hq/placeholder-checklist/pkg/placeholder"
)

const (
	postsResource   = "posts"
	detailPostID    = 10
	reportedUserID  = 7
	commentedPostID = 8
	missingPostID   = 101
	poweredByHeader = "X-Powered-By"
)

// API is the subset of placeholder.Client the checklist drives.
type API interface {
	Get(ctx context.Context, resource string, opts ...placeholder.Option) (any, error)
	Put(ctx context.Context, resource string, body any, opts ...placeholder.Option) (any, error)
}

// Runner executes the checklist steps in order. Any failure aborts the run.
type Runner struct {
	api API
	log logger.Logger
}

// NewRunner wires a runner around the API client.
func NewRunner(api API, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Runner{api: api, log: log}
}

type step struct {
	name string
	fn   func(context.Context, *Report) error
}

// Run performs every step and returns the collected report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r == nil || r.api == nil {
		return nil, fmt.Errorf("checklist runner is not initialized")
	}

	steps := []step{
		{name: "count_posts", fn: r.countPosts},
		{name: "post_detail", fn: r.postDetail},
		{name: "user_posts", fn: r.userPosts},
		{name: "swap_comments", fn: r.swapComments},
		{name: "missing_post", fn: r.missingPost},
	}

	report := &Report{}
	for i, s := range steps {
		start := time.Now()
		if err := s.fn(ctx, report); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.name, err)
		}
		r.log.InfoObj("checklist step completed", "step_meta", map[string]any{
			"step":       i + 1,
			"name":       s.name,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	}
	return report, nil
}

func (r *Runner) allPosts(ctx context.Context) ([]any, error) {
	v, err := r.api.Get(ctx, postsResource)
	if err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}
	return placeholder.AsList(v)
}

func (r *Runner) countPosts(ctx context.Context, rep *Report) error {
	posts, err := r.allPosts(ctx)
	if err != nil {
		return err
	}
	rep.PostCount = len(posts)
	return nil
}

func (r *Runner) postDetail(ctx context.Context, rep *Report) error {
	resp, err := r.getFull(ctx, postsResource, detailPostID)
	if err != nil {
		return err
	}

	data, err := resp.JSON()
	if err != nil {
		return fmt.Errorf("parse post %d: %w", detailPostID, err)
	}
	title, _ := placeholder.Field(data, "title").(string)

	rep.Post = PostDetail{
		ID:        detailPostID,
		Title:     title,
		Encoding:  resp.Encoding,
		PoweredBy: resp.Header.Get(poweredByHeader),
	}
	return nil
}

func (r *Runner) userPosts(ctx context.Context, rep *Report) error {
	posts, err := r.allPosts(ctx)
	if err != nil {
		return err
	}

	count := 0
	for _, p := range posts {
		if uid, ok := placeholder.Int(placeholder.Field(p, "userId")); ok && uid == reportedUserID {
			count++
		}
	}
	rep.UserPosts = UserPosts{UserID: reportedUserID, Count: count}
	return nil
}

// swapComments swaps name and email on every comment of the post and PUTs
// each one back. The service only honors PUT at collection/id, so the echoed
// id on the nested path is expected to be empty.
func (r *Runner) swapComments(ctx context.Context, rep *Report) error {
	resource := fmt.Sprintf("%s/%d/comments", postsResource, commentedPostID)

	v, err := r.api.Get(ctx, resource)
	if err != nil {
		return fmt.Errorf("get comments: %w", err)
	}
	comments, err := placeholder.AsList(v)
	if err != nil {
		return err
	}

	updates := make([]CommentUpdate, 0, len(comments))
	for _, c := range comments {
		obj, err := placeholder.AsObject(c)
		if err != nil {
			return err
		}
		obj["name"], obj["email"] = obj["email"], obj["name"]

		payload, err := placeholder.Encode(obj)
		if err != nil {
			return err
		}
		echoed, err := r.api.Put(ctx, resource, payload)
		if err != nil {
			return fmt.Errorf("put comment %v: %w", obj["id"], err)
		}
		updates = append(updates, CommentUpdate{
			CommentID: obj["id"],
			EchoedID:  placeholder.Field(echoed, "id"),
		})
	}

	text, err := placeholder.Encode(comments)
	if err != nil {
		return err
	}
	rep.CommentUpdates = updates
	rep.SwappedComments = text
	return nil
}

func (r *Runner) missingPost(ctx context.Context, rep *Report) error {
	resp, err := r.getFull(ctx, postsResource, missingPostID)
	if err != nil {
		return err
	}
	rep.MissingPost = MissingPost{ID: missingPostID, StatusCode: resp.StatusCode}
	return nil
}

func (r *Runner) getFull(ctx context.Context, resource string, id int) (*placeholder.Response, error) {
	v, err := r.api.Get(ctx, resource, placeholder.WithID(id), placeholder.WithShape(placeholder.ShapeFull))
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", resource, id, err)
	}
	resp, ok := v.(*placeholder.Response)
	if !ok {
		return nil, fmt.Errorf("get %s %d: unexpected result %T", resource, id, v)
	}
	return resp, nil
}
