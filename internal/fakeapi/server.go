// Package fakeapi serves an in-process stand-in for JSONPlaceholder with the
// same collection sizes and quirks: 100 posts, 10 users, 5 comments per post,
// `{}` bodies on 404, and PUT honored only at collection/id.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	PostCount          = 100
	UserCount          = 10
	CommentsPerPost    = 5
	PostsPerUser       = PostCount / UserCount
	PoweredBy          = "Express"
	jsonContentType    = "application/json; charset=utf-8"
	poweredByHeaderKey = "X-Powered-By"
)

type post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type comment struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

type user struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewServer starts an httptest server; callers Close it.
func NewServer() *httptest.Server {
	return httptest.NewServer(Handler())
}

// Handler returns the router without binding a listener.
func Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(poweredBy)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/posts", listPosts)
	r.Get("/posts/{id}", getPost)
	r.Put("/posts/{id}", putItem(PostCount))
	r.Get("/posts/{id}/comments", listPostComments)
	r.Get("/comments", listComments)
	r.Get("/users", listUsers)
	r.Get("/users/{id}", getUser)
	r.Put("/users/{id}", putItem(UserCount))

	return r
}

// PostTitle is the title the fake assigns to post id.
func PostTitle(id int) string { return fmt.Sprintf("post %d title", id) }

func newPost(id int) post {
	return post{
		UserID: (id-1)/PostsPerUser + 1,
		ID:     id,
		Title:  PostTitle(id),
		Body:   fmt.Sprintf("post %d body", id),
	}
}

func newComment(id int) comment {
	return comment{
		PostID: (id-1)/CommentsPerPost + 1,
		ID:     id,
		Name:   fmt.Sprintf("comment %d", id),
		Email:  fmt.Sprintf("commenter%d@example.com", id),
		Body:   fmt.Sprintf("comment %d body", id),
	}
}

func newUser(id int) user {
	return user{
		ID:       id,
		Name:     fmt.Sprintf("User %d", id),
		Username: fmt.Sprintf("user%d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
	}
}

func poweredBy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(poweredByHeaderKey, PoweredBy)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{})
}

// idParam returns the {id} path value when it lies in 1..limit.
func idParam(r *http.Request, limit int) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 || id > limit {
		return 0, false
	}
	return id, true
}

func listPosts(w http.ResponseWriter, _ *http.Request) {
	out := make([]post, 0, PostCount)
	for i := 1; i <= PostCount; i++ {
		out = append(out, newPost(i))
	}
	writeJSON(w, http.StatusOK, out)
}

func getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, PostCount)
	if !ok {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, newPost(id))
}

func listPostComments(w http.ResponseWriter, r *http.Request) {
	out := []comment{}
	if id, ok := idParam(r, PostCount); ok {
		first := (id-1)*CommentsPerPost + 1
		for i := first; i < first+CommentsPerPost; i++ {
			out = append(out, newComment(i))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func listComments(w http.ResponseWriter, _ *http.Request) {
	out := make([]comment, 0, PostCount*CommentsPerPost)
	for i := 1; i <= PostCount*CommentsPerPost; i++ {
		out = append(out, newComment(i))
	}
	writeJSON(w, http.StatusOK, out)
}

func listUsers(w http.ResponseWriter, _ *http.Request) {
	out := make([]user, 0, UserCount)
	for i := 1; i <= UserCount; i++ {
		out = append(out, newUser(i))
	}
	writeJSON(w, http.StatusOK, out)
}

func getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, UserCount)
	if !ok {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, newUser(id))
}

// putItem echoes a JSON object body merged with the numeric path id. Non-JSON
// bodies are accepted and ignored, as the real service does.
func putItem(limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, limit)
		if !ok {
			notFound(w, r)
			return
		}

		out := map[string]any{}
		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mt == "application/json" {
			raw, _ := io.ReadAll(r.Body)
			var obj map[string]any
			if json.Unmarshal(raw, &obj) == nil {
				for k, v := range obj {
					out[k] = v
				}
			}
		}
		out["id"] = id
		writeJSON(w, http.StatusOK, out)
	}
}
