package placeholder

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/samvad-hq/placeholder-checklist/internal/fakeapi"
	"github.com/samvad-hq/placeholder-checklist/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures calls and answers with a canned response.
type recordingTransport struct {
	calls []recordedCall
	resp  *stubResponse
	err   error
}

type recordedCall struct {
	method string
	url    string
	body   any
}

type stubResponse struct {
	status int
	body   []byte
	header http.Header
}

func (s *stubResponse) Body() []byte        { return s.body }
func (s *stubResponse) StatusCode() int     { return s.status }
func (s *stubResponse) Status() string      { return "" }
func (s *stubResponse) Header() http.Header { return s.header }

func (r *recordingTransport) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	r.calls = append(r.calls, recordedCall{method: http.MethodGet, url: url})
	return r.reply()
}

func (r *recordingTransport) Put(_ context.Context, url string, body any, _ map[string]string) (httpclient.Response, error) {
	r.calls = append(r.calls, recordedCall{method: http.MethodPut, url: url, body: body})
	return r.reply()
}

func (r *recordingTransport) reply() (httpclient.Response, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.resp == nil {
		return &stubResponse{status: http.StatusOK, body: []byte(`{}`)}, nil
	}
	return r.resp, nil
}

func newRecordingClient(t *testing.T) (*Client, *recordingTransport) {
	t.Helper()
	tr := &recordingTransport{}
	c, err := NewClient("https://api.example", tr, nil)
	require.NoError(t, err)
	return c, tr
}

func newFakeClient(t *testing.T) *Client {
	t.Helper()
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, httpclient.NewRestyClient(5*time.Second), nil)
	require.NoError(t, err)
	return c
}

func TestNewClientValidatesEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "   ", "not a url", "/relative"} {
		_, err := NewClient(endpoint, nil, nil)
		assert.Error(t, err, endpoint)
	}

	c, err := NewClient(DefaultBaseURL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.Endpoint())
}

func TestRequestReturnsTypeMatchingShape(t *testing.T) {
	c := newFakeClient(t)
	ctx := context.Background()

	tests := []struct {
		method   string
		resource string
	}{
		{method: http.MethodGet, resource: "posts"},
		{method: http.MethodGet, resource: "posts/8/comments"},
		{method: "get", resource: "users"},
		{method: http.MethodPut, resource: "posts/12"},
		{method: "put", resource: "users/3"},
	}
	for _, tt := range tests {
		for _, shape := range []Shape{ShapeJSON, ShapeRaw, ShapeFull} {
			t.Run(tt.method+" "+tt.resource+" "+string(shape), func(t *testing.T) {
				v, err := c.Request(ctx, tt.method, tt.resource, nil, shape)
				require.NoError(t, err)

				switch shape {
				case ShapeJSON:
					switch v.(type) {
					case []any, map[string]any:
					default:
						t.Fatalf("expected decoded json, got %T", v)
					}
				case ShapeRaw:
					assert.IsType(t, []byte(nil), v)
				case ShapeFull:
					resp, ok := v.(*Response)
					require.True(t, ok, "expected *Response, got %T", v)
					assert.Equal(t, http.StatusOK, resp.StatusCode)
				}
			})
		}
	}
}

func TestRequestUnsupportedMethod(t *testing.T) {
	c, tr := newRecordingClient(t)

	v, err := c.Request(context.Background(), "post", "posts/25", nil, ShapeFull)
	assert.Nil(t, v)
	require.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Empty(t, tr.calls, "nothing should be sent for an unsupported method")
}

func TestRequestUnsupportedShape(t *testing.T) {
	c, tr := newRecordingClient(t)

	v, err := c.Request(context.Background(), http.MethodGet, "posts", nil, Shape("foo"))
	assert.Nil(t, v)
	require.ErrorIs(t, err, ErrUnsupportedShape)
	assert.False(t, errors.Is(err, ErrUnsupportedMethod))
	assert.Empty(t, tr.calls)
}

func TestRequestJoinsEndpointAndResourceVerbatim(t *testing.T) {
	c, tr := newRecordingClient(t)

	_, err := c.Request(context.Background(), http.MethodGet, "posts/8/comments?x=1", nil, ShapeRaw)
	require.NoError(t, err)
	require.Len(t, tr.calls, 1)
	assert.Equal(t, "https://api.example/posts/8/comments?x=1", tr.calls[0].url)
}

func TestGetPathUsesIDPresenceNotValue(t *testing.T) {
	c, tr := newRecordingClient(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "posts")
	require.NoError(t, err)
	_, err = c.Get(ctx, "posts", WithID(0))
	require.NoError(t, err)
	_, err = c.Get(ctx, "posts", WithID("abc"))
	require.NoError(t, err)
	_, err = c.Get(ctx, "posts", WithID(nil))
	require.NoError(t, err)

	var missing *int
	_, err = c.Get(ctx, "posts", WithID(missing))
	require.NoError(t, err)

	seven := 7
	_, err = c.Get(ctx, "posts", WithID(&seven))
	require.NoError(t, err)

	require.Len(t, tr.calls, 6)
	assert.Equal(t, "https://api.example/posts/", tr.calls[0].url)
	assert.Equal(t, "https://api.example/posts/0", tr.calls[1].url)
	assert.Equal(t, "https://api.example/posts/abc", tr.calls[2].url)
	assert.Equal(t, "https://api.example/posts/", tr.calls[3].url, "nil id means no id")
	assert.Equal(t, "https://api.example/posts/", tr.calls[4].url, "typed nil pointer means no id")
	assert.Equal(t, "https://api.example/posts/7", tr.calls[5].url)
	assert.NotEqual(t, tr.calls[0].url, tr.calls[1].url)
}

func TestPutWithIDFromMissingFieldTargetsCollection(t *testing.T) {
	c, tr := newRecordingClient(t)

	_, err := c.Put(context.Background(), "posts", "{}", WithID(Field(map[string]any{}, "id")))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example/posts/", tr.calls[0].url)
}

func TestPutForwardsBodyAndBuildsPath(t *testing.T) {
	c, tr := newRecordingClient(t)
	ctx := context.Background()

	_, err := c.Put(ctx, "posts", `{"title":"x"}`, WithID(5))
	require.NoError(t, err)
	_, err = c.Put(ctx, "posts/8/comments", map[string]any{})
	require.NoError(t, err)

	require.Len(t, tr.calls, 2)
	assert.Equal(t, http.MethodPut, tr.calls[0].method)
	assert.Equal(t, "https://api.example/posts/5", tr.calls[0].url)
	assert.Equal(t, `{"title":"x"}`, tr.calls[0].body)
	assert.Equal(t, "https://api.example/posts/8/comments/", tr.calls[1].url)
}

func TestGetIgnoresBodyForGet(t *testing.T) {
	c, tr := newRecordingClient(t)

	_, err := c.Request(context.Background(), http.MethodGet, "posts/1", "ignored", ShapeJSON)
	require.NoError(t, err)
	assert.Nil(t, tr.calls[0].body)
}

func TestTransportFailurePropagates(t *testing.T) {
	c, tr := newRecordingClient(t)
	tr.err = errors.New("dial tcp: connection refused")

	_, err := c.Get(context.Background(), "posts")
	require.Error(t, err)
	assert.ErrorIs(t, err, tr.err)
}

func TestJSONShapeFailsOnNonJSONBody(t *testing.T) {
	c, tr := newRecordingClient(t)
	tr.resp = &stubResponse{status: http.StatusInternalServerError, body: []byte("<html>oops</html>")}

	_, err := c.Get(context.Background(), "posts", WithID(101))
	assert.Error(t, err)

	v, err := c.Get(context.Background(), "posts", WithID(101), WithShape(ShapeFull))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, v.(*Response).StatusCode)
}

func TestGetAllUsersReturnsTenItems(t *testing.T) {
	c := newFakeClient(t)

	v, err := c.Get(context.Background(), "users")
	require.NoError(t, err)
	users, err := AsList(v)
	require.NoError(t, err)
	assert.Len(t, users, 10)
}

func TestGetLengths(t *testing.T) {
	c := newFakeClient(t)

	tests := []struct {
		resource string
		opts     []Option
		want     int
	}{
		{resource: "users", want: 10},
		{resource: "posts", opts: []Option{WithID(25)}, want: 4},
		{resource: "foo", want: 0},
		{resource: "posts", opts: []Option{WithID(101)}, want: 0},
	}
	for _, tt := range tests {
		v, err := c.Get(context.Background(), tt.resource, tt.opts...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, Len(v), tt.resource)
	}
}

func TestGetMissingPostFullResponseIs404(t *testing.T) {
	c := newFakeClient(t)

	v, err := c.Get(context.Background(), "posts", WithID(101), WithShape(ShapeFull))
	require.NoError(t, err)
	resp, ok := v.(*Response)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, resp.OK())
}

func TestPutEchoesIdentifier(t *testing.T) {
	c := newFakeClient(t)
	ctx := context.Background()

	tests := []struct {
		resource string
		opts     []Option
		want     any
	}{
		{resource: "posts", opts: []Option{WithID(5)}, want: 5},
		{resource: "users", opts: []Option{WithID(3)}, want: 3},
		{resource: "posts", want: nil},
		// The service only honors PUT at collection/id, so nested paths echo nothing.
		{resource: "posts/8/comments", want: nil},
	}
	for _, tt := range tests {
		v, err := c.Put(ctx, tt.resource, map[string]any{}, tt.opts...)
		require.NoError(t, err)

		id := Field(v, "id")
		if tt.want == nil {
			assert.Nil(t, id, tt.resource)
			continue
		}
		n, ok := Int(id)
		require.True(t, ok, tt.resource)
		assert.Equal(t, tt.want, n, tt.resource)
	}
}

func TestFullResponseExposesHeadersAndEncoding(t *testing.T) {
	c := newFakeClient(t)

	v, err := c.Get(context.Background(), "posts", WithID(10), WithShape(ShapeFull))
	require.NoError(t, err)
	resp := v.(*Response)

	assert.Equal(t, "utf-8", resp.Encoding)
	assert.Equal(t, fakeapi.PoweredBy, resp.Header.Get("x-powered-by"))

	data, err := resp.JSON()
	require.NoError(t, err)
	assert.Equal(t, fakeapi.PostTitle(10), Field(data, "title"))
}

func TestFullResponseDecodesIntoStruct(t *testing.T) {
	c := newFakeClient(t)

	v, err := c.Get(context.Background(), "posts", WithID(10), WithShape(ShapeFull))
	require.NoError(t, err)
	resp := v.(*Response)

	var post struct {
		UserID int    `json:"userId"`
		ID     int    `json:"id"`
		Title  string `json:"title"`
	}
	require.NoError(t, resp.DecodeJSON(&post))
	assert.Equal(t, 10, post.ID)
	assert.Equal(t, 1, post.UserID)
	assert.Equal(t, fakeapi.PostTitle(10), post.Title)
	assert.Contains(t, resp.Text(), `"title"`)
	assert.Equal(t, string(resp.Body()), resp.Text())

	var list []any
	assert.Error(t, resp.DecodeJSON(&list))
}
