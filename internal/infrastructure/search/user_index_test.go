package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newFakeES(t *testing.T, status int, reply string) (*UserIndex, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := NewClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	return NewUserIndex(es, "users"), &seen
}

func TestUserIndexPut(t *testing.T) {
	idx, seen := newFakeES(t, http.StatusCreated, `{"result":"created"}`)
	u := entity.PublicUser{ID: "u-1", FirstName: "Ada", Email: "ada@example.com"}

	require.NoError(t, idx.Put(context.Background(), u))
	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/users/_doc/u-1", req.path)

	var doc entity.PublicUser
	require.NoError(t, json.Unmarshal([]byte(req.body), &doc))
	assert.Equal(t, u, doc)
}

func TestUserIndexPutError(t *testing.T) {
	idx, _ := newFakeES(t, http.StatusBadRequest, `{"error":"mapper_parsing_exception"}`)
	err := idx.Put(context.Background(), entity.PublicUser{ID: "u-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestUserIndexSearch(t *testing.T) {
	reply := `{"hits":{"hits":[
		{"_id":"u-1","_source":{"id":"u-1","firstName":"Ada","email":"ada@example.com"}},
		{"_id":"u-2","_source":{"firstName":"Ada","email":"ada2@example.com"}}
	]}}`
	idx, seen := newFakeES(t, http.StatusOK, reply)

	found, err := idx.Search(context.Background(), "ada", 500)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "u-1", found[0].ID)
	assert.Equal(t, "u-2", found[1].ID, "falls back to _id")

	req := (*seen)[0]
	assert.True(t, strings.HasPrefix(req.path, "/users/_search"))
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.body), &q))
	assert.EqualValues(t, maxSize, q["size"])
}

func TestUserIndexSearchSize(t *testing.T) {
	for _, tc := range []struct {
		in, want int
	}{
		{in: 0, want: defaultSize},
		{in: -3, want: defaultSize},
		{in: 20, want: 20},
		{in: maxSize, want: maxSize},
		{in: maxSize + 1, want: maxSize},
	} {
		idx, seen := newFakeES(t, http.StatusOK, `{"hits":{"hits":[]}}`)
		_, err := idx.Search(context.Background(), "ada", tc.in)
		require.NoError(t, err)

		var q map[string]any
		require.NoError(t, json.Unmarshal([]byte((*seen)[0].body), &q))
		assert.EqualValues(t, tc.want, q["size"], "size %d", tc.in)
	}
}

func TestUserIndexSearchError(t *testing.T) {
	idx, _ := newFakeES(t, http.StatusNotFound, `{"error":"index_not_found_exception"}`)
	_, err := idx.Search(context.Background(), "ada", 10)
	assert.Error(t, err)
}
