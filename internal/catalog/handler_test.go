package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/todoapi/logger"
)

const hitchhiker = "c2b2f7c3-2f3b-4b3a-8e7c-1a6b9c9d0b6a"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(New(Seed()...), logger.Nop()).RegisterRoutes(r)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerList(t *testing.T) {
	r := newRouter()

	tests := []struct {
		query string
		code  int
		count int
	}{
		{"", http.StatusOK, 4},
		{"?limit=2", http.StatusOK, 2},
		{"?limit=0", http.StatusOK, 4},
		{"?limit=99", http.StatusOK, 4},
		{"?limit=-1", http.StatusBadRequest, 0},
		{"?limit=two", http.StatusBadRequest, 0},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/books"+tc.query, "")
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.code != http.StatusOK {
				return
			}
			var books []Book
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
			assert.Len(t, books, tc.count)
		})
	}
}

func TestHandlerGetAndSummary(t *testing.T) {
	r := newRouter()

	w := serve(r, http.MethodGet, "/books/"+hitchhiker, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":5`)

	w = serve(r, http.MethodGet, "/books/"+hitchhiker+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "rating")
	assert.Contains(t, w.Body.String(), "Hitchhiker")
}

func TestHandlerNotFound(t *testing.T) {
	r := newRouter()
	missing := "/books/00000000-0000-4000-8000-000000000000"

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, missing, ""},
		{http.MethodGet, missing + "/summary", ""},
		{http.MethodPut, missing, `{"title":"t","author":"a","description":"d","rating":1}`},
		{http.MethodDelete, missing, ""},
	} {
		w := serve(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.method+" "+tc.path)
		assert.Equal(t, "Cannot find item with that ID", w.Header().Get("X-Error"))
		assert.Contains(t, w.Body.String(), "Item not found")
	}

	w := serve(r, http.MethodGet, "/books/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerCreateUpdateDelete(t *testing.T) {
	r := newRouter()

	w := serve(r, http.MethodPost, "/books", `{"title":"Mostly Harmless","author":"Douglas Adams","description":"The fifth book.","rating":4}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", created.ID.String())
	path := "/books/" + created.ID.String()

	w = serve(r, http.MethodPost, "/books", `{"id":"`+hitchhiker+`","title":"t","author":"a","description":"d","rating":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(r, http.MethodPut, path, `{"title":"Mostly Harmless","author":"Douglas Adams","description":"The fifth book.","rating":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 2, updated.Rating)

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, path, "").Code)
}

func TestHandlerCreateValidation(t *testing.T) {
	r := newRouter()
	for _, body := range []string{
		`{"title":"","author":"a","description":"d","rating":1}`,
		`{"title":"t","author":"a","description":"d","rating":6}`,
		`{"title":"t","author":"a","description":"","rating":3}`,
		`{"title":"` + strings.Repeat("x", 101) + `","author":"a","description":"d","rating":3}`,
		`[]`,
	} {
		w := serve(r, http.MethodPost, "/books", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}
