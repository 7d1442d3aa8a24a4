package ledger_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/sebuszqo/TxTracker/internal/ledger/ledgertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetsPath = "/api/widgets"

func newWidgetServer(seed ...widget) (*http.ServeMux, *ledgertest.MemTable[widget]) {
	repo, table := newWidgetRepo(seed...)
	handler := ledger.NewHandler[widget]("Widget", widgetsPath, repo, respondJSON, respondError, nil)

	mux := http.NewServeMux()
	handler.Register(mux)
	return mux, table
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "error", response["status"])
	return response
}

func TestCreate_WithoutID_Accepted(t *testing.T) {
	mux, _ := newWidgetServer()

	w := serve(mux, http.MethodPost, widgetsPath, `{"name":"Groceries"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	var created widget
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Groceries", created.Name)

	w = serve(mux, http.MethodGet, widgetsPath+"/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched widget
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
	assert.Equal(t, created, fetched)
}

func TestCreate_WithID_CreatedThenConflict(t *testing.T) {
	mux, _ := newWidgetServer()
	body := `{"id":"11111111-1111-1111-1111-111111111111","name":"Rent"}`

	w := serve(mux, http.MethodPost, widgetsPath, body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, widgetsPath+"/11111111-1111-1111-1111-111111111111", w.Header().Get("Location"))

	w = serve(mux, http.MethodPost, widgetsPath, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	response := decodeError(t, w)
	assert.Equal(t, "Widget with ID '11111111-1111-1111-1111-111111111111' already exists.", response["message"])
	assert.Equal(t, float64(http.StatusConflict), response["code"])
}

func TestCreate_BadRequests(t *testing.T) {
	mux, table := newWidgetServer()

	w := serve(mux, http.MethodPost, widgetsPath, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(mux, http.MethodPost, widgetsPath, `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Widget name is required", decodeError(t, w)["message"])

	assert.Equal(t, 0, table.Len())
}

func TestCreate_StoreFailureHidesDetail(t *testing.T) {
	mux, table := newWidgetServer()
	table.InsertErr = errors.New("pq: relation \"widgets\" does not exist")

	w := serve(mux, http.MethodPost, widgetsPath, `{"name":"Rent"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	response := decodeError(t, w)
	assert.Equal(t, "Error occurred when creating the widget.", response["message"])
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestGet(t *testing.T) {
	existing := widget{ID: uuid.New(), Name: "Rent"}
	mux, _ := newWidgetServer(existing)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "present", target: widgetsPath + "/" + existing.ID.String(), want: http.StatusOK},
		{name: "absent", target: widgetsPath + "/" + uuid.NewString(), want: http.StatusNotFound},
		{name: "malformed id", target: widgetsPath + "/not-a-guid", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(mux, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestList(t *testing.T) {
	seed := []widget{
		{ID: uuid.New(), Name: "a"},
		{ID: uuid.New(), Name: "b"},
		{ID: uuid.New(), Name: "c"},
	}
	mux, _ := newWidgetServer(seed...)

	tests := []struct {
		name    string
		query   string
		want    int
		wantLen int
	}{
		{name: "unpaginated by default", query: "", want: http.StatusOK, wantLen: 3},
		{name: "explicit sentinel", query: "?pageSize=-1", want: http.StatusOK, wantLen: 3},
		{name: "first page", query: "?page=1&pageSize=2", want: http.StatusOK, wantLen: 2},
		{name: "default page", query: "?pageSize=2", want: http.StatusOK, wantLen: 2},
		{name: "second page", query: "?page=2&pageSize=2", want: http.StatusOK, wantLen: 1},
		{name: "page beyond int offset", query: "?page=" + strconv.Itoa(math.MaxInt) + "&pageSize=2", want: http.StatusOK, wantLen: 0},
		{name: "negative page", query: "?page=-1&pageSize=10", want: http.StatusBadRequest},
		{name: "zero page size", query: "?pageSize=0", want: http.StatusBadRequest},
		{name: "non numeric", query: "?page=abc", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(mux, http.MethodGet, widgetsPath+tt.query, "")
			require.Equal(t, tt.want, w.Code)
			if tt.want != http.StatusOK {
				return
			}
			var items []widget
			require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
			assert.Len(t, items, tt.wantLen)
		})
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	mux, _ := newWidgetServer()

	w := serve(mux, http.MethodGet, widgetsPath, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestList_StoreFailure(t *testing.T) {
	mux, table := newWidgetServer()
	table.Err = errors.New("db down")

	w := serve(mux, http.MethodGet, widgetsPath, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error occurred when retrieving the widget list.", decodeError(t, w)["message"])
}

func TestPut(t *testing.T) {
	existing := widget{ID: uuid.New(), Name: "Old"}
	mux, table := newWidgetServer(existing)

	w := serve(mux, http.MethodPut, widgetsPath, `{"id":"`+existing.ID.String()+`","name":"New"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	freshID := uuid.New()
	w = serve(mux, http.MethodPut, widgetsPath, `{"id":"`+freshID.String()+`","name":"Utilities"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, widgetsPath+"/"+freshID.String(), w.Header().Get("Location"))

	w = serve(mux, http.MethodPut, widgetsPath, `{"id":"`+existing.ID.String()+`","name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(mux, http.MethodPut, widgetsPath, `{"name":"No id"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 1, table.Updates)
}

func TestPut_StoreFailureHidesDetail(t *testing.T) {
	mux, table := newWidgetServer()
	table.Err = errors.New("connection refused")

	w := serve(mux, http.MethodPut, widgetsPath, `{"id":"`+uuid.NewString()+`","name":"Utilities"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error occurred when attempting to save the widget.", decodeError(t, w)["message"])
}

func TestDelete(t *testing.T) {
	existing := widget{ID: uuid.New(), Name: "Rent"}
	mux, table := newWidgetServer(existing)

	w := serve(mux, http.MethodDelete, widgetsPath+"/not-a-guid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(mux, http.MethodDelete, widgetsPath+"/"+existing.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, 0, table.Len())

	w = serve(mux, http.MethodDelete, widgetsPath+"/"+existing.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(mux, http.MethodGet, widgetsPath+"/"+existing.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterAt_ServesAliasWithBaseLocation(t *testing.T) {
	repo, _ := newWidgetRepo()
	handler := ledger.NewHandler[widget]("Widget", widgetsPath, repo, respondJSON, respondError, nil)
	mux := http.NewServeMux()
	handler.Register(mux)
	handler.RegisterAt(mux, "/widgets")
	id := uuid.New()

	w := serve(mux, http.MethodPost, "/widgets", `{"id":"`+id.String()+`","name":"Rent"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, widgetsPath+"/"+id.String(), w.Header().Get("Location"))

	for _, target := range []string{"/widgets/" + id.String(), widgetsPath + "/" + id.String()} {
		w = serve(mux, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, w.Code, target)
	}

	w = serve(mux, http.MethodDelete, "/widgets/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(mux, http.MethodGet, widgetsPath+"/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewHandler_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() {
		ledger.NewHandler[widget]("Widget", widgetsPath, nil, respondJSON, respondError, nil)
	})
}
