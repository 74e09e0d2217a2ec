package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doccompare/assistant"
	"doccompare/common"
	"doccompare/comparison"
	"doccompare/extraction"
	"doccompare/orchestrator"
	"doccompare/session"
	"doccompare/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct{ reply string }

func (f *fakeLLM) ModelName() string { return "fake" }

func (f *fakeLLM) Complete(context.Context, assistant.Request) (string, error) {
	return f.reply, nil
}

type fakeArchive map[string]*types.ComparisonResult

func (f fakeArchive) Load(_ context.Context, id string) (*types.ComparisonResult, error) {
	if res, ok := f[id]; ok {
		return res, nil
	}
	return nil, common.ErrNotArchived
}

func newTestRouter(t *testing.T, llm assistant.LLM) (*gin.Engine, *Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore()
	var explainer *assistant.Explainer
	var chat *assistant.Chatbot
	if llm != nil {
		explainer = assistant.NewExplainer(llm, "")
		chat = assistant.NewChatbot(llm, "")
	}
	o, err := orchestrator.New(orchestrator.Config{
		Comparator: comparison.New(comparison.Options{}),
		Store:      store,
		Extractor:  extraction.NewDefaultRegistry(),
		Explainer:  explainer,
		Chat:       chat,
	})
	require.NoError(t, err)

	d := &Deps{
		Orchestrator:   o,
		Store:          store,
		Explainer:      explainer,
		Chatbot:        chat,
		MaxUploadBytes: 1 << 10,
	}
	return NewRouter(d), d
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		fw, err := mw.CreateFormFile(name, name+".txt")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func compareJSON(a, b string) types.CompareRequest {
	return types.CompareRequest{
		Document1: &types.DocumentInput{Name: "a.txt", Text: &a},
		Document2: &types.DocumentInput{Name: "b.txt", Text: &b},
	}
}

func TestLatestBeforeAnyComparison(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doJSON(r, http.MethodGet, "/api/comparison/latest", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no comparison yet")
}

func TestCompareJSONThenLatest(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/compare", compareJSON("line1\nline2", "line1\nline2\nline3"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Comparison.Statistics.AddedCount)

	w = doJSON(r, http.MethodGet, "/api/comparison/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var latest types.ComparisonResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	assert.Equal(t, resp.Comparison.ID, latest.ID)
}

func TestCompareMultipart(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	body, ct := multipartBody(t, map[string][]byte{
		"file1": []byte("Article 1: Fee is $10"),
		"file2": []byte("Article 1: Fee is $20"),
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/compare", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Comparison.Statistics.ModifiedCount)
	assert.Equal(t, "file1.txt", resp.Comparison.Document1.Name)
}

func TestCompareErrors(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	tests := []struct {
		name   string
		files  map[string][]byte
		status int
	}{
		{"missing file", map[string][]byte{"file1": []byte("x")}, http.StatusBadRequest},
		{"too large", map[string][]byte{"file1": bytes.Repeat([]byte("a"), 2<<10), "file2": []byte("x")}, http.StatusRequestEntityTooLarge},
		{"binary content", map[string][]byte{"file1": []byte("ok"), "file2": []byte("bad\x00text")}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.files, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/compare", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}

	w := doJSON(r, http.MethodPost, "/api/compare", compareJSON("ok", "bad\x00"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompareRejectsMissingText(t *testing.T) {
	r, d := newTestRouter(t, nil)
	w := doJSON(r, http.MethodPost, "/api/compare", compareJSON("line1", "line1\nline2"))
	require.Equal(t, http.StatusOK, w.Code)
	before, err := d.Store.Latest()
	require.NoError(t, err)

	bodies := []string{
		`{"document1":{"name":"a","text":null},"document2":{"name":"b","text":"x"}}`,
		`{"document1":{"name":"a","text":"x"},"document2":{"name":"b"}}`,
		`{"document1":null,"document2":null}`,
		`{}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "invalid input")

			after, err := d.Store.Latest()
			require.NoError(t, err)
			assert.Equal(t, before.ID, after.ID)
		})
	}
}

func TestStatusForCompare(t *testing.T) {
	assert.Equal(t, http.StatusUnsupportedMediaType, statusForCompare(extraction.ErrUnsupportedFormat))
	assert.Equal(t, http.StatusServiceUnavailable, statusForCompare(extraction.ErrPDFToolNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, statusForCompare(context.DeadlineExceeded))
	assert.Equal(t, http.StatusBadRequest, statusForCompare(comparison.ErrInvalidInput))
	assert.Equal(t, http.StatusInternalServerError, statusForCompare(assert.AnError))
}

func TestChatStatusOrder(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doJSON(r, http.MethodPost, "/api/chat", ChatRequest{Question: "what changed?"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r, _ = newTestRouter(t, &fakeLLM{reply: "the fee"})
	w = doJSON(r, http.MethodPost, "/api/chat", ChatRequest{Question: ""})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/compare", compareJSON("Fee is $10", "Fee is $20"))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/chat", ChatRequest{Question: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/chat", ChatRequest{Question: "what changed?"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success  bool   `json:"success"`
		Answer   string `json:"answer"`
		Question string `json:"question"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "the fee", resp.Answer)
	assert.Equal(t, "what changed?", resp.Question)
}

func TestChatClear(t *testing.T) {
	r, d := newTestRouter(t, &fakeLLM{reply: "ok"})
	doJSON(r, http.MethodPost, "/api/compare", compareJSON("a", "b"))
	doJSON(r, http.MethodPost, "/api/chat", ChatRequest{Question: "why?"})
	require.NotEmpty(t, d.Chatbot.History())

	w := doJSON(r, http.MethodPost, "/api/chat/clear", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, d.Chatbot.History())
}

func TestExplainHunkEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doJSON(r, http.MethodGet, "/api/comparison/latest/hunks/x/explanation", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodGet, "/api/comparison/latest/hunks/0/explanation", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r, _ = newTestRouter(t, &fakeLLM{reply: "fee doubled"})
	w = doJSON(r, http.MethodGet, "/api/comparison/latest/hunks/0/explanation", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	doJSON(r, http.MethodPost, "/api/compare", compareJSON("Fee is $10", "Fee is $20"))
	w = doJSON(r, http.MethodGet, "/api/comparison/latest/hunks/0/explanation", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "fee doubled")

	w = doJSON(r, http.MethodGet, "/api/comparison/latest/hunks/5/explanation", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArchivedComparison(t *testing.T) {
	r, d := newTestRouter(t, nil)
	w := doJSON(r, http.MethodGet, "/api/comparisons/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	d.Archive = fakeArchive{"abc": {ID: "abc"}}
	w = doJSON(r, http.MethodGet, "/api/comparisons/abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"abc"`)

	w = doJSON(r, http.MethodGet, "/api/comparisons/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t, &fakeLLM{})
	w := doJSON(r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["ai_available"])
	assert.Equal(t, true, body["chatbot_available"])

	w = doJSON(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
