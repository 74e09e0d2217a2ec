package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"doccompare/assistant"
	"doccompare/common"
	"doccompare/comparison"
	"doccompare/config"
	"doccompare/extraction"
	"doccompare/orchestrator"
	"doccompare/session"
	"doccompare/types"

	"github.com/gin-gonic/gin"
)

// RegisterComparisonRoutes registers comparison endpoints.
func RegisterComparisonRoutes(r *gin.Engine, d *Deps) {
	r.POST("/api/compare", d.handleCompare)
	r.GET("/api/comparison/latest", d.handleLatest)
	r.GET("/api/comparison/latest/hunks/:index/explanation", d.handleExplainHunk)
	r.GET("/api/comparisons/:id", d.handleArchived)
}

// CompareResponse is returned by POST /api/compare
type CompareResponse struct {
	Success          bool                    `json:"success"`
	Comparison       *types.ComparisonResult `json:"comparison"`
	Explanation      string                  `json:"explanation,omitempty"`
	ExplanationError string                  `json:"explanation_error,omitempty"`
	Cached           bool                    `json:"cached"`
}

func (d *Deps) maxUpload() int64 {
	if d.MaxUploadBytes > 0 {
		return d.MaxUploadBytes
	}
	return config.DefaultMaxUploadBytes
}

// handleCompare accepts either two multipart files (file1, file2) or a JSON
// CompareRequest with already extracted text.
func (d *Deps) handleCompare(c *gin.Context) {
	// two documents plus form overhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*d.maxUpload()+1<<20)

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.CompareTimeout)
	defer cancel()

	var (
		out *orchestrator.Outcome
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var src1, src2 extraction.Source
		var explain bool
		src1, src2, explain, err = d.readUploads(c)
		if err != nil {
			c.JSON(statusForUpload(err), gin.H{"error": err.Error()})
			return
		}
		out, err = d.Orchestrator.CompareSources(ctx, src1, src2, explain)
	} else {
		var req types.CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		var doc1, doc2 types.Document
		doc1, doc2, err = orchestrator.RequestDocuments(&req)
		if err != nil {
			c.JSON(statusForCompare(err), gin.H{"error": err.Error()})
			return
		}
		out, err = d.Orchestrator.CompareDocuments(ctx, doc1, doc2, req.GenerateExplanation)
	}
	if err != nil {
		c.JSON(statusForCompare(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, CompareResponse{
		Success:          true,
		Comparison:       out.Result,
		Explanation:      out.Explanation,
		ExplanationError: out.ExplanationError,
		Cached:           out.Cached,
	})
}

var (
	errMissingFiles = errors.New("two files are required (file1, file2)")
	errTooLarge     = errors.New("file exceeds the upload limit")
)

func (d *Deps) readUploads(c *gin.Context) (extraction.Source, extraction.Source, bool, error) {
	fh1, err1 := c.FormFile("file1")
	fh2, err2 := c.FormFile("file2")
	if err1 != nil || err2 != nil {
		var mbe *http.MaxBytesError
		if errors.As(err1, &mbe) || errors.As(err2, &mbe) {
			return extraction.Source{}, extraction.Source{}, false, errTooLarge
		}
		return extraction.Source{}, extraction.Source{}, false, errMissingFiles
	}

	src1, err := d.readUpload(fh1)
	if err != nil {
		return extraction.Source{}, extraction.Source{}, false, err
	}
	src2, err := d.readUpload(fh2)
	if err != nil {
		return extraction.Source{}, extraction.Source{}, false, err
	}

	explain, _ := strconv.ParseBool(c.PostForm("generate_explanation"))
	return src1, src2, explain, nil
}

func (d *Deps) readUpload(fh *multipart.FileHeader) (extraction.Source, error) {
	if fh.Size > d.maxUpload() {
		return extraction.Source{}, fmt.Errorf("%w: %s is %d bytes", errTooLarge, fh.Filename, fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return extraction.Source{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, d.maxUpload()+1))
	if err != nil {
		return extraction.Source{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return extraction.Source{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func statusForUpload(err error) int {
	if errors.Is(err, errTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func statusForCompare(err error) int {
	switch {
	case errors.Is(err, comparison.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, extraction.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, extraction.ErrPDFToolNotFound):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// handleLatest returns the most recent comparison
func (d *Deps) handleLatest(c *gin.Context) {
	res, err := d.Store.Latest()
	if errors.Is(err, session.ErrNoComparison) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleExplainHunk asks the LLM about one difference of the latest comparison
func (d *Deps) handleExplainHunk(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	if !d.Explainer.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI explanations are not configured"})
		return
	}
	res, err := d.Store.Latest()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	text, err := d.Explainer.ExplainHunk(c.Request.Context(), res, index)
	switch {
	case errors.Is(err, assistant.ErrHunkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"comparison_id": res.ID,
		"index":         index,
		"explanation":   text,
	})
}

// handleArchived loads a past comparison from the archive
func (d *Deps) handleArchived(c *gin.Context) {
	id := c.Param("id")
	if res, ok := d.Store.Get(); ok && res.ID == id {
		c.JSON(http.StatusOK, res)
		return
	}
	if d.Archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comparison not found"})
		return
	}

	res, err := d.Archive.Load(c.Request.Context(), id)
	switch {
	case errors.Is(err, common.ErrNotArchived):
		c.JSON(http.StatusNotFound, gin.H{"error": "comparison not found"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
