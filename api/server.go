package api

import (
	"context"
	"os"

	"doccompare/assistant"
	"doccompare/orchestrator"
	"doccompare/session"
	"doccompare/types"

	"github.com/gin-gonic/gin"
)

// ArchiveLoader fetches archived results by id
type ArchiveLoader interface {
	Load(ctx context.Context, id string) (*types.ComparisonResult, error)
}

// Deps are the collaborators the handlers use. Explainer, Chatbot and
// Archive may be nil.
type Deps struct {
	Orchestrator   *orchestrator.Orchestrator
	Store          *session.Store
	Explainer      *assistant.Explainer
	Chatbot        *assistant.Chatbot
	Archive        ArchiveLoader
	MaxUploadBytes int64
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d *Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if os.Getenv(gin.EnvGinMode) != gin.ReleaseMode {
		r.Use(gin.Logger())
	}

	RegisterComparisonRoutes(r, d)
	RegisterChatRoutes(r, d)
	RegisterHealthRoutes(r, d)
	return r
}
