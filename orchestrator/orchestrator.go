package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"doccompare/cache"
	"doccompare/comparison"
	"doccompare/config"
	"doccompare/extraction"
	"doccompare/observability"
	"doccompare/session"
	"doccompare/types"

	"github.com/google/uuid"
)

// Extractor turns uploaded files into documents
type Extractor interface {
	ExtractAll(ctx context.Context, sources []extraction.Source) ([]types.Document, error)
}

// ResultCache is an optional store of results keyed by their inputs
type ResultCache interface {
	Get(ctx context.Context, key string) (*types.ComparisonResult, bool, error)
	Set(ctx context.Context, key string, res *types.ComparisonResult) error
}

// ResultArchive is an optional durable copy of every result
type ResultArchive interface {
	Save(ctx context.Context, res *types.ComparisonResult) (string, error)
}

// Explainer produces a summary of a comparison
type Explainer interface {
	Available() bool
	Explain(ctx context.Context, res *types.ComparisonResult) (string, error)
}

// ConversationResetter is told when a new result becomes the latest
type ConversationResetter interface {
	Reset(resultID string)
}

// Config wires the orchestrator. Comparator and Store are required; the rest
// are optional and skipped when nil.
type Config struct {
	Comparator  *comparison.Comparator
	Fingerprint string // identifies comparator options in cache keys
	Store       *session.Store
	Extractor   Extractor
	Cache       ResultCache
	Archive     ResultArchive
	Explainer   Explainer
	Chat        ConversationResetter
	Now         func() time.Time
}

// Orchestrator runs one comparison end to end:
// extract -> cache lookup -> compare -> store -> archive -> explain.
type Orchestrator struct {
	cfg Config
}

// Outcome is the result of one orchestrated comparison
type Outcome struct {
	Result           *types.ComparisonResult
	Explanation      string
	ExplanationError string
	Cached           bool
	Stored           bool
	ArchiveKey       string
}

// New creates an orchestrator
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Comparator == nil {
		return nil, errors.New("orchestrator: comparator is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("orchestrator: store is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Orchestrator{cfg: cfg}, nil
}

// Store returns the session store results are written to
func (o *Orchestrator) Store() *session.Store { return o.cfg.Store }

// CompareSources extracts both files and compares them
func (o *Orchestrator) CompareSources(ctx context.Context, src1, src2 extraction.Source, explain bool) (*Outcome, error) {
	if o.cfg.Extractor == nil {
		return nil, errors.New("orchestrator: no extractor configured")
	}
	docs, err := o.cfg.Extractor.ExtractAll(ctx, []extraction.Source{src1, src2})
	if err != nil {
		observability.RecordComparison("extraction_error", 0, nil)
		return nil, err
	}
	return o.CompareDocuments(ctx, docs[0], docs[1], explain)
}

// CompareDocuments compares two extracted documents. The session store is
// only updated if ctx is still live once the comparison is done.
func (o *Orchestrator) CompareDocuments(ctx context.Context, doc1, doc2 types.Document, explain bool) (*Outcome, error) {
	start := o.cfg.Now()
	key := cache.Key(o.cfg.Fingerprint, doc1.Text, doc2.Text)
	out := &Outcome{}

	if o.cfg.Cache != nil {
		res, ok, err := o.cfg.Cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Printf("Warning: cache lookup failed: %v", err)
		case ok:
			out.Result = restamp(res, doc1, doc2, start)
			out.Cached = true
		}
	}

	if out.Result == nil {
		res, err := o.cfg.Comparator.Compare(doc1, doc2)
		if err != nil {
			status := "error"
			if errors.Is(err, comparison.ErrInvalidInput) {
				status = "invalid_input"
			}
			observability.RecordComparison(status, 0, nil)
			return nil, err
		}
		out.Result = res
		if o.cfg.Cache != nil {
			if err := o.cfg.Cache.Set(ctx, key, res); err != nil {
				log.Printf("Warning: failed to cache result %s: %v", res.ID, err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		observability.RecordComparison("cancelled", 0, nil)
		return nil, fmt.Errorf("comparison abandoned: %w", err)
	}

	res := out.Result
	out.Stored = o.cfg.Store.Set(res)
	if !out.Stored {
		log.Printf("Warning: result %s is older than the stored one; not replacing it", res.ID)
	} else if o.cfg.Chat != nil {
		o.cfg.Chat.Reset(res.ID)
	}

	status := "success"
	if out.Cached {
		status = "cached"
	}
	observability.RecordComparison(status, o.cfg.Now().Sub(start), &res.Statistics)
	log.Printf("Compared %q with %q: +%d -%d ~%d (%.2f%% similar)",
		res.Document1.Name, res.Document2.Name,
		res.Statistics.AddedCount, res.Statistics.RemovedCount, res.Statistics.ModifiedCount,
		res.Statistics.SimilarityRatio*100)

	if o.cfg.Archive != nil {
		actx, cancel := context.WithTimeout(ctx, config.ArchiveTimeout)
		k, err := o.cfg.Archive.Save(actx, res)
		cancel()
		if err != nil {
			log.Printf("Warning: failed to archive result %s: %v", res.ID, err)
		} else {
			out.ArchiveKey = k
		}
	}

	if explain {
		o.explain(ctx, out)
	}
	return out, nil
}

func (o *Orchestrator) explain(ctx context.Context, out *Outcome) {
	if o.cfg.Explainer == nil || !o.cfg.Explainer.Available() {
		out.ExplanationError = "AI explanations are not configured"
		return
	}
	text, err := o.cfg.Explainer.Explain(ctx, out.Result)
	if err != nil {
		log.Printf("Warning: explanation failed: %v", err)
		out.ExplanationError = err.Error()
		return
	}
	out.Explanation = text
}

// restamp turns a cached result into a fresh one for this request.
func restamp(cached *types.ComparisonResult, doc1, doc2 types.Document, at time.Time) *types.ComparisonResult {
	res := *cached
	res.ID = uuid.NewString()
	res.CreatedAt = at
	res.Document1 = withRequestMeta(res.Document1, doc1.Meta)
	res.Document2 = withRequestMeta(res.Document2, doc2.Meta)
	return &res
}

func withRequestMeta(m, req types.DocumentMeta) types.DocumentMeta {
	m.Name = req.Name
	m.ContentType = req.ContentType
	if req.Size > 0 {
		m.Size = req.Size
	}
	if req.Pages > 0 {
		m.Pages = req.Pages
	}
	return m
}
