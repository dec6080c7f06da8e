package usecase

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vidshop/backend/internal/domain"
)

// Sources reported in a SelectionResult.
const (
	SourceMetadata = "metadata" // products read from saved user metadata
	SourceAnalysis = "analysis" // freshly analyzed and saved upstream
	SourceCache    = "cache"    // analysis result served from the local cache
	SourceSample   = "sample"   // bundled demo catalog fallback
)

// SessionConfig holds configuration for a viewer session.
type SessionConfig struct {
	DefaultIndexID string
	AnalyzeTimeout time.Duration
	CacheTTL       time.Duration
}

// SelectionResult describes the outcome of a video selection.
type SelectionResult struct {
	VideoID  string           `json:"video_id"`
	VideoURL string           `json:"video_url,omitempty"`
	Products []domain.Product `json:"products"`
	Source   string           `json:"source"`

	// AnalysisError carries the reduced, human-readable message when the
	// selection fell back to the sample catalog. The selection itself
	// still succeeds.
	AnalysisError string `json:"analysis_error,omitempty"`
}

// ProductState is one product's resolved UI state at a point in time.
type ProductState struct {
	Brand          string    `json:"brand"`
	ProductName    string    `json:"product_name"`
	Timeline       []float64 `json:"timeline"`
	Active         bool      `json:"active"`
	Collapsed      bool      `json:"collapsed"`
	ManualOverride bool      `json:"manual_override"`
}

// TickResult is the session's reconciled state after a playback tick.
type TickResult struct {
	Time            float64          `json:"time"`
	Changed         bool             `json:"changed"`
	VisibleProducts []domain.Product `json:"visible_products"`
	States          []ProductState   `json:"states"`
}

// Session is the explicit application-state object for one viewer: the
// current product list, the collapse engine, and the selection generation
// counter that guards against stale analysis responses.
type Session struct {
	client domain.VideoIntelligence
	cache  domain.CacheRepository
	config SessionConfig

	// selection increments at the start of every SelectVideo call; a
	// response tagged with an older value is discarded.
	selection atomic.Int64

	mu       sync.Mutex
	videoID  string
	products []domain.Product
	engine   *CollapseEngine
}

// NewSession creates a viewer session with dependencies.
func NewSession(client domain.VideoIntelligence, cache domain.CacheRepository, config SessionConfig) *Session {
	if config.AnalyzeTimeout <= 0 {
		config.AnalyzeTimeout = 120 * time.Second
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 24 * time.Hour
	}
	return &Session{
		client: client,
		cache:  cache,
		config: config,
		engine: NewCollapseEngine(),
	}
}

// SelectVideo switches the session to a video and resolves its product list.
// Flow: saved metadata -> local cache -> fresh analysis (normalized and saved
// back upstream). Any parse or upstream failure degrades to the sample
// catalog with a logged, non-fatal error; only a stale selection is
// reported as an error.
func (s *Session) SelectVideo(ctx context.Context, videoID string) (*SelectionResult, error) {
	return s.selectVideo(ctx, videoID, false)
}

// Reanalyze forces a fresh analysis for the video, ignoring saved metadata
// and the local cache.
func (s *Session) Reanalyze(ctx context.Context, videoID string) (*SelectionResult, error) {
	return s.selectVideo(ctx, videoID, true)
}

func (s *Session) selectVideo(ctx context.Context, videoID string, force bool) (*SelectionResult, error) {
	sel := s.selection.Add(1)

	if videoID == "" {
		return nil, domain.ErrInvalidRequest
	}

	indexID := s.config.DefaultIndexID
	if indexID == "" {
		log.Printf("[SESSION] No index id configured, serving sample catalog")
		return s.fallback(sel, videoID, "", domain.ErrMissingIndexID.Error())
	}

	detail, err := s.client.GetVideo(ctx, indexID, videoID)
	if err != nil {
		log.Printf("[SESSION] Failed to load video %s: %v", videoID, err)
		return s.fallback(sel, videoID, "", "failed to load video: "+err.Error())
	}

	videoURL := ""
	if detail.HLS != nil {
		videoURL = detail.HLS.VideoURL
	}

	// Saved metadata wins unless a re-analysis was requested.
	if !force {
		if raw, ok := detail.ProductsMetadata(); ok {
			products, err := Normalize(raw)
			if err != nil {
				log.Printf("[SESSION] Saved metadata for %s is unparseable: %v", videoID, err)
				return s.fallback(sel, videoID, videoURL, "saved product metadata could not be parsed")
			}
			return s.apply(sel, videoID, videoURL, products, SourceMetadata, "")
		}

		if cached, err := s.cache.Get(ctx, analysisCacheKey(videoID)); err == nil {
			if products, ok := cached.([]domain.Product); ok {
				return s.apply(sel, videoID, videoURL, products, SourceCache, "")
			}
		}
	}

	log.Printf("[SESSION] Analyzing video %s (force=%v)", videoID, force)
	analyzeCtx, cancel := context.WithTimeout(ctx, s.config.AnalyzeTimeout)
	defer cancel()

	raw, err := s.client.Analyze(analyzeCtx, videoID)
	if err != nil {
		log.Printf("[SESSION] Analysis failed for %s: %v", videoID, err)
		return s.fallback(sel, videoID, videoURL, "video analysis failed: "+err.Error())
	}

	products, err := Normalize(raw)
	if err != nil {
		log.Printf("[SESSION] Analysis response for %s is unparseable: %v", videoID, err)
		return s.fallback(sel, videoID, videoURL, "analysis response could not be parsed")
	}

	// The save step is part of the batch: a failed save aborts, matching the
	// all-or-nothing parse semantics.
	md := domain.AnalysisMetadata{
		Products:   products,
		AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
		Reanalyzed: force,
	}
	if err := s.client.UpdateMetadata(ctx, indexID, videoID, md); err != nil {
		log.Printf("[SESSION] Failed to save metadata for %s: %v", videoID, err)
		return s.fallback(sel, videoID, videoURL, "failed to save analysis metadata: "+err.Error())
	}

	if err := s.cache.Set(ctx, analysisCacheKey(videoID), products, s.config.CacheTTL); err != nil {
		log.Printf("[SESSION] Failed to cache analysis for %s: %v", videoID, err)
	}

	return s.apply(sel, videoID, videoURL, products, SourceAnalysis, "")
}

// apply installs a resolved product list, unless the selection has moved on.
// The counter is checked under s.mu so a slow older selection cannot install
// over state a newer one already put in place.
func (s *Session) apply(sel int64, videoID, videoURL string, products []domain.Product, source, message string) (*SelectionResult, error) {
	s.mu.Lock()
	if s.selection.Load() != sel {
		s.mu.Unlock()
		log.Printf("[SESSION] Discarding stale result for %s", videoID)
		return nil, domain.ErrStaleSelection
	}
	s.videoID = videoID
	s.products = products
	s.engine.Reset(products)
	s.mu.Unlock()

	return &SelectionResult{
		VideoID:       videoID,
		VideoURL:      videoURL,
		Products:      products,
		Source:        source,
		AnalysisError: message,
	}, nil
}

// fallback installs the sample catalog with a recorded error message.
func (s *Session) fallback(sel int64, videoID, videoURL, message string) (*SelectionResult, error) {
	return s.apply(sel, videoID, videoURL, SampleProducts(), SourceSample, message)
}

// Tick advances the session to playback time t, recomputing the visible set
// and reconciling collapse state. Safe for arbitrary (backward) jumps.
func (s *Session) Tick(t float64) TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := ActiveProducts(s.products, t)
	changed := s.engine.Tick(s.products, t)

	states := make([]ProductState, 0, len(s.products))
	for _, p := range s.products {
		key := p.Key()
		states = append(states, ProductState{
			Brand:          p.Brand,
			ProductName:    p.ProductName,
			Timeline:       p.Timeline,
			Active:         p.ActiveAt(t),
			Collapsed:      s.engine.Collapsed(key),
			ManualOverride: s.engine.ManualOverride(key),
		})
	}

	return TickResult{
		Time:            t,
		Changed:         changed,
		VisibleProducts: visible,
		States:          states,
	}
}

// ToggleCollapse flips the collapse state for a product key on behalf of the
// viewer. Returns the new collapsed state.
func (s *Session) ToggleCollapse(key domain.ProductKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Toggle(key)
}

// Products returns the session's current product list.
func (s *Session) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// VideoID returns the currently selected video id.
func (s *Session) VideoID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoID
}

func analysisCacheKey(videoID string) string {
	return "analysis:" + videoID
}
