package domain

import (
	"context"
	"time"
)

// VideoIntelligence defines the interface for the upstream
// video-understanding service.
type VideoIntelligence interface {
	// Analyze runs the product-detection prompt against a video and returns
	// the raw response text, which may be a markdown-fenced JSON array.
	Analyze(ctx context.Context, videoID string) (string, error)

	// Search runs a text query against an index.
	Search(ctx context.Context, indexID, query string, opts SearchOptions) (*SearchResponse, error)

	// ListVideos returns up to limit videos from an index, newest first.
	ListVideos(ctx context.Context, indexID string, limit int) (*VideoList, error)

	// GetVideo returns the full record for a single video.
	GetVideo(ctx context.Context, indexID, videoID string) (*VideoDetail, error)

	// UpdateMetadata persists user metadata against a video record.
	UpdateMetadata(ctx context.Context, indexID, videoID string, md AnalysisMetadata) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CartStore persists the cart snapshot to a local key-value store. Load
// failures degrade to an empty cart; they never propagate to the viewer.
type CartStore interface {
	Load() ([]CartItem, error)
	Save(items []CartItem) error
}
