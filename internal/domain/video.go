package domain

// SystemMetadata describes the upstream-managed properties of an indexed video.
type SystemMetadata struct {
	Filename   string   `json:"filename,omitempty"`
	Duration   float64  `json:"duration,omitempty"`
	VideoTitle string   `json:"video_title,omitempty"`
	FPS        float64  `json:"fps,omitempty"`
	Height     int      `json:"height,omitempty"`
	Width      int      `json:"width,omitempty"`
	Size       int64    `json:"size,omitempty"`
	ModelNames []string `json:"model_names,omitempty"`
}

// HLSInfo carries the playback URL and thumbnails for an indexed video.
type HLSInfo struct {
	VideoURL      string   `json:"video_url,omitempty"`
	ThumbnailURLs []string `json:"thumbnail_urls,omitempty"`
	Status        string   `json:"status,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// VideoItem is a single entry in an index listing.
type VideoItem struct {
	ID             string          `json:"_id"`
	CreatedAt      string          `json:"created_at,omitempty"`
	SystemMetadata *SystemMetadata `json:"system_metadata,omitempty"`
	HLS            *HLSInfo        `json:"hls,omitempty"`
	UserMetadata   map[string]any  `json:"user_metadata,omitempty"`
}

// DisplayName returns a human-readable name for the video, falling back to a
// suffix of the id when the upstream metadata carries no title.
func (v VideoItem) DisplayName() string {
	if v.SystemMetadata != nil {
		if v.SystemMetadata.Filename != "" {
			return v.SystemMetadata.Filename
		}
		if v.SystemMetadata.VideoTitle != "" {
			return v.SystemMetadata.VideoTitle
		}
	}
	id := v.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "Video " + id
}

// VideoDetail is the full record for a single indexed video, including any
// user metadata previously saved against it.
type VideoDetail struct {
	ID             string          `json:"_id"`
	IndexID        string          `json:"index_id,omitempty"`
	HLS            *HLSInfo        `json:"hls,omitempty"`
	SystemMetadata *SystemMetadata `json:"system_metadata,omitempty"`
	UserMetadata   map[string]any  `json:"user_metadata,omitempty"`
}

// ProductsMetadata returns the serialized product array stored in the video's
// user metadata, if any. Products are stored as a JSON string under the
// "products" key.
func (v VideoDetail) ProductsMetadata() (string, bool) {
	if v.UserMetadata == nil {
		return "", false
	}
	raw, ok := v.UserMetadata["products"]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// VideoList is a page of videos from an index listing.
type VideoList struct {
	Data []VideoItem `json:"data"`
}

// AnalysisMetadata is the user metadata written back after a video has been
// analyzed for products.
type AnalysisMetadata struct {
	Products   []Product
	AnalyzedAt string
	Reanalyzed bool
}

// SearchOptions control a detect-products search against the upstream index.
// VideoID and TimeRange narrow the search to one video or a slice of it.
type SearchOptions struct {
	SearchOptions []string  `json:"search_options,omitempty"`
	GroupBy       string    `json:"group_by,omitempty"`
	PageLimit     int       `json:"page_limit,omitempty"`
	Threshold     string    `json:"threshold,omitempty"`
	VideoID       string    `json:"video_id,omitempty"`
	TimeRange     []float64 `json:"time_range,omitempty"`
}

// SearchResult is a single upstream search hit.
type SearchResult struct {
	Score      float64        `json:"score,omitempty"`
	Confidence string         `json:"confidence,omitempty"`
	Start      float64        `json:"start,omitempty"`
	End        float64        `json:"end,omitempty"`
	VideoID    string         `json:"video_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// SearchResponse is the upstream reply to a search query.
type SearchResponse struct {
	Data []SearchResult `json:"data"`
}
