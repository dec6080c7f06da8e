package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vidshop/backend/internal/domain"
	"github.com/vidshop/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	session        *usecase.Session
	cart           *usecase.CartService
	client         domain.VideoIntelligence
	defaultIndexID string
}

// NewHandler creates a new HTTP handler
func NewHandler(session *usecase.Session, cart *usecase.CartService, client domain.VideoIntelligence, defaultIndexID string) *Handler {
	return &Handler{
		session:        session,
		cart:           cart,
		client:         client,
		defaultIndexID: defaultIndexID,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vidshop-backend",
		"version": "1.0.0",
	})
}

// indexID resolves the index for a request: explicit query param first,
// configured default second.
func (h *Handler) indexID(c *gin.Context) string {
	if id := c.Query("index_id"); id != "" {
		return id
	}
	return h.defaultIndexID
}

// abortUpstream reduces an upstream client error to a single status + message.
func abortUpstream(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials), errors.Is(err, domain.ErrMissingIndexID):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// videoSummary decorates an index entry with its resolved display name so
// the frontend does not re-derive titles from system metadata.
type videoSummary struct {
	domain.VideoItem
	DisplayName string `json:"display_name"`
}

// ListVideos proxies the index listing
func (h *Handler) ListVideos(c *gin.Context) {
	indexID := h.indexID(c)
	if indexID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingIndexID.Error()})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	list, err := h.client.ListVideos(c.Request.Context(), indexID, limit)
	if err != nil {
		abortUpstream(c, err)
		return
	}

	items := make([]videoSummary, 0, len(list.Data))
	for _, v := range list.Data {
		items = append(items, videoSummary{VideoItem: v, DisplayName: v.DisplayName()})
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetVideo proxies a single video record
func (h *Handler) GetVideo(c *gin.Context) {
	indexID := h.indexID(c)
	if indexID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingIndexID.Error()})
		return
	}

	detail, err := h.client.GetVideo(c.Request.Context(), indexID, c.Param("id"))
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Analyze proxies a raw product analysis for a video
func (h *Handler) Analyze(c *gin.Context) {
	videoID := c.Query("video_id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_id is required"})
		return
	}

	data, err := h.client.Analyze(c.Request.Context(), videoID)
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// searchRequest is the body for detect-products searches.
type searchRequest struct {
	Query         string   `json:"query" binding:"required"`
	IndexID       string   `json:"index_id"`
	SearchOptions []string `json:"search_options"`
	GroupBy       string   `json:"group_by"`
	PageLimit     int      `json:"page_limit"`
	Threshold     string   `json:"threshold"`
}

// Search proxies a text search against the index
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	indexID := req.IndexID
	if indexID == "" {
		indexID = h.defaultIndexID
	}
	if indexID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingIndexID.Error()})
		return
	}

	resp, err := h.client.Search(c.Request.Context(), indexID, req.Query, domain.SearchOptions{
		SearchOptions: req.SearchOptions,
		GroupBy:       req.GroupBy,
		PageLimit:     req.PageLimit,
		Threshold:     req.Threshold,
	})
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// relatedProductsRequest describes what to find suggestions for. At least
// one of product_name or category must be set.
type relatedProductsRequest struct {
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	IndexID     string    `json:"index_id"`
	TimeRange   []float64 `json:"time_range"`
	Limit       int       `json:"limit"`
}

// RelatedProducts searches the video for items related to a detected product
// or category and maps the clip hits into purchasable suggestions
func (h *Handler) RelatedProducts(c *gin.Context) {
	var req relatedProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.ProductName == "" && req.Category == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_name or category is required"})
		return
	}
	if len(req.TimeRange) != 0 && len(req.TimeRange) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time_range must be [start, end]"})
		return
	}

	indexID := req.IndexID
	if indexID == "" {
		indexID = h.defaultIndexID
	}
	if indexID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingIndexID.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = usecase.DefaultRelatedLimit
	}

	query := usecase.RelatedQuery(req.ProductName, req.Category)
	opts := usecase.RelatedSearchOptions(c.Param("id"), req.TimeRange, limit)
	resp, err := h.client.Search(c.Request.Context(), indexID, query, opts)
	if err != nil {
		abortUpstream(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"related_products": usecase.RelatedFromSearch(resp, limit)})
}

// saveMetadataRequest is the body for the metadata passthrough.
type saveMetadataRequest struct {
	IndexID  string `json:"index_id"`
	Metadata struct {
		Products   []domain.Product `json:"products"`
		AnalyzedAt string           `json:"analyzed_at"`
		Reanalyzed bool             `json:"reanalyzed"`
	} `json:"metadata"`
}

// SaveMetadata persists user metadata against a video record
func (h *Handler) SaveMetadata(c *gin.Context) {
	var req saveMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid metadata body"})
		return
	}

	indexID := req.IndexID
	if indexID == "" {
		indexID = h.defaultIndexID
	}
	if indexID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingIndexID.Error()})
		return
	}

	err := h.client.UpdateMetadata(c.Request.Context(), indexID, c.Param("id"), domain.AnalysisMetadata{
		Products:   req.Metadata.Products,
		AnalyzedAt: req.Metadata.AnalyzedAt,
		Reanalyzed: req.Metadata.Reanalyzed,
	})
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Video metadata updated successfully"})
}

// SelectVideo runs the end-to-end selection flow for a video. Parse and
// upstream failures degrade to the sample catalog inside the session; only
// bad input or a stale selection produce a non-200 here.
func (h *Handler) SelectVideo(c *gin.Context) {
	force := c.Query("force_reanalyze") == "true"

	var (
		result *usecase.SelectionResult
		err    error
	)
	if force {
		result, err = h.session.Reanalyze(c.Request.Context(), c.Param("id"))
	} else {
		result, err = h.session.SelectVideo(c.Request.Context(), c.Param("id"))
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "video id is required"})
	case errors.Is(err, domain.ErrStaleSelection):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// tickRequest carries one playback time update.
type tickRequest struct {
	Time *float64 `json:"time" binding:"required"`
}

// SessionTick advances the viewer session to a playback time
func (h *Handler) SessionTick(c *gin.Context) {
	var req tickRequest
	if err := c.ShouldBindJSON(&req); err != nil || *req.Time < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time must be a non-negative number"})
		return
	}

	c.JSON(http.StatusOK, h.session.Tick(*req.Time))
}

// toggleRequest identifies a product by its composite key.
type toggleRequest struct {
	Brand       string    `json:"brand"`
	ProductName string    `json:"product_name" binding:"required"`
	Timeline    []float64 `json:"timeline" binding:"required"`
}

// ToggleCollapse flips a product's collapse state on behalf of the viewer
func (h *Handler) ToggleCollapse(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Timeline) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_name and timeline [start, end] are required"})
		return
	}

	collapsed := h.session.ToggleCollapse(domain.ProductKey{
		Brand: req.Brand,
		Name:  req.ProductName,
		Start: req.Timeline[0],
		End:   req.Timeline[1],
	})
	c.JSON(http.StatusOK, gin.H{"collapsed": collapsed, "manual_override": true})
}

// cartSummary renders the cart with its derived totals.
func (h *Handler) cartSummary() gin.H {
	return gin.H{
		"items":       h.cart.Items(),
		"total_items": h.cart.TotalItems(),
		"total_price": h.cart.TotalPrice(),
		"open":        h.cart.IsOpen(),
	}
}

// GetCart returns the cart contents and derived totals
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartSummary())
}

// addCartItemRequest is the body for adding a product to the cart. The id is
// optional: detected products have none and get one assigned.
type addCartItemRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Brand       string `json:"brand"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// AddCartItem adds a product to the cart, incrementing quantity on repeats
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	item := h.cart.AddItem(domain.CartItem{
		ID:          req.ID,
		Name:        req.Name,
		Brand:       req.Brand,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Quantity:    1,
	})

	summary := h.cartSummary()
	summary["item"] = item
	c.JSON(http.StatusCreated, summary)
}

// AddRelatedToCart adds a related-product suggestion to the cart
func (h *Handler) AddRelatedToCart(c *gin.Context) {
	var req domain.RelatedProduct
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	item := h.cart.AddItem(usecase.CartItemFromRelated(req))

	summary := h.cartSummary()
	summary["item"] = item
	c.JSON(http.StatusCreated, summary)
}

// ToggleCart flips the cart panel visibility
func (h *Handler) ToggleCart(c *gin.Context) {
	h.cart.ToggleOpen()
	c.JSON(http.StatusOK, h.cartSummary())
}

// updateQuantityRequest adjusts a cart item quantity by a signed amount.
type updateQuantityRequest struct {
	Change *int `json:"change" binding:"required"`
}

// UpdateCartQuantity adjusts an item's quantity; zero or below removes it
func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "change is required"})
		return
	}

	if err := h.cart.UpdateQuantity(c.Param("id"), *req.Change); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartSummary())
}

// RemoveCartItem removes an item regardless of quantity
func (h *Handler) RemoveCartItem(c *gin.Context) {
	if err := h.cart.RemoveItem(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartSummary())
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	c.JSON(http.StatusOK, h.cartSummary())
}
