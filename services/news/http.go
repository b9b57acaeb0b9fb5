package news

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	classic "github.com/october-classic/classic-live/repos/classic"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// News is the interface for the news feed service.
type News interface {
	List(ctx context.Context, eventID string) ([]classic.NewsEntry, error)
	Create(ctx context.Context, editorToken, title, body string) (string, error)
	Update(ctx context.Context, editorToken, newsID, title, body string) error
	Delete(ctx context.Context, editorToken, newsID string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service News

	// The router for the open read routes.
	Router Router

	// The router for the editor-gated write routes, behind auth middleware.
	EditorRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}
	opts.Router.GET("/:event_id", h.listHandler)
	opts.EditorRouter.POST("/entry", h.createHandler)
	opts.EditorRouter.POST("/entry/:news_id", h.updateHandler)
	opts.EditorRouter.POST("/entry/:news_id/delete", h.deleteHandler)
}

type httpHandler struct {
	HTTPOptions
}

type entryRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *httpHandler) listHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	entries, err := h.Service.List(c, eventID)
	if err != nil {
		log.Printf("Could not list news: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": entries})
}

func (h *httpHandler) createHandler(c *gin.Context) {
	var request entryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	newsID, err := h.Service.Create(c, editorToken(c), request.Title, request.Body)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News posted", "newsId": newsID})
}

func (h *httpHandler) updateHandler(c *gin.Context) {
	newsID := c.Param("news_id")

	var request entryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.Update(c, editorToken(c), newsID, request.Title, request.Body)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News updated", "newsId": newsID})
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	newsID := c.Param("news_id")

	err := h.Service.Delete(c, editorToken(c), newsID)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News deleted", "newsId": newsID})
}

func editorToken(c *gin.Context) string {
	return c.GetHeader("X-Editor-Token")
}

// respondError writes the response for a failed news call and reports
// whether the handler should stop.
func respondError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotEditor) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		c.Abort()
		return true
	}
	if errors.Is(err, ErrEmptyEntry) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return true
	}
	if errors.Is(err, ErrUnknownEntry) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		c.Abort()
		return true
	}
	log.Printf("News call failed: %v\n", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	c.Abort()
	return true
}
