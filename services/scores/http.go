package scores

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Scores is the interface for the score editing service.
type Scores interface {
	ApplyEdit(ctx context.Context, editorToken string, request EditRequest) error
	RoundScores(ctx context.Context, roundID string) ([]ScoreSummary, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Scores

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/edit", h.editHandler)
	r.GET("/round/:round_id", h.roundScoresHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) editHandler(c *gin.Context) {
	var request EditRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	editorToken := c.GetHeader("X-Editor-Token")

	err := h.Service.ApplyEdit(c, editorToken, request)
	if err != nil {
		if errors.Is(err, ErrNotEditor) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if errors.Is(err, ErrUnknownPlayer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		log.Printf("Could not apply edit: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Edit applied",
	})
}

func (h *httpHandler) roundScoresHandler(c *gin.Context) {
	roundID := c.Param("round_id")

	summaries, err := h.Service.RoundScores(c, roundID)
	if err != nil {
		log.Printf("Could not list round scores: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": summaries})
}
