package board

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	leaderboard "github.com/october-classic/classic-live/pkg/leaderboard"
	classic "github.com/october-classic/classic-live/repos/classic"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Board is the interface for the read-only standings service.
type Board interface {
	Standings(ctx context.Context, eventID string) ([]leaderboard.Entry, error)
	Rounds(ctx context.Context, eventID string) ([]classic.Round, error)
	RoundScorecard(ctx context.Context, eventID, roundID string) (*Scorecard, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Board

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/:event_id", h.standingsHandler)
	r.GET("/:event_id/rounds", h.roundsHandler)
	r.GET("/:event_id/scorecard/:round_id", h.scorecardHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) standingsHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	entries, err := h.Service.Standings(c, eventID)
	if err != nil {
		log.Printf("Could not compute standings: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (h *httpHandler) roundsHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	rounds, err := h.Service.Rounds(c, eventID)
	if err != nil {
		log.Printf("Could not list rounds: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func (h *httpHandler) scorecardHandler(c *gin.Context) {
	eventID := c.Param("event_id")
	roundID := c.Param("round_id")

	card, err := h.Service.RoundScorecard(c, eventID, roundID)
	if err != nil {
		if errors.Is(err, ErrRoundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			c.Abort()
			return
		}
		log.Printf("Could not build scorecard: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, card)
}
