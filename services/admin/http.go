package admin

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

// Admin is the interface for the editor/admin service.
type Admin interface {
	ClaimEditor(ctx context.Context, eventID, pin string) (string, error)
	ReleaseEditor(ctx context.Context, editorToken string) error
	SubmitRound(ctx context.Context, editorToken, roundID string) error
	ResetRound(ctx context.Context, editorToken, roundID string) error
	SetMatchplayWinner(ctx context.Context, editorToken, roundID, player string) error
	SetGirWinner(ctx context.Context, editorToken, eventID, player string) error
	SetHandicapDropWinner(ctx context.Context, editorToken, eventID, player string) error
	SetStartingHandicap(ctx context.Context, editorToken, eventID, player string, handicap float64) error
	UpdateCourseHoles(ctx context.Context, editorToken, courseID string, holes []classic.Hole) error
	Seed(ctx context.Context, players []string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Admin

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/claim", h.claimHandler)
	r.POST("/release", h.releaseHandler)
	r.POST("/round/:round_id/submit", h.submitRoundHandler)
	r.POST("/round/:round_id/reset", h.resetRoundHandler)
	r.POST("/round/:round_id/matchplay-winner", h.matchplayWinnerHandler)
	r.POST("/event/:event_id/gir-winner", h.girWinnerHandler)
	r.POST("/event/:event_id/handicap-drop-winner", h.handicapDropWinnerHandler)
	r.POST("/event/:event_id/handicap", h.startingHandicapHandler)
	r.POST("/course/:course_id/holes", h.courseHolesHandler)
	r.POST("/seed", h.seedHandler)
}

type httpHandler struct {
	HTTPOptions
}

type claimRequest struct {
	EventID string `json:"eventId"`
	Pin     string `json:"pin"`
}

type playerRequest struct {
	Player string `json:"player"`
}

type handicapRequest struct {
	Player   string  `json:"player"`
	Handicap float64 `json:"handicap"`
}

type holesRequest struct {
	Holes []classic.Hole `json:"holes"`
}

type seedRequest struct {
	Players []string `json:"players"`
}

func (h *httpHandler) claimHandler(c *gin.Context) {
	var request claimRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	token, err := h.Service.ClaimEditor(c, request.EventID, request.Pin)
	if err != nil {
		if errors.Is(err, ErrWrongPin) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		log.Printf("Could not claim editor lock: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Editor lock claimed",
		"editorToken": token,
	})
}

func (h *httpHandler) releaseHandler(c *gin.Context) {
	err := h.Service.ReleaseEditor(c, editorToken(c))
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Editor lock released"})
}

func (h *httpHandler) submitRoundHandler(c *gin.Context) {
	roundID := c.Param("round_id")

	err := h.Service.SubmitRound(c, editorToken(c), roundID)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Round submitted", "roundId": roundID})
}

func (h *httpHandler) resetRoundHandler(c *gin.Context) {
	roundID := c.Param("round_id")

	err := h.Service.ResetRound(c, editorToken(c), roundID)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Round reset", "roundId": roundID})
}

func (h *httpHandler) matchplayWinnerHandler(c *gin.Context) {
	roundID := c.Param("round_id")

	var request playerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.SetMatchplayWinner(c, editorToken(c), roundID, request.Player)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Matchplay winner updated", "roundId": roundID})
}

func (h *httpHandler) girWinnerHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	var request playerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.SetGirWinner(c, editorToken(c), eventID, request.Player)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "GIR overall winner updated"})
}

func (h *httpHandler) handicapDropWinnerHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	var request playerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.SetHandicapDropWinner(c, editorToken(c), eventID, request.Player)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Handicap drop winner updated"})
}

func (h *httpHandler) startingHandicapHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	var request handicapRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.SetStartingHandicap(c, editorToken(c), eventID, request.Player, request.Handicap)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Starting handicap updated"})
}

func (h *httpHandler) courseHolesHandler(c *gin.Context) {
	courseID := c.Param("course_id")

	var request holesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.UpdateCourseHoles(c, editorToken(c), courseID, request.Holes)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course holes updated", "courseId": courseID})
}

func (h *httpHandler) seedHandler(c *gin.Context) {
	var request seedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	if len(request.Players) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "players list is required"})
		c.Abort()
		return
	}

	err := h.Service.Seed(c, request.Players)
	if respondError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database seeded"})
}

func editorToken(c *gin.Context) string {
	return c.GetHeader("X-Editor-Token")
}

// respondError writes the response for a failed admin call and reports
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
	if errors.Is(err, ErrUnknownPlayer) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return true
	}
	log.Printf("Admin call failed: %v\n", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	c.Abort()
	return true
}
