package http

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/business/calculator"
	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/export"
	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/repository"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/util"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	textContentType = "text/plain; charset=utf-8"
)

// Router wires HTTP handlers.
type Router struct {
	sessions *repository.SessionRepository
	floors   model.FloorSet
	origins  string
	logger   *zap.Logger
}

func NewRouter(sessions *repository.SessionRepository, floors model.FloorSet, allowedOrigins string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		sessions: sessions,
		floors:   floors,
		origins:  allowedOrigins,
		logger:   logger,
	}

	router := gin.New()
	router.Use(r.requestLogger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/floors", r.listFloors)
		api.POST("/calculate", r.calculate)

		api.POST("/sessions", r.createSession)
		api.GET("/sessions/:id", r.getSession)
		api.DELETE("/sessions/:id", r.deleteSession)
		api.PUT("/sessions/:id/active-floor", r.setActiveFloor)

		api.POST("/sessions/:id/rooms", r.addRoom)
		api.POST("/sessions/:id/rooms/remove-excluded", r.removeExcluded)
		api.PATCH("/sessions/:id/rooms/:rowId", r.editRoom)
		api.DELETE("/sessions/:id/rooms/:rowId", r.deleteRoom)

		api.POST("/sessions/:id/stairs", r.addStair)
		api.PATCH("/sessions/:id/stairs/:rowId", r.editStair)
		api.DELETE("/sessions/:id/stairs/:rowId", r.deleteStair)

		api.GET("/sessions/:id/summary", r.getSummary)
		api.GET("/sessions/:id/export.csv", r.exportCSV)
		api.GET("/sessions/:id/export.xlsx", r.exportXLSX)
	}

	return router
}

func (r *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		r.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// corsMiddleware allows any origin when none are configured. Otherwise only
// listed origins are echoed back; others get no Access-Control-Allow-Origin.
func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		if allowed := allowOrigin(trimmed, c.GetHeader("Origin")); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, If-None-Match")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Expose-Headers", "ETag")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func allowOrigin(allowed []string, origin string) string {
	if len(allowed) == 0 {
		return "*"
	}
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if origin != "" && o == origin {
			return origin
		}
	}
	return ""
}

// fail maps domain errors onto status codes.
func (r *Router) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound), errors.Is(err, calculator.ErrRowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, calculator.ErrEmptyName),
		errors.Is(err, calculator.ErrInvalidDimensions),
		errors.Is(err, calculator.ErrInvalidStair),
		errors.Is(err, calculator.ErrUnknownFloor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		r.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type sessionView struct {
	SessionID string           `json:"sessionId"`
	State     calculator.State `json:"state"`
	Report    model.Report     `json:"report"`
}

func (r *Router) respondState(c *gin.Context, status int, id string, state calculator.State) {
	c.JSON(status, sessionView{
		SessionID: id,
		State:     state,
		Report:    state.Report(),
	})
}

func (r *Router) listFloors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"floors": r.floors})
}

func (r *Router) calculate(c *gin.Context) {
	var req calculateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	rooms := make([]model.Room, 0, len(req.Rooms))
	for _, rr := range req.Rooms {
		room, err := calculator.ParseRoomForm(rr.form(), r.floors)
		if err != nil {
			r.fail(c, err)
			return
		}
		rooms = append(rooms, room)
	}
	stairs := make([]model.Stair, 0, len(req.Stairs))
	for _, sr := range req.Stairs {
		stair, err := calculator.ParseStairForm(sr.form(), r.floors)
		if err != nil {
			r.fail(c, err)
			return
		}
		stairs = append(stairs, stair)
	}
	c.JSON(http.StatusOK, calculator.Calculate(rooms, stairs, r.floors))
}

func (r *Router) createSession(c *gin.Context) {
	id, state, err := r.sessions.Create(c.Request.Context())
	if err != nil {
		r.fail(c, err)
		return
	}
	r.respondState(c, http.StatusCreated, id, state)
}

func (r *Router) getSession(c *gin.Context) {
	id := c.Param("id")
	state, err := r.sessions.Get(c.Request.Context(), id)
	if err != nil {
		r.fail(c, err)
		return
	}
	r.respondState(c, http.StatusOK, id, state)
}

func (r *Router) deleteSession(c *gin.Context) {
	if err := r.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		r.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// apply runs one command against the session named in the path and responds with the new state.
func (r *Router) apply(c *gin.Context, cmd calculator.Command) {
	id := c.Param("id")
	state, err := r.sessions.Update(c.Request.Context(), id, cmd)
	if err != nil {
		r.fail(c, err)
		return
	}
	r.respondState(c, http.StatusOK, id, state)
}

func (r *Router) setActiveFloor(c *gin.Context) {
	var req activeFloorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	r.apply(c, calculator.SetActiveFloor{Floor: req.Floor})
}

func (r *Router) addRoom(c *gin.Context) {
	var req roomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	r.apply(c, calculator.AddRoom{Form: req.form()})
}

func (r *Router) editRoom(c *gin.Context) {
	var req roomPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	r.apply(c, calculator.EditRoom{
		ID:      c.Param("rowId"),
		Name:    req.Name,
		Floor:   req.Floor,
		Width:   req.Width.ptr(),
		Length:  req.Length.ptr(),
		Include: req.Include,
	})
}

func (r *Router) deleteRoom(c *gin.Context) {
	r.apply(c, calculator.DeleteRoom{ID: c.Param("rowId")})
}

func (r *Router) removeExcluded(c *gin.Context) {
	r.apply(c, calculator.RemoveExcluded{})
}

func (r *Router) addStair(c *gin.Context) {
	var req stairReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	r.apply(c, calculator.AddStair{Form: req.form()})
}

func (r *Router) editStair(c *gin.Context) {
	var req stairPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	r.apply(c, calculator.EditStair{
		ID:          c.Param("rowId"),
		From:        req.From,
		To:          req.To,
		Steps:       req.Steps.ptr(),
		LandingArea: req.LandingArea.ptr(),
	})
}

func (r *Router) deleteStair(c *gin.Context) {
	r.apply(c, calculator.DeleteStair{ID: c.Param("rowId")})
}

// getSummary serves the copyable text. The ETag is a hash of the text, so an
// unchanged session answers If-None-Match with 304.
func (r *Router) getSummary(c *gin.Context) {
	state, err := r.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.fail(c, err)
		return
	}
	summary := state.Report().Summary
	etag := util.QuotedHash(summary)
	c.Header("ETag", etag)
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, textContentType, []byte(summary))
}

// etagMatches applies the weak comparison If-None-Match calls for: any tag in
// the list, with or without a W/ prefix, or a bare *.
func etagMatches(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" {
			return true
		}
		if tag != "" && strings.TrimPrefix(tag, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

func (r *Router) exportCSV(c *gin.Context) {
	state, err := r.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, state.Report()); err != nil {
		r.fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=area-summary.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (r *Router) exportXLSX(c *gin.Context) {
	state, err := r.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.fail(c, err)
		return
	}
	data, err := export.XLSX(state.Report())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=area-summary.xlsx")
	c.Data(http.StatusOK, xlsxContentType, data)
}
