// Package server exposes a journal.Source over the PostgREST query shape
// the hosted backend speaks, for local development.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faizmokh/gideon/internal/journal"
	"github.com/faizmokh/gideon/internal/logger"
)

const (
	defaultTable      = "blog_entries"
	defaultDateColumn = "date"
	eqPrefix          = "eq."
)

// Options configures the Handler.
type Options struct {
	Source     journal.Source
	Log        *logger.Logger
	Table      string
	DateColumn string
	// Key, when set, must be presented as apikey header or bearer token.
	Key string
}

// Handler wires HTTP routes to a journal source.
type Handler struct {
	source     journal.Source
	log        *logger.Logger
	table      string
	dateColumn string
	key        string
}

// NewHandler constructs a Handler with defaults applied.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		source:     opts.Source,
		log:        opts.Log,
		table:      opts.Table,
		dateColumn: opts.DateColumn,
		key:        opts.Key,
	}
	if h.log == nil {
		h.log = logger.Nop()
	}
	if h.table == "" {
		h.table = defaultTable
	}
	if h.dateColumn == "" {
		h.dateColumn = defaultDateColumn
	}
	return h
}

// InitRoutes builds and returns the gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/health", h.health)

	rest := router.Group("/rest/v1", h.apiKeyMiddleware)
	{
		rest.GET("/:table", h.listEntries)
	}
	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type row struct {
	ID        int64      `json:"id"`
	Date      string     `json:"date"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at"`
}

func toRow(entry journal.Entry) row {
	r := row{ID: entry.ID, Date: entry.Date, Content: entry.Content}
	if !entry.CreatedAt.IsZero() {
		created := entry.CreatedAt.UTC()
		r.CreatedAt = &created
	}
	return r
}

func (h *Handler) listEntries(c *gin.Context) {
	if c.Param("table") != h.table {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown table " + c.Param("table")})
		return
	}

	date, err := h.dateFilter(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, found, err := journal.Lookup(c.Request.Context(), h.source, date)
	if err != nil {
		h.log.Errorw("list_entries_failed", "date", journal.Key(date), "request_id", requestID(c), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load entry"})
		return
	}

	rows := []row{}
	if found && limit != 0 {
		if entry.Date == "" {
			entry.Date = journal.Key(date)
		}
		rows = append(rows, toRow(entry))
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) dateFilter(c *gin.Context) (time.Time, error) {
	raw, ok := c.GetQuery(h.dateColumn)
	if !ok {
		return time.Time{}, errors.New("missing filter " + h.dateColumn + "=eq.YYYY-MM-DD")
	}
	if !strings.HasPrefix(raw, eqPrefix) {
		return time.Time{}, errors.New("only eq filters are supported on " + h.dateColumn)
	}
	date, err := journal.ParseKey(strings.TrimPrefix(raw, eqPrefix))
	if err != nil {
		return time.Time{}, errors.New("invalid date " + strings.TrimPrefix(raw, eqPrefix))
	}
	return date, nil
}

// parseLimit returns -1 when no limit was requested.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return -1, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.New("invalid limit " + raw)
	}
	return limit, nil
}
