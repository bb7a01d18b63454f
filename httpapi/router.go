// Package httpapi is the thin HTTP front-end that exposes the Algorithm
// Registry over gin, grounded on leanlp-BTC-coinjoin's
// internal/api.SetupRouter: one APIHandler struct holding its
// collaborators, a route group per concern, gin.H JSON responses.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/profila/fd"
	"github.com/katalvlaran/profila/metric"
	"github.com/katalvlaran/profila/primitive"
	"github.com/katalvlaran/profila/progress"
	"github.com/katalvlaran/profila/registry"
	"github.com/katalvlaran/profila/relation"
	"github.com/katalvlaran/profila/store"
)

// session holds one tag's most recently fitted/executed Primitive, the
// way a single logical run is threaded across /fit, /execute, /result.
type session struct {
	prim     primitive.Primitive
	streamer *progress.Streamer
	runID    string
	lastExec time.Time
	lastJSON gin.H
}

// Handler wires the registry to gin, with an optional Postgres
// ResultSink for persisted runs; sink may be nil.
type Handler struct {
	sink     *store.ResultSink
	mutex    sync.Mutex
	sessions map[registry.Tag]*session
}

// NewHandler returns a Handler with an empty session table.
func NewHandler(sink *store.ResultSink) *Handler {
	return &Handler{sink: sink, sessions: make(map[registry.Tag]*session)}
}

// SetupRouter builds the gin.Engine exposing the registry's Fit/Execute/
// Result lifecycle plus a websocket progress feed and a health check.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	api := r.Group("/primitives")
	{
		api.POST("/:tag/fit", h.handleFit)
		api.POST("/:tag/execute", h.handleExecute)
		api.GET("/:tag/result", h.handleResult)
		api.GET("/:tag/stream", h.handleStream)
	}
	r.GET("/health", h.handleHealth)

	return r
}

type fitRequest struct {
	Columns []string               `json:"columns" binding:"required"`
	Rows    [][]string             `json:"rows" binding:"required"`
	Options map[string]interface{} `json:"options"`
}

func (h *Handler) handleFit(c *gin.Context) {
	tag := registry.Tag(c.Param("tag"))
	var req fitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prim, err := registry.CreatePrimitiveInstance[primitive.Primitive](tag)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	for name, value := range req.Options {
		if err := prim.SetOption(name, value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("option %s: %v", name, err)})
			return
		}
	}

	stream := &relation.SliceStream{Names: req.Columns, Rows: req.Rows}
	if err := prim.Fit(stream); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := uuid.New().String()
	streamer := progress.NewStreamer(runID)
	prim.(interface{ AttachProgress(primitive.ProgressSink) }).AttachProgress(streamer)

	h.mutex.Lock()
	h.sessions[tag] = &session{prim: prim, streamer: streamer, runID: runID}
	h.mutex.Unlock()

	c.JSON(http.StatusOK, gin.H{"status": "fitted", "run_id": runID, "phases": prim.PhaseNames()})
}

type executeRequest struct {
	Options map[string]interface{} `json:"options"`
}

func (h *Handler) handleExecute(c *gin.Context) {
	tag := registry.Tag(c.Param("tag"))
	h.mutex.Lock()
	sess, ok := h.sessions[tag]
	h.mutex.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no fitted session for tag " + string(tag)})
		return
	}

	var req executeRequest
	_ = c.ShouldBindJSON(&req)
	for name, value := range req.Options {
		if err := sess.prim.SetOption(name, value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("option %s: %v", name, err)})
			return
		}
	}

	elapsed, err := sess.prim.Execute()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess.lastExec = time.Now()

	result := resultPayload(sess.prim)
	sess.lastJSON = result

	h.mutex.Lock()
	h.sessions[tag] = sess
	h.mutex.Unlock()

	if h.sink != nil {
		h.persist(c.Request.Context(), tag, sess)
	}

	c.JSON(http.StatusOK, gin.H{"status": "executed", "elapsed_ms": elapsed.Milliseconds(), "result": result})
}

func (h *Handler) handleResult(c *gin.Context) {
	tag := registry.Tag(c.Param("tag"))
	h.mutex.Lock()
	sess, ok := h.sessions[tag]
	h.mutex.Unlock()
	if !ok || sess.lastJSON == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no executed result for tag " + string(tag)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": sess.runID, "result": sess.lastJSON})
}

func (h *Handler) handleStream(c *gin.Context) {
	tag := registry.Tag(c.Param("tag"))
	h.mutex.Lock()
	sess, ok := h.sessions[tag]
	h.mutex.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no fitted session for tag " + string(tag)})
		return
	}
	if err := sess.streamer.Subscribe(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "operational",
		"tags": gin.H{
			"fd":     registry.GetAllDerived[fd.Algorithm](),
			"metric": []registry.Tag{registry.TagMetricVerifier},
		},
	})
}

func resultPayload(prim primitive.Primitive) gin.H {
	switch p := prim.(type) {
	case fd.Algorithm:
		fdJSON, err := p.Collection().JSON()
		if err != nil {
			return gin.H{"error": err.Error()}
		}
		checksum, _ := p.Collection().Fletcher16()
		return gin.H{
			"fds":        fdJSON,
			"fletcher16": checksum,
			"keys":       p.GetKeys(),
		}
	case *metric.Verifier:
		holds, _ := p.Holds()
		highlights, _ := p.Highlights()
		return gin.H{"holds": holds, "highlights": highlights}
	default:
		return gin.H{}
	}
}

func (h *Handler) persist(ctx context.Context, tag registry.Tag, sess *session) {
	switch p := sess.prim.(type) {
	case fd.Algorithm:
		fdJSON, err := p.Collection().JSON()
		if err != nil {
			return
		}
		checksum, _ := p.Collection().Fletcher16()
		_ = h.sink.SaveFDResult(ctx, sess.runID, string(tag), fdJSON, checksum, sess.lastExec)
	case *metric.Verifier:
		holds, _ := p.Holds()
		highlights, _ := p.Highlights()
		_ = h.sink.SaveMFDResult(ctx, sess.runID, holds, len(highlights), sess.lastExec)
	}
}
