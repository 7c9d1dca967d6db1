package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/internal/events"
	"github.com/kode4food/testgen/internal/generator"
	"github.com/kode4food/testgen/internal/session"
	"github.com/kode4food/testgen/internal/ticket"
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/util"
)

// Server implements the HTTP API server for the builder service
type Server struct {
	config    *config.Config
	catalog   *catalog.Store
	sessions  *session.Manager
	eventHub  *events.Hub
	ticket    ticket.Client
	generator *generator.Generator
	sockets   util.Set[*Client]
	mu        sync.Mutex
}

var (
	ErrInvalidJSON  = errors.New("invalid JSON request")
	ErrInvalidIndex = errors.New("invalid index")
)

// NewServer creates a new HTTP API server. A nil ticket client disables
// ticket submission
func NewServer(
	cfg *config.Config, store *catalog.Store, sessions *session.Manager,
	hub *events.Hub, tc ticket.Client,
) *Server {
	return &Server{
		config:    cfg,
		catalog:   store,
		sessions:  sessions,
		eventHub:  hub,
		ticket:    tc,
		generator: generator.New(),
		sockets:   util.Set[*Client]{},
	}
}

// SetupRoutes configures and returns the HTTP router with all API endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return slog.Default()
		}),
	))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set(
			"Access-Control-Allow-Methods",
			"GET, POST, PUT, PATCH, DELETE, OPTIONS",
		)
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Authorization",
		)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", s.handleHealth)

	apiGroup := router.Group("/api")
	{
		// Catalog endpoints
		apiGroup.GET("/catalog", s.getCatalog)
		apiGroup.POST("/catalog/reload", s.reloadCatalog)
		apiGroup.GET("/files/:filename", s.getCatalogFile)

		// Session endpoints
		apiGroup.GET("/session", s.listSessions)
		apiGroup.POST("/session", s.createSession)

		sess := apiGroup.Group("/session/:sessionID")
		{
			sess.GET("", s.getSession)
			sess.DELETE("", s.deleteSession)
			sess.GET("/description", s.getDescription)
			sess.GET("/payload", s.getPayload)

			// Step endpoints
			sess.POST("/step", s.addStep)
			sess.DELETE("/step", s.clearSteps)
			sess.POST("/step/reorder", s.reorderSteps)
			sess.DELETE("/step/:index", s.removeStep)
			sess.POST("/step/:index/toggle", s.toggleStep)

			// Parameter endpoints
			sess.POST("/step/:index/param", s.addParameter)
			sess.PATCH("/step/:index/param/:paramID", s.updateParameter)
			sess.DELETE("/step/:index/param/:paramID", s.deleteParameter)
			sess.POST("/param/reorder", s.reorderParameters)
			sess.POST("/param/move", s.moveParameter)
			sess.POST("/gesture", s.applyGesture)

			// Ticket submission
			sess.POST("/submit", s.submitTicket)
			sess.GET("/submit", s.getSubmit)
			sess.DELETE("/submit", s.dismissSubmit)

			// WebSocket
			sess.GET("/ws", s.handleWebSocket)
		}

		// Ticket relay
		apiGroup.POST("/jira/update", s.updateTicket)

		// Test file generator
		apiGroup.POST("/testgen", s.generateTest)
	}

	return router
}

// session resolves the session named in the path, writing a 404 if it
// does not exist
func (s *Server) session(c *gin.Context) (*session.Session, bool) {
	id := api.SessionID(c.Param("sessionID"))
	sess, err := s.sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusNotFound,
		})
		return nil, false
	}
	return sess, true
}

// pathIndex parses an integer path parameter, writing a 400 if it is not
// an integer. Range checks are left to the builder
func pathIndex(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	idx, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %q", ErrInvalidIndex, raw),
			Status: http.StatusBadRequest,
		})
		return 0, false
	}
	return idx, true
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return false
	}
	return true
}

// respondSession writes the session's current snapshot. Mutations respond
// this way whether or not they changed anything
func respondSession(c *gin.Context, sess *session.Session) {
	c.JSON(http.StatusOK, sess.Response())
}

func (s *Server) registerWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Add(c)
}

func (s *Server) unregisterWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Remove(c)
}

// CloseWebSockets closes all active WebSocket connections.
func (s *Server) CloseWebSockets() {
	s.mu.Lock()
	conns := s.sockets.Items()
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
