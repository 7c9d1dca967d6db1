package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen"
	"github.com/kode4food/testgen/pkg/api"
)

const (
	healthOK       = "healthy"
	healthDegraded = "degraded"
)

func (s *Server) handleHealth(c *gin.Context) {
	status, _ := s.catalog.Status()
	health := healthOK
	if status != api.CatalogReady {
		health = healthDegraded
	}

	c.JSON(http.StatusOK, api.HealthResponse{
		Service:  testgen.Name,
		Version:  testgen.Version,
		Status:   health,
		Catalog:  status,
		Sessions: s.sessions.Len(),
	})
}
