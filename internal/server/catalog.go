package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/pkg/api"
)

var (
	ErrReloadCatalog = errors.New("failed to reload catalog")
	ErrFileNotServed = errors.New("file not served")
	ErrReadFile      = errors.New("failed to read file")
)

func (s *Server) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Response())
}

func (s *Server) reloadCatalog(c *gin.Context) {
	if err := s.catalog.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrReloadCatalog, err),
			Status: http.StatusBadGateway,
		})
		return
	}
	c.JSON(http.StatusOK, s.catalog.Response())
}

// getCatalogFile serves the raw text of the step and parameter resources,
// as last loaded. No other resource of the catalog source is reachable
// through it
func (s *Server) getCatalogFile(c *gin.Context) {
	name := c.Param("filename")
	cfg := s.config.Catalog
	if name != cfg.StepsKey && name != cfg.ParametersKey {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", ErrFileNotServed, name),
			Status: http.StatusNotFound,
		})
		return
	}

	if data, ok := s.catalog.Raw(name); ok {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
		return
	}

	data, err := s.catalog.Resource(c.Request.Context(), name)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, catalog.ErrResourceNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrReadFile, err),
			Status: status,
		})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}
