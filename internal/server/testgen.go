package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/internal/generator"
	"github.com/kode4food/testgen/pkg/api"
)

var ErrLoadMappings = errors.New("failed to load step mappings")

func (s *Server) generateTest(c *gin.Context) {
	var req api.GenerateTestRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := s.loadMappings(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrLoadMappings, err),
			Status: http.StatusServiceUnavailable,
		})
		return
	}
	s.renderTest(c, req.Description, m)
}

func (s *Server) loadMappings(c *gin.Context) (*generator.Mappings, error) {
	key := s.config.Catalog.MethodsKey
	data, err := s.catalog.Resource(c.Request.Context(), key)
	if err != nil {
		return nil, err
	}
	return generator.ParseMappings(bytes.NewReader(data))
}

func (s *Server) renderTest(
	c *gin.Context, desc string, m *generator.Mappings,
) {
	res, err := s.generator.Generate(desc, m)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.GenerateTestResponse{
			TestID:  res.TestID,
			Path:    res.Path,
			Content: res.Content,
		})
	case errors.Is(err, generator.ErrMissingFields),
		errors.Is(err, generator.ErrNoMapping):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusInternalServerError,
		})
	}
}
