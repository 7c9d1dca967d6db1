package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/pkg/api"
)

var ErrRenderPayload = errors.New("failed to render payload")

func (s *Server) createSession(c *gin.Context) {
	cat, err := s.catalog.Catalog()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusServiceUnavailable,
		})
		return
	}

	sess := s.sessions.Create(cat)
	c.JSON(http.StatusCreated, sess.Response())
}

func (s *Server) listSessions(c *gin.Context) {
	ids := s.sessions.List()
	c.JSON(http.StatusOK, api.SessionsListResponse{
		Sessions: ids,
		Count:    len(ids),
	})
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	respondSession(c, sess)
}

func (s *Server) deleteSession(c *gin.Context) {
	id := api.SessionID(c.Param("sessionID"))
	if err := s.sessions.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{
		Message: "Session deleted",
	})
}

func (s *Server) getDescription(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, sess.Description())
}

func (s *Server) getPayload(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	js, err := sess.PayloadJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrRenderPayload, err),
			Status: http.StatusInternalServerError,
		})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(js))
}
