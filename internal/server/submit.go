package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/internal/session"
	"github.com/kode4food/testgen/internal/ticket"
	"github.com/kode4food/testgen/pkg/api"
)

var ErrNoSubmission = errors.New("no submission")

func (s *Server) submitTicket(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req api.SubmitRequest
	if !bindJSON(c, &req) {
		return
	}
	if s.ticket == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{
			Error:  ticket.ErrTicketNotConfigured.Error(),
			Status: http.StatusServiceUnavailable,
		})
		return
	}

	st, err := sess.Submit(c.Request.Context(), s.ticket, req.Ticket)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, st)
	case errors.Is(err, session.ErrTicketRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  session.TicketRequiredMessage,
			Status: http.StatusBadRequest,
		})
	case errors.Is(err, ticket.ErrInvalidTicket):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
	case errors.Is(err, session.ErrSubmitInProgress):
		c.JSON(http.StatusConflict, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusConflict,
		})
	case st != nil:
		c.JSON(http.StatusBadGateway, api.ErrorResponse{
			Error:  st.Message,
			Status: http.StatusBadGateway,
		})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusInternalServerError,
		})
	}
}

func (s *Server) getSubmit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	st := sess.SubmitStatus()
	if st == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  ErrNoSubmission.Error(),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) dismissSubmit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.DismissSubmit()
	respondSession(c, sess)
}
