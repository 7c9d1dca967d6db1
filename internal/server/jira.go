package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/internal/ticket"
	"github.com/kode4food/testgen/pkg/api"
)

// updateTicket relays a ticket update on behalf of a client that does not
// hold tracker credentials
func (s *Server) updateTicket(c *gin.Context) {
	var req api.TicketUpdateRequest
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

	key, err := ticket.NormalizeKey(req.Ticket)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}

	res, err := s.ticket.Update(c.Request.Context(), &ticket.Request{
		Ticket:      key,
		Description: req.Description,
		JSON:        req.JSON,
	})
	if err != nil {
		status := http.StatusBadGateway
		if !errors.Is(err, ticket.ErrUpdateFailed) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, api.ErrorResponse{
			Error:  err.Error(),
			Status: status,
		})
		return
	}

	c.JSON(http.StatusOK, api.TicketUpdateResponse{
		Status: res.Status,
	})
}
