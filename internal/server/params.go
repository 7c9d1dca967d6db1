package server

import (
	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/pkg/api"
)

func (s *Server) addParameter(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	idx, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	var req api.AddParameterRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	if req.TemplateID == "" {
		sess.AddParameter(idx, nil)
	} else {
		sess.AddParameterByID(idx, req.TemplateID)
	}
	respondSession(c, sess)
}

func (s *Server) updateParameter(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	idx, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	var ch api.ParameterChanges
	if !bindJSON(c, &ch) {
		return
	}
	sess.UpdateParameter(idx, c.Param("paramID"), ch)
	respondSession(c, sess)
}

func (s *Server) deleteParameter(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	idx, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	sess.DeleteParameter(idx, c.Param("paramID"))
	respondSession(c, sess)
}

func (s *Server) reorderParameters(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req api.ReorderParametersRequest
	if !bindJSON(c, &req) {
		return
	}
	sess.ReorderParameters(req.StepInstanceID, req.From, req.To)
	respondSession(c, sess)
}

func (s *Server) moveParameter(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req api.MoveParameterRequest
	if !bindJSON(c, &req) {
		return
	}
	sess.MoveParameterAcrossSteps(
		req.SourceInstanceID, req.SourceIndex,
		req.DestInstanceID, req.DestIndex,
	)
	respondSession(c, sess)
}

func (s *Server) applyGesture(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var g api.MoveGesture
	if !bindJSON(c, &g) {
		return
	}
	sess.ApplyGesture(g)
	respondSession(c, sess)
}
