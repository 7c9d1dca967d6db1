package server

import (
	"github.com/gin-gonic/gin"

	"github.com/kode4food/testgen/pkg/api"
)

func (s *Server) addStep(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req api.AddStepRequest
	if !bindJSON(c, &req) {
		return
	}
	sess.AddStep(req.TemplateID)
	respondSession(c, sess)
}

func (s *Server) clearSteps(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.ClearAll()
	respondSession(c, sess)
}

func (s *Server) removeStep(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	idx, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	sess.RemoveStep(idx)
	respondSession(c, sess)
}

func (s *Server) toggleStep(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	idx, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	sess.ToggleExpand(idx)
	respondSession(c, sess)
}

func (s *Server) reorderSteps(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req api.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	sess.ReorderSteps(req.From, req.To)
	respondSession(c, sess)
}
