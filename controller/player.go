package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"power-store/dto"
	"power-store/middleware"
)

// Start registers the caller, or refreshes their names, and hands out a token.
func (ctl *Controller) Start(c *gin.Context) {
	var req dto.StartRequest
	if !bind(c, &req) {
		return
	}
	view, created, err := ctl.engine.Register(c.Request.Context(), req.UserID, req.Username, req.FirstName)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := ctl.tokens.Generate(req.UserID)
	if err != nil {
		ctl.logger.Error("sign token", zap.Int64("player", req.UserID), zap.Error(err))
		respondError(c, err)
		return
	}
	msg := "Welcome back!"
	if created {
		msg = "Welcome to the Power Store!"
	}
	respond(c, msg, dto.StartResponse{Created: created, Token: token, Player: view})
}

func (ctl *Controller) Profile(c *gin.Context) {
	view, err := ctl.engine.GetProfile(c.Request.Context(), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, "ok", view)
}
