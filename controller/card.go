package controller

import (
	"github.com/gin-gonic/gin"

	"power-store/dto"
	"power-store/middleware"
)

func (ctl *Controller) PlayCard(c *gin.Context) {
	var req dto.PlayCardRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.engine.Play(c.Request.Context(), middleware.PlayerID(c), req)
	ctl.respondOutcome(c, out, err)
}

func (ctl *Controller) PlayGod(c *gin.Context) {
	var req dto.PlayGodRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.engine.God(c.Request.Context(), middleware.PlayerID(c), req)
	ctl.respondOutcome(c, out, err)
}
