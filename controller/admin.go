package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"power-store/dto"
	"power-store/middleware"
	"power-store/utils"
)

const defaultActivityLimit = 50

func (ctl *Controller) ListPlayers(c *gin.Context) {
	views, err := ctl.engine.ListPlayers(c.Request.Context(), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	respond(c, "ok", gin.H{
		"total":   len(views),
		"players": utils.SafeSlice(views, limit),
	})
}

func (ctl *Controller) Award(c *gin.Context) {
	var req dto.AwardRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.engine.AdminAward(c.Request.Context(), middleware.PlayerID(c), req.Handle, req.Amount)
	ctl.respondOutcome(c, out, err)
}

func (ctl *Controller) GiveCard(c *gin.Context) {
	var req dto.GiveCardRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.engine.AdminGiveCard(c.Request.Context(), middleware.PlayerID(c), req.Handle, req.Card)
	ctl.respondOutcome(c, out, err)
}

func (ctl *Controller) Activity(c *gin.Context) {
	limit := defaultActivityLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	entries, err := ctl.engine.RecentActivity(c.Request.Context(), middleware.PlayerID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, "ok", entries)
}
