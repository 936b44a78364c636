package controller

import (
	"github.com/gin-gonic/gin"

	"power-store/dto"
	"power-store/middleware"
)

func (ctl *Controller) StoreListing(c *gin.Context) {
	view, err := ctl.engine.StoreListing(c.Request.Context(), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, "ok", view)
}

func (ctl *Controller) Price(c *gin.Context) {
	card, err := ctl.engine.LookupCard(c.Param("cardId"))
	if err != nil {
		respondError(c, err)
		return
	}
	price, err := ctl.engine.GetEffectivePrice(c.Request.Context(), middleware.PlayerID(c), card.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, "ok", dto.PriceResponse{CardID: card.ID, Price: price})
}

func (ctl *Controller) Buy(c *gin.Context) {
	var req dto.BuyRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.engine.BuyNamed(c.Request.Context(), middleware.PlayerID(c), req.CardID)
	ctl.respondOutcome(c, out, err)
}
