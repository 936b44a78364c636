package router

import (
	"github.com/gin-gonic/gin"

	"power-store/controller"
	"power-store/middleware"
	"power-store/utils"
	"power-store/ws"
)

func InitRouter(r *gin.Engine, ctl *controller.Controller, hub *ws.Hub, tokens *utils.TokenIssuer) {
	r.POST("/player/start", ctl.Start)

	auth := r.Group("/", middleware.Auth(tokens))
	{
		auth.GET("/player/profile", ctl.Profile)

		auth.GET("/store", ctl.StoreListing)
		auth.GET("/store/:cardId/price", ctl.Price)
		auth.POST("/store/buy", ctl.Buy)

		auth.POST("/card/play", ctl.PlayCard)
		auth.POST("/card/god", ctl.PlayGod)
	}

	admin := r.Group("/admin", middleware.Auth(tokens))
	{
		admin.GET("/players", ctl.ListPlayers)
		admin.POST("/award", ctl.Award)
		admin.POST("/givecard", ctl.GiveCard)
		admin.GET("/activity", ctl.Activity)
	}

	// websocket clients authenticate with ?token=
	r.GET("/ws", hub.HandleWebSocket)
}
