package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"power-store/dto"
	"power-store/middleware"
	"power-store/service"
	"power-store/utils"
)

// Controller holds what every handler needs. Notifier receives each
// successful outcome so websocket clients see HTTP-triggered plays too.
type Controller struct {
	engine   *service.Engine
	notifier service.Notifier
	tokens   *utils.TokenIssuer
	logger   *zap.Logger
}

func New(engine *service.Engine, notifier service.Notifier, tokens *utils.TokenIssuer, logger *zap.Logger) *Controller {
	if notifier == nil {
		notifier = service.NopNotifier
	}
	return &Controller{engine: engine, notifier: notifier, tokens: tokens, logger: logger}
}

var statusByKind = map[service.ErrorKind]int{
	service.KindUnknownCard:         http.StatusNotFound,
	service.KindCardNotOwned:        http.StatusBadRequest,
	service.KindTargetRequired:      http.StatusBadRequest,
	service.KindSelfTargetForbidden: http.StatusBadRequest,
	service.KindTargetNotFound:      http.StatusNotFound,
	service.KindInsufficientFunds:   http.StatusBadRequest,
	service.KindNoEligibleCards:     http.StatusBadRequest,
	service.KindInvalidPower:        http.StatusBadRequest,
	service.KindStoreConflict:       http.StatusConflict,
	service.KindStoreUnavailable:    http.StatusServiceUnavailable,
	service.KindPlayerNotFound:      http.StatusNotFound,
	service.KindNotAuthorized:       http.StatusForbidden,
	service.KindTransactionTooLarge: http.StatusServiceUnavailable,
	service.KindInvalidAmount:       http.StatusBadRequest,
	service.KindBadRequest:          http.StatusBadRequest,
}

func statusOf(err error) int {
	if code, ok := statusByKind[service.KindOf(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func respond(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         msg,
		"data":        data,
	})
}

func respondError(c *gin.Context, err error) {
	code := statusOf(err)
	c.JSON(code, gin.H{
		"status_code": code,
		"kind":        service.KindOf(err),
		"error":       service.UserMessage(err),
	})
}

// respondOutcome answers a game action. Failures come back as an outcome with
// Success false so clients render one shape.
func (ctl *Controller) respondOutcome(c *gin.Context, out dto.Outcome, err error) {
	if err != nil {
		code := statusOf(err)
		c.JSON(code, gin.H{
			"status_code": code,
			"kind":        service.KindOf(err),
			"error":       service.UserMessage(err),
			"data":        service.Failed(err),
		})
		return
	}
	service.Deliver(ctl.notifier, middleware.PlayerID(c), out)
	respond(c, "ok", out)
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, service.BadRequest(err))
		return false
	}
	return true
}
