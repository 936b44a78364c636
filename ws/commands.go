package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"power-store/dto"
	"power-store/service"
)

type commandHandler func(ctx context.Context, h *Hub, playerID int64, msg map[string]interface{}) (dto.Outcome, error)

var commandHandlers = map[string]commandHandler{
	"play": handlePlayCommand,
	"god":  handleGodCommand,
	"buy":  handleBuyCommand,
}

func (h *Hub) listen(c *gin.Context, pc *playerConn) {
	for {
		_, raw, err := pc.conn.ReadMessage()
		if err != nil {
			h.logger.Debug("read failed", zap.String("conn", pc.id), zap.Error(err))
			return
		}
		var msg map[string]interface{}
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.Private(pc.playerID, "Could not read that command.")
			continue
		}
		msgType, _ := msg["type"].(string)
		handler, found := commandHandlers[msgType]
		if !found {
			h.logger.Debug("unknown command", zap.String("type", msgType))
			h.Private(pc.playerID, fmt.Sprintf("Unknown command %q.", msgType))
			continue
		}

		out, err := handler(c.Request.Context(), h, pc.playerID, msg)
		if err != nil {
			out = service.Failed(err)
		}
		service.Deliver(h, pc.playerID, out)
	}
}

func handlePlayCommand(ctx context.Context, h *Hub, playerID int64, msg map[string]interface{}) (dto.Outcome, error) {
	var req dto.PlayCardRequest
	if err := decode(msg, &req); err != nil {
		return dto.Outcome{}, err
	}
	return h.engine.Play(ctx, playerID, req)
}

func handleGodCommand(ctx context.Context, h *Hub, playerID int64, msg map[string]interface{}) (dto.Outcome, error) {
	var req dto.PlayGodRequest
	if err := decode(msg, &req); err != nil {
		return dto.Outcome{}, err
	}
	return h.engine.God(ctx, playerID, req)
}

func handleBuyCommand(ctx context.Context, h *Hub, playerID int64, msg map[string]interface{}) (dto.Outcome, error) {
	var req dto.BuyRequest
	if err := decode(msg, &req); err != nil {
		return dto.Outcome{}, err
	}
	return h.engine.BuyNamed(ctx, playerID, req.CardID)
}

// decode maps a command frame onto a request struct. Unknown keys such as
// "type" are ignored; numeric ids may arrive as strings.
func decode(msg map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(msg); err != nil {
		return service.BadRequest(err)
	}
	return nil
}

func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String {
			return data, nil
		}
		switch to {
		case reflect.Int:
			return strconv.Atoi(data.(string))
		case reflect.Int64:
			return strconv.ParseInt(data.(string), 10, 64)
		}
		return data, nil
	}
}
