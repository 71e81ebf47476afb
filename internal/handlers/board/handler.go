package board

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/infras/otel"
	"comanda/shared"
	"comanda/shared/constant"
	"comanda/transport/ws"
)

const bufferSize = 1024

type Handler struct {
	hub      *ws.Hub
	otel     otel.Otel
	upgrader websocket.Upgrader
}

func New(hub *ws.Hub, cfg *config.Config, otel otel.Otel) Handler {
	origins := cfg.App.CORS.AllowedOrigins

	return Handler{
		hub:  hub,
		otel: otel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  bufferSize,
			WriteBufferSize: bufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				return origin == "" || len(origins) == 0 || slices.Contains(origins, constant.Asterix) || slices.Contains(origins, origin)
			},
		},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/ws/board", handler.Connect)
}

// Connect upgrades to the staff board stream
// @Summary Staff board
// @Description Websocket carrying every domain event as JSON. Browsers pass the token as access_token.
// @Tags Board
// @Param access_token query string false "Access token for clients that cannot set headers"
// @Success 101
// @Failure 401 {object} response.Error
// @Router /v1/ws/board [get]
// @Security BearerAuth
func (handler *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".board.Connect")

	staffID := shared.ActorID(ctx)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		scope.TraceError(err)
		scope.End()
		log.Warn().Err(err).Str("staff_id", staffID).Msg("failed to upgrade board connection")

		return
	}

	scope.AddEvent("Board connected")
	scope.End()

	handler.hub.Serve(conn, staffID, role)
}
