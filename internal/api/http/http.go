package http

import (
	"errors"
	"fmt"

	"werewolf-be/internal/service"
	"werewolf-be/internal/service/game"
	"werewolf-be/internal/state"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

func NewApp(appState *state.AppState) *iris.Application {
	app := iris.Default()

	api := app.Party("/api/v1")

	api.Post("/rooms/create", CreateRoom(appState))
	api.Post("/rooms/{id}/join", JoinRoom(appState))
	api.Post("/rooms/{id}/start", StartGame(appState))
	api.Post("/rooms/{id}/pause", PauseGame(appState))
	api.Post("/rooms/{id}/resume", ResumeGame(appState))
	api.Post("/rooms/{id}/rounds", SubmitRound(appState))
	api.Get("/rooms/{id}", GetRoom(appState))
	api.Get("/rooms/{id}/events", GetEvents(appState))

	return app
}

func RunServer(appState *state.AppState) error {
	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	zap.S().Infof("HTTP 服务监听 %s", addr)

	return NewApp(appState).Listen(addr)
}

// writeError 把服务层错误映射为 HTTP 状态码
func writeError(ctx iris.Context, err error) {
	status := iris.StatusBadRequest

	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		status = iris.StatusNotFound
	case errors.Is(err, service.ErrNotCreator):
		status = iris.StatusForbidden
	case errors.Is(err, service.ErrRoomBusy), errors.Is(err, service.ErrRoomClosed):
		status = iris.StatusServiceUnavailable
	case errors.Is(err, service.ErrRoomFull),
		errors.Is(err, game.ErrAlreadyStarted),
		errors.Is(err, game.ErrNotStarted),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrGamePaused),
		errors.Is(err, game.ErrPlayerCount):
		status = iris.StatusConflict
	}

	ctx.StatusCode(status)
	ctx.JSON(iris.Map{
		"error": err.Error(),
	})
}
