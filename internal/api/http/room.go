package http

import (
	"werewolf-be/internal/service/dto"
	"werewolf-be/internal/state"

	"github.com/kataras/iris/v12"
)

func CreateRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.CreateRoomRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		resp, err := appState.RoomSvc.CreateRoom(req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func JoinRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.JoinRoomRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		// 以路径中的房间 ID 为准
		req.RoomID = ctx.Params().Get("id")

		resp, err := appState.RoomSvc.JoinRoom(req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func StartGame(appState *state.AppState) iris.Handler {
	return roomControl(appState.RoomSvc.StartGame)
}

func PauseGame(appState *state.AppState) iris.Handler {
	return roomControl(appState.RoomSvc.PauseGame)
}

func ResumeGame(appState *state.AppState) iris.Handler {
	return roomControl(appState.RoomSvc.ResumeGame)
}

func roomControl(fn func(dto.RoomControlRequest) (dto.RoomControlResponse, error)) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.RoomControlRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.RoomID = ctx.Params().Get("id")

		resp, err := fn(req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func SubmitRound(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.SubmitRoundRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.RoomID = ctx.Params().Get("id")

		resp, err := appState.RoomSvc.SubmitRound(req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func GetRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		resp, err := appState.RoomSvc.Snapshot(dto.RoomViewRequest{
			RoomID:   ctx.Params().Get("id"),
			ViewerID: ctx.URLParam("viewer"),
		})
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func GetEvents(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		resp, err := appState.RoomSvc.Events(dto.RoomViewRequest{
			RoomID:   ctx.Params().Get("id"),
			ViewerID: ctx.URLParam("viewer"),
		})
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}
