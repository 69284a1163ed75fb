package state

import (
	"werewolf-be/internal/config"
	"werewolf-be/internal/service"
)

type AppState struct {
	Cfg     *config.AppConfig
	RoomSvc *service.RoomService
}

func NewAppState(cfg *config.AppConfig) *AppState {
	return &AppState{
		Cfg: cfg,
		RoomSvc: service.NewRoomService(service.RoomConfig{
			SpeechOrder: cfg.ParsedSpeechOrder(),
			RandomSeed:  cfg.RandomSeed,
			IdleTimeout: cfg.IdleTimeout(),
		}),
	}
}

func (s *AppState) Close() {
	s.RoomSvc.Close()
}
