package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"werewolf-be/internal/service/dto"
	"werewolf-be/internal/service/game"
)

func newTestService(t *testing.T) *RoomService {
	t.Helper()

	rs := NewRoomService(RoomConfig{
		SpeechOrder: game.SpeechBySeat,
		RandomSeed:  42,
	})
	t.Cleanup(rs.Close)

	return rs
}

// newFullRoom 创建房间并坐满六人，返回房间 ID 和按座位排列的玩家 ID
func newFullRoom(t *testing.T, rs *RoomService) (string, []string) {
	t.Helper()

	created, err := rs.CreateRoom(dto.CreateRoomRequest{RoomName: "测试房间", CreatorName: "房主"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	ids := []string{created.Creator.ID}
	for i := 2; i <= game.PLAYER_COUNT; i++ {
		joined, err := rs.JoinRoom(dto.JoinRoomRequest{RoomID: created.RoomID, JoinerName: fmt.Sprintf("玩家%d", i)})
		if err != nil {
			t.Fatalf("JoinRoom %d: %v", i, err)
		}

		if joined.Joiner.Seat != i {
			t.Fatalf("joiner should take seat %d, got %d", i, joined.Joiner.Seat)
		}

		ids = append(ids, joined.Joiner.ID)
	}

	return created.RoomID, ids
}

func TestRoomService_CreateRoomValidation(t *testing.T) {
	rs := newTestService(t)

	if _, err := rs.CreateRoom(dto.CreateRoomRequest{CreatorName: "房主"}); err == nil {
		t.Fatalf("empty room name should be rejected")
	}

	if _, err := rs.CreateRoom(dto.CreateRoomRequest{RoomName: "房间"}); err == nil {
		t.Fatalf("empty creator name should be rejected")
	}

	created, err := rs.CreateRoom(dto.CreateRoomRequest{RoomName: "房间", CreatorName: "房主"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if created.Creator.Seat != game.MIN_SEAT || len(created.RoomID) != 8 {
		t.Fatalf("creator should sit at seat 1, got %+v", created)
	}
}

func TestRoomService_RoomFull(t *testing.T) {
	rs := newTestService(t)
	roomID, _ := newFullRoom(t, rs)

	_, err := rs.JoinRoom(dto.JoinRoomRequest{RoomID: roomID, JoinerName: "第七人"})
	if !errors.Is(err, ErrRoomFull) {
		t.Fatalf("want ErrRoomFull, got %v", err)
	}
}

func TestRoomService_UnknownRoom(t *testing.T) {
	rs := newTestService(t)

	_, err := rs.JoinRoom(dto.JoinRoomRequest{RoomID: "missing", JoinerName: "玩家"})
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("want ErrRoomNotFound, got %v", err)
	}

	if _, err := rs.Snapshot(dto.RoomViewRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("want ErrInvalidRequest, got %v", err)
	}
}

func TestRoomService_StartGame(t *testing.T) {
	rs := newTestService(t)

	created, err := rs.CreateRoom(dto.CreateRoomRequest{RoomName: "房间", CreatorName: "房主"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	_, err = rs.StartGame(dto.RoomControlRequest{RoomID: created.RoomID, PlayerID: created.Creator.ID})
	if !errors.Is(err, game.ErrPlayerCount) {
		t.Fatalf("one player cannot start, got %v", err)
	}

	roomID, ids := newFullRoom(t, rs)

	_, err = rs.StartGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[1]})
	if !errors.Is(err, ErrNotCreator) {
		t.Fatalf("want ErrNotCreator, got %v", err)
	}

	started, err := rs.StartGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	if started.Room.Status != dto.STATUS_RUNNING || started.Room.Round != 1 || started.Room.Phase != string(game.PhaseNight) {
		t.Fatalf("unexpected room after start: %+v", started.Room)
	}

	_, err = rs.StartGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]})
	if !errors.Is(err, game.ErrAlreadyStarted) {
		t.Fatalf("want ErrAlreadyStarted, got %v", err)
	}

	_, err = rs.JoinRoom(dto.JoinRoomRequest{RoomID: roomID, JoinerName: "迟到者"})
	if !errors.Is(err, game.ErrAlreadyStarted) {
		t.Fatalf("joining a running game should fail, got %v", err)
	}
}

func TestRoomService_SnapshotHidesRoles(t *testing.T) {
	rs := newTestService(t)
	roomID, ids := newFullRoom(t, rs)

	if _, err := rs.StartGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	room, err := rs.Snapshot(dto.RoomViewRequest{RoomID: roomID, ViewerID: ids[2]})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	for _, p := range room.Players {
		if p.ID == ids[2] && p.Role == "" {
			t.Fatalf("viewer should see their own role")
		}

		if p.ID != ids[2] && p.Role != "" {
			t.Fatalf("%s role leaked to another player", p.ID)
		}
	}

	public, err := rs.Snapshot(dto.RoomViewRequest{RoomID: roomID})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	for _, p := range public.Players {
		if p.Role != "" {
			t.Fatalf("public snapshot must not expose roles")
		}
	}
}

func TestRoomService_EventsFilteredByViewer(t *testing.T) {
	rs := newTestService(t)
	roomID, ids := newFullRoom(t, rs)

	empty, err := rs.Events(dto.RoomViewRequest{RoomID: roomID})
	if err != nil || len(empty.Events) != 0 {
		t.Fatalf("no events before start, got %v %v", empty.Events, err)
	}

	if _, err := rs.StartGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	for _, id := range ids {
		res, err := rs.Events(dto.RoomViewRequest{RoomID: roomID, ViewerID: id})
		if err != nil {
			t.Fatalf("Events: %v", err)
		}

		roleEvents := 0
		for _, e := range res.Events {
			if e.Kind == game.EVENT_ROLE_ASSIGNED {
				roleEvents++
				if e.ActorID != id {
					t.Fatalf("%s sees another player's role event", id)
				}
			}
		}

		if roleEvents != 1 {
			t.Fatalf("%s should see exactly one role event, got %d", id, roleEvents)
		}
	}
}

func TestRoomService_PlayToFinish(t *testing.T) {
	rs := newTestService(t)
	roomID, ids := newFullRoom(t, rs)

	if _, err := rs.StartGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	// 每天全员投给座位号最小的存活玩家，每回合必有一人出局
	var last dto.SubmitRoundResponse
	for i := 0; i < 10; i++ {
		room, err := rs.Snapshot(dto.RoomViewRequest{RoomID: roomID})
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}

		if room.Status == dto.STATUS_FINISHED {
			break
		}

		target := ""
		votes := make(map[string]string)
		for _, p := range room.Players {
			if !p.Alive {
				continue
			}
			if target == "" {
				target = p.ID
			}
			votes[p.ID] = target
		}

		last, err = rs.SubmitRound(dto.SubmitRoundRequest{
			RoomID:   roomID,
			PlayerID: ids[0],
			Actions:  game.RoundActions{DayVotes: votes},
		})
		if err != nil {
			t.Fatalf("SubmitRound: %v", err)
		}
	}

	if last.Result == nil || !last.Result.Ended || last.Room.Status != dto.STATUS_FINISHED {
		t.Fatalf("game should be finished, got %+v", last.Room)
	}

	for _, p := range last.Room.Players {
		if p.Role == "" {
			t.Fatalf("roles should be revealed once the game is finished")
		}
	}

	_, err := rs.SubmitRound(dto.SubmitRoundRequest{RoomID: roomID, PlayerID: ids[0]})
	if !errors.Is(err, game.ErrGameFinished) {
		t.Fatalf("want ErrGameFinished, got %v", err)
	}
}

func TestRoomService_PauseResume(t *testing.T) {
	rs := newTestService(t)
	roomID, ids := newFullRoom(t, rs)

	_, err := rs.PauseGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]})
	if !errors.Is(err, game.ErrNotStarted) {
		t.Fatalf("want ErrNotStarted, got %v", err)
	}

	if _, err := rs.StartGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	paused, err := rs.PauseGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]})
	if err != nil || paused.Room.Status != dto.STATUS_PAUSED {
		t.Fatalf("PauseGame: %+v %v", paused.Room, err)
	}

	_, err = rs.SubmitRound(dto.SubmitRoundRequest{RoomID: roomID, PlayerID: ids[0]})
	if !errors.Is(err, game.ErrGamePaused) {
		t.Fatalf("want ErrGamePaused, got %v", err)
	}

	if _, err := rs.ResumeGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[1]}); !errors.Is(err, ErrNotCreator) {
		t.Fatalf("want ErrNotCreator, got %v", err)
	}

	resumed, err := rs.ResumeGame(dto.RoomControlRequest{RoomID: roomID, PlayerID: ids[0]})
	if err != nil || resumed.Room.Status != dto.STATUS_RUNNING {
		t.Fatalf("ResumeGame: %+v %v", resumed.Room, err)
	}
}

func TestRoomService_CleanupIdleRooms(t *testing.T) {
	rs := NewRoomService(RoomConfig{
		IdleTimeout:     20 * time.Millisecond,
		CleanupInterval: 10 * time.Millisecond,
	})
	t.Cleanup(rs.Close)

	created, err := rs.CreateRoom(dto.CreateRoomRequest{RoomName: "房间", CreatorName: "房主"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, err = rs.Snapshot(dto.RoomViewRequest{RoomID: created.RoomID})
		if errors.Is(err, ErrRoomNotFound) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatalf("idle room should be cleaned up, last error: %v", err)
}

func TestRoomService_Close(t *testing.T) {
	rs := NewRoomService(RoomConfig{})

	created, err := rs.CreateRoom(dto.CreateRoomRequest{RoomName: "房间", CreatorName: "房主"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	rs.Close()
	rs.Close()

	if _, err := rs.Snapshot(dto.RoomViewRequest{RoomID: created.RoomID}); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("closed service should forget its rooms, got %v", err)
	}
}
