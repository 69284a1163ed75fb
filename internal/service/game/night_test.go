package game

import (
	"slices"
	"testing"
)

func TestNightResolver_ScenarioA(t *testing.T) {
	gs := newScenarioState()

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes:  map[string]string{"p1": "p3", "p2": "p3"},
		SeerTarget: "p1",
	})

	if !res.Kill.Success || res.Kill.TargetID != "p3" || res.Kill.MaxVotes != 2 {
		t.Fatalf("unexpected kill result: %+v", res.Kill)
	}

	if res.Check == nil || !res.Check.Success || !res.Check.IsWolf {
		t.Fatalf("seer should find a wolf, got %+v", res.Check)
	}

	if !slices.Equal(res.Deaths, []string{"p3"}) {
		t.Fatalf("deaths: want [p3] got %v", res.Deaths)
	}

	p3 := gs.PlayerByID("p3")
	if p3.Alive || p3.DeathReason != DeathWolfKilled || p3.DeathRound != 1 {
		t.Fatalf("p3 should be killed by wolves in round 1, got %+v", p3)
	}

	if !slices.Equal(gs.LastNightDeaths, []string{"p3"}) {
		t.Fatalf("last night deaths not recorded: %v", gs.LastNightDeaths)
	}

	win := EvaluateWin(gs.Players)
	if win.Ended || win.AliveWolves != 2 || win.AlivePlains != 1 || win.AliveDivine() != 2 {
		t.Fatalf("game should continue, got %+v", win)
	}
}

func TestNightResolver_ScenarioB(t *testing.T) {
	gs := newScenarioState()
	witch := gs.PlayerByID("p6")
	witch.Role.MarkFirstNightPassed()

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes:     map[string]string{"p1": "p3", "p2": "p3"},
		SeerTarget:    "p1",
		WitchAntidote: true,
	})

	if res.Witch == nil || !res.Witch.Success || res.Witch.SavedID != "p3" {
		t.Fatalf("witch should save p3, got %+v", res.Witch)
	}

	if len(res.Deaths) != 0 {
		t.Fatalf("nobody should die, got %v", res.Deaths)
	}

	if !gs.PlayerByID("p3").Alive {
		t.Fatalf("p3 should be alive")
	}

	if witch.Role.Antidote().IsAvailable() {
		t.Fatalf("antidote should be consumed")
	}
}

func TestNightResolver_WolfTieLowestSeat(t *testing.T) {
	gs := newScenarioState()

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes: map[string]string{"p1": "p4", "p2": "p3"},
	})

	if res.Kill.TargetID != "p3" {
		t.Fatalf("tie should go to the lowest seat, got %s", res.Kill.TargetID)
	}

	if !slices.Equal(res.Kill.Tied, []string{"p3", "p4"}) {
		t.Fatalf("tied targets: want [p3 p4] got %v", res.Kill.Tied)
	}
}

func TestNightResolver_RejectsNonWolfVoters(t *testing.T) {
	gs := newScenarioState()

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes: map[string]string{"p3": "p4", "p5": "p1", "p1": ""},
	})

	if res.Kill.Success {
		t.Fatalf("no valid wolf vote, kill should fail: %+v", res.Kill)
	}

	if res.Kill.Reason != REJECT_NO_WOLF_VOTES {
		t.Fatalf("unexpected reason %q", res.Kill.Reason)
	}

	if res.Kill.Rejected["p3"] != REJECT_VOTER_NOT_WOLF || res.Kill.Rejected["p5"] != REJECT_VOTER_NOT_WOLF {
		t.Fatalf("non-wolf voters should be rejected: %v", res.Kill.Rejected)
	}

	if _, ok := res.Kill.Rejected["p1"]; ok {
		t.Fatalf("an empty wolf vote is ignored, not rejected")
	}

	if len(res.Deaths) != 0 || gs.CountAlive() != PLAYER_COUNT {
		t.Fatalf("nobody should die, got %v", res.Deaths)
	}
}

func TestNightResolver_DeadWolfVoteIgnored(t *testing.T) {
	gs := newScenarioState()
	gs.PlayerByID("p2").MarkDead(DeathVotedOut, 0)

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes: map[string]string{"p1": "p4", "p2": "p3"},
	})

	if res.Kill.TargetID != "p4" {
		t.Fatalf("only the living wolf counts, got %s", res.Kill.TargetID)
	}

	if res.Kill.Rejected["p2"] != REJECT_VOTER_NOT_WOLF {
		t.Fatalf("dead wolf vote should be rejected: %v", res.Kill.Rejected)
	}
}

func TestNightResolver_WolfKillEventVisibility(t *testing.T) {
	gs := newScenarioState()

	NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes: map[string]string{"p1": "p3", "p2": "p3"},
	})

	for _, id := range []string{"p1", "p2"} {
		if countEvents(gs.EventsFor(id), EVENT_WOLF_KILL) != 1 {
			t.Fatalf("wolf %s should see the kill decision", id)
		}
	}

	for _, id := range []string{"p3", "p4", "p5", "p6", ""} {
		if countEvents(gs.EventsFor(id), EVENT_WOLF_KILL) != 0 {
			t.Fatalf("viewer %q must not see the kill decision", id)
		}
	}
}

func TestNightResolver_SeerChecks(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		gs := newScenarioState()
		res := NewNightResolver().Resolve(gs, RoundActions{SeerTarget: "p5"})

		if res.Check.Success || res.Check.Reason != REJECT_CHECK_SELF {
			t.Fatalf("self check should be rejected, got %+v", res.Check)
		}
	})

	t.Run("dead seer", func(t *testing.T) {
		gs := newScenarioState()
		gs.PlayerByID("p5").MarkDead(DeathVotedOut, 0)

		res := NewNightResolver().Resolve(gs, RoundActions{SeerTarget: "p1"})
		if res.Check.Success || res.Check.Reason != REJECT_NO_SEER {
			t.Fatalf("dead seer cannot check, got %+v", res.Check)
		}
	})

	t.Run("dead target", func(t *testing.T) {
		gs := newScenarioState()
		gs.PlayerByID("p3").MarkDead(DeathVotedOut, 0)

		res := NewNightResolver().Resolve(gs, RoundActions{SeerTarget: "p3"})
		if res.Check.Success || res.Check.Reason != REJECT_TARGET_INVALID {
			t.Fatalf("dead target cannot be checked, got %+v", res.Check)
		}
	})

	t.Run("good target", func(t *testing.T) {
		gs := newScenarioState()
		res := NewNightResolver().Resolve(gs, RoundActions{SeerTarget: "p6"})

		if !res.Check.Success || res.Check.IsWolf {
			t.Fatalf("witch is good, got %+v", res.Check)
		}

		if countEvents(gs.EventsFor("p5"), EVENT_SEER_CHECK) != 1 {
			t.Fatalf("seer should see her result")
		}

		if countEvents(gs.EventsFor("p1"), EVENT_SEER_CHECK) != 0 {
			t.Fatalf("check result must stay private")
		}
	})

	t.Run("no target", func(t *testing.T) {
		gs := newScenarioState()
		res := NewNightResolver().Resolve(gs, RoundActions{})

		if res.Check != nil {
			t.Fatalf("no check requested, got %+v", res.Check)
		}
	})
}

func TestNightResolver_WitchBothPotions(t *testing.T) {
	gs := newScenarioState()
	witch := gs.PlayerByID("p6")

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes:         map[string]string{"p1": "p3"},
		WitchAntidote:     true,
		WitchPoisonTarget: "p1",
	})

	if res.Witch.Success || res.Witch.Reason != REJECT_BOTH_POTIONS {
		t.Fatalf("both potions should be rejected, got %+v", res.Witch)
	}

	if !witch.Role.Antidote().IsAvailable() || !witch.Role.Poison().IsAvailable() {
		t.Fatalf("a rejected action must not consume potions")
	}

	if !slices.Equal(res.Deaths, []string{"p3"}) {
		t.Fatalf("kill should stand, got %v", res.Deaths)
	}
}

func TestNightResolver_WitchFirstNightSelfSave(t *testing.T) {
	gs := newScenarioState()
	witch := gs.PlayerByID("p6")

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes:     map[string]string{"p1": "p6", "p2": "p6"},
		WitchAntidote: true,
	})

	if res.Witch.Success || res.Witch.Reason != REJECT_FIRST_NIGHT_SELF {
		t.Fatalf("first night self save should be rejected, got %+v", res.Witch)
	}

	if witch.Alive || !witch.Role.Antidote().IsAvailable() {
		t.Fatalf("witch should die with the antidote unused")
	}
}

func TestNightResolver_WitchSelfSaveAfterFirstNight(t *testing.T) {
	gs := newScenarioState()
	witch := gs.PlayerByID("p6")
	nr := NewNightResolver()

	nr.Resolve(gs, RoundActions{})
	if witch.Role.IsFirstNight() {
		t.Fatalf("first night flag should clear after the witch survives a night")
	}

	gs.nextRound()
	res := nr.Resolve(gs, RoundActions{
		WolfVotes:     map[string]string{"p1": "p6"},
		WitchAntidote: true,
	})

	if !res.Witch.Success || !witch.Alive || len(res.Deaths) != 0 {
		t.Fatalf("self save should work after the first night, got %+v", res.Witch)
	}
}

func TestNightResolver_WitchAntidoteWithoutKill(t *testing.T) {
	gs := newScenarioState()

	res := NewNightResolver().Resolve(gs, RoundActions{WitchAntidote: true})
	if res.Witch.Success || res.Witch.Reason != REJECT_NO_KILL {
		t.Fatalf("nothing to save, got %+v", res.Witch)
	}

	if !gs.PlayerByID("p6").Role.Antidote().IsAvailable() {
		t.Fatalf("antidote must not be consumed")
	}
}

func TestNightResolver_WitchPoison(t *testing.T) {
	gs := newScenarioState()
	nr := NewNightResolver()

	res := nr.Resolve(gs, RoundActions{
		WolfVotes:         map[string]string{"p1": "p3", "p2": "p3"},
		WitchPoisonTarget: "p1",
	})

	if !slices.Equal(res.Deaths, []string{"p3", "p1"}) {
		t.Fatalf("deaths: want [p3 p1] got %v", res.Deaths)
	}

	if gs.PlayerByID("p1").DeathReason != DeathPoisoned {
		t.Fatalf("p1 should be poisoned")
	}

	gs.nextRound()
	res = nr.Resolve(gs, RoundActions{WitchPoisonTarget: "p2"})

	if res.Witch.Success || res.Witch.Reason != REJECT_POISON_EXHAUSTED {
		t.Fatalf("poison is single use, got %+v", res.Witch)
	}

	if !gs.PlayerByID("p2").Alive {
		t.Fatalf("p2 should survive")
	}
}

func TestNightResolver_PoisonKillTarget(t *testing.T) {
	gs := newScenarioState()

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes:         map[string]string{"p1": "p3"},
		WitchPoisonTarget: "p3",
	})

	if !slices.Equal(res.Deaths, []string{"p3"}) {
		t.Fatalf("death list must not repeat a player, got %v", res.Deaths)
	}

	if gs.PlayerByID("p3").DeathReason != DeathPoisoned {
		t.Fatalf("poison takes precedence as the cause of death")
	}
}

func TestNightResolver_NoWitch(t *testing.T) {
	gs := newScenarioState()
	gs.PlayerByID("p6").MarkDead(DeathVotedOut, 0)

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes:         map[string]string{"p1": "p3"},
		WitchPoisonTarget: "p1",
	})

	if res.Witch == nil || res.Witch.Reason != REJECT_NO_WITCH {
		t.Fatalf("dead witch cannot act, got %+v", res.Witch)
	}

	if !gs.PlayerByID("p1").Alive {
		t.Fatalf("p1 should not be poisoned")
	}
}

func TestComputeDeaths_SavedAndPoisonedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("saving and poisoning the same player should panic")
		}
	}()

	computeDeaths(
		WolfKillResult{Success: true, TargetID: "p3"},
		&WitchActionResult{AntidoteUsed: true, SavedID: "p3", PoisonUsed: true, PoisonedID: "p3"},
	)
}

func TestNightResolver_WitchAntidoteOncePerGame(t *testing.T) {
	gs := newScenarioState()
	witch := gs.PlayerByID("p6")
	nr := NewNightResolver()

	res := nr.Resolve(gs, RoundActions{
		WolfVotes:     map[string]string{"p1": "p3"},
		WitchAntidote: true,
	})
	if !res.Witch.Success || res.Witch.SavedID != "p3" || len(res.Deaths) != 0 {
		t.Fatalf("first antidote should save p3, got %+v deaths=%v", res.Witch, res.Deaths)
	}

	gs.nextRound()
	res = nr.Resolve(gs, RoundActions{
		WolfVotes:     map[string]string{"p1": "p4"},
		WitchAntidote: true,
	})

	if res.Witch.Success || res.Witch.Reason != REJECT_ANTIDOTE_EXHAUSTED {
		t.Fatalf("antidote is single use, got %+v", res.Witch)
	}

	if !slices.Equal(res.Deaths, []string{"p4"}) {
		t.Fatalf("deaths: want [p4] got %v", res.Deaths)
	}

	p4 := gs.PlayerByID("p4")
	if p4.Alive || p4.DeathReason != DeathWolfKilled {
		t.Fatalf("p4 should be killed by wolves, got %+v", p4)
	}

	if witch.Role.Antidote().Remaining != 0 || !witch.Role.Poison().IsAvailable() {
		t.Fatalf("rejected antidote must not touch the poison")
	}
}

func TestNightResolver_FirstNightEndsEvenWhenRejected(t *testing.T) {
	gs := newScenarioState()
	witch := gs.PlayerByID("p6")

	res := NewNightResolver().Resolve(gs, RoundActions{
		WolfVotes:         map[string]string{"p1": "p3"},
		WitchAntidote:     true,
		WitchPoisonTarget: "p2",
	})

	if res.Witch.Success {
		t.Fatalf("both potions should be rejected, got %+v", res.Witch)
	}

	if witch.Role.IsFirstNight() {
		t.Fatalf("first night ends once the witch has lived through it, whatever she did")
	}
}
