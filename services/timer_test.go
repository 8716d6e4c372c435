// file: services/timer_test.go
package services

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestElapsed_DefaultsToHuntStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := NewRoundTimer(clock)
	team := testTeam(1, 1, 1, clock.Now())

	clock.Advance(42 * time.Second)

	// 第 1 轮没有显式开轮事件，退回整场开始时间
	if got := timer.Elapsed(team, 1); got != 42 {
		t.Fatalf("expected 42s, got %d", got)
	}
}

func TestElapsed_UsesRoundStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := NewRoundTimer(clock)
	team := testTeam(1, 2, 1, clock.Now())

	clock.Advance(100 * time.Second)
	team.RoundStartTimes.Set(2, clock.Now())
	clock.Advance(30 * time.Second)

	if got := timer.Elapsed(team, 2); got != 30 {
		t.Fatalf("expected 30s, got %d", got)
	}
}

func TestFinalize_WritesOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := NewRoundTimer(clock)
	team := testTeam(1, 1, 1, clock.Now())

	clock.Advance(60 * time.Second)
	if got := timer.Finalize(team, 1); got != 60 {
		t.Fatalf("expected 60s, got %d", got)
	}
	if team.TotalTime != 60 {
		t.Fatalf("expected total 60, got %d", team.TotalTime)
	}

	// 重复定格不得改变既有值，也不得重复累加
	clock.Advance(999 * time.Second)
	if got := timer.Finalize(team, 1); got != 60 {
		t.Fatalf("re-finalize should return the recorded 60s, got %d", got)
	}
	if team.TotalTime != 60 {
		t.Fatalf("re-finalize must not double-count, total is %d", team.TotalTime)
	}
	if recorded, _ := team.RoundTimes.Get(1); recorded != 60 {
		t.Fatalf("recorded round time changed to %d", recorded)
	}
}

func TestFinalize_AccumulatesAcrossRounds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := NewRoundTimer(clock)
	team := testTeam(1, 1, 1, clock.Now())

	clock.Advance(60 * time.Second)
	timer.Finalize(team, 1)
	team.RoundStartTimes.Set(2, clock.Now())
	clock.Advance(40 * time.Second)
	timer.Finalize(team, 2)

	if team.TotalTime != 100 {
		t.Fatalf("expected total 100, got %d", team.TotalTime)
	}
}

func TestFinalize_InvalidRound(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := NewRoundTimer(clock)
	team := testTeam(1, 1, 1, clock.Now())

	clock.Advance(10 * time.Second)
	if got := timer.Finalize(team, 0); got != 0 {
		t.Fatalf("invalid round must not finalize, got %d", got)
	}
	if team.TotalTime != 0 {
		t.Fatalf("invalid round must not touch total, got %d", team.TotalTime)
	}
}
