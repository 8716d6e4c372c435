// file: services/resolver_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SALIKRAFIQ01/th16/models"
)

func TestResolveClue_AssignedTeam(t *testing.T) {
	store := newMemStore()
	store.addClue(testClue(1, 1, 1, "code", assignedTo(10)))
	team := testTeam(10, 1, 1, time.Now())

	clue, err := ResolveClue(context.Background(), store, team, 1, 1)
	if err != nil {
		t.Fatalf("ResolveClue returned error: %v", err)
	}
	if clue.ID != 1 {
		t.Fatalf("expected clue 1, got %d", clue.ID)
	}
}

func TestResolveClue_OpenClue(t *testing.T) {
	store := newMemStore()
	store.addClue(testClue(1, 2, 1, "code")) // 无指派，对所有队伍开放
	team := testTeam(99, 2, 1, time.Now())

	clue, err := ResolveClue(context.Background(), store, team, 2, 1)
	if err != nil {
		t.Fatalf("ResolveClue returned error: %v", err)
	}
	if clue.ID != 1 {
		t.Fatalf("expected clue 1, got %d", clue.ID)
	}
}

func TestResolveClue_SharedClue(t *testing.T) {
	store := newMemStore()
	store.addClue(testClue(1, 5, 1, "code", assignedTo(10, 11), shared()))
	outsider := testTeam(12, 5, 1, time.Now())

	clue, err := ResolveClue(context.Background(), store, outsider, 5, 1)
	if err != nil {
		t.Fatalf("shared clue should be visible to any team, got %v", err)
	}
	if clue.ID != 1 {
		t.Fatalf("expected clue 1, got %d", clue.ID)
	}
}

func TestResolveClue_AccessDeniedNotNotFound(t *testing.T) {
	store := newMemStore()
	store.addClue(testClue(1, 3, 2, "code", assignedTo(10)))
	teamB := testTeam(20, 3, 2, time.Now())

	_, err := ResolveClue(context.Background(), store, teamB, 3, 2)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestResolveClue_NotFound(t *testing.T) {
	store := newMemStore()
	team := testTeam(10, 1, 1, time.Now())

	_, err := ResolveClue(context.Background(), store, team, 1, 1)
	if !errors.Is(err, ErrClueNotFound) {
		t.Fatalf("expected ErrClueNotFound, got %v", err)
	}
}

func TestResolveClue_InactiveInvisible(t *testing.T) {
	store := newMemStore()
	store.addClue(testClue(1, 1, 1, "code", func(c *models.Clue) { c.IsActive = false }))
	team := testTeam(10, 1, 1, time.Now())

	_, err := ResolveClue(context.Background(), store, team, 1, 1)
	if !errors.Is(err, ErrClueNotFound) {
		t.Fatalf("inactive clue should behave as absent, got %v", err)
	}
}

func TestResolveClue_InvalidRound(t *testing.T) {
	store := newMemStore()
	team := testTeam(10, 1, 1, time.Now())

	for _, round := range []int{0, 8, -1} {
		if _, err := ResolveClue(context.Background(), store, team, round, 1); !errors.Is(err, ErrInvalidRound) {
			t.Fatalf("round %d: expected ErrInvalidRound, got %v", round, err)
		}
	}
}
