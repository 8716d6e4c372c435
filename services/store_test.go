// file: services/store_test.go
package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SALIKRAFIQ01/th16/models"
)

// memStore GameStore 的内存假实现，测试专用。
// WithTeam 用互斥锁串行化并在 SaveTeam 时才写回，模拟事务语义。
type memStore struct {
	mu          sync.Mutex
	teams       map[uint32]*models.Team
	clues       []*models.Clue
	submissions []*models.Submission
	completed   []*models.CompletedClue
	checkpoints map[int]bool
}

func newMemStore() *memStore {
	return &memStore{
		teams:       make(map[uint32]*models.Team),
		checkpoints: make(map[int]bool),
	}
}

func (s *memStore) addTeam(t *models.Team) {
	s.teams[t.ID] = t
}

func (s *memStore) addClue(c *models.Clue) {
	s.clues = append(s.clues, c)
}

func (s *memStore) findClue(match func(*models.Clue) bool) *models.Clue {
	for _, c := range s.clues {
		if c.IsActive && match(c) {
			return c
		}
	}
	return nil
}

func (s *memStore) ClueForTeam(ctx context.Context, teamID uint32, round, number int) (*models.Clue, error) {
	return s.findClue(func(c *models.Clue) bool {
		if c.Round != round || c.ClueNumber != number {
			return false
		}
		return len(c.AssignedTeams) == 0 || c.AssignedTo(teamID) || c.IsShared
	}), nil
}

func (s *memStore) ClueAt(ctx context.Context, round, number int) (*models.Clue, error) {
	return s.findClue(func(c *models.Clue) bool {
		return c.Round == round && c.ClueNumber == number
	}), nil
}

func (s *memStore) TeamByID(ctx context.Context, id uint32) (*models.Team, error) {
	team, ok := s.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *team
	return &cp, nil
}

func (s *memStore) WithTeam(ctx context.Context, teamID uint32, fn func(tx Tx, team *models.Team) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamID]
	if !ok {
		return ErrTeamNotFound
	}
	cp := *team
	return fn(&memTx{s: s}, &cp)
}

func (s *memStore) ActiveTeamsFromRound(ctx context.Context, round int) ([]*models.Team, error) {
	return s.sortedTeams(func(t *models.Team) bool {
		return t.Status == models.TeamStatusActive && t.CurrentRound >= round
	}, true), nil
}

func (s *memStore) FinalistsInRound(ctx context.Context, round int) ([]*models.Team, error) {
	return s.sortedTeams(func(t *models.Team) bool {
		return t.Status == models.TeamStatusFinalist && t.CurrentRound == round
	}, false), nil
}

// sortedTeams 复刻存储层的排序约定：byTotal 时按总用时升序，
// 并列按报名先后；否则只按报名先后
func (s *memStore) sortedTeams(match func(*models.Team) bool, byTotal bool) []*models.Team {
	var out []*models.Team
	for _, t := range s.teams {
		if match(t) {
			cp := *t
			out = append(out, &cp)
		}
	}
	less := func(a, b *models.Team) bool {
		if byTotal && a.TotalTime != b.TotalTime {
			return a.TotalTime < b.TotalTime
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (s *memStore) SaveTeam(ctx context.Context, team *models.Team) error {
	cp := *team
	s.teams[team.ID] = &cp
	return nil
}

func (s *memStore) BeginCheckpoint(ctx context.Context, round int) (bool, error) {
	if s.checkpoints[round] {
		return false, nil
	}
	s.checkpoints[round] = true
	return true, nil
}

func (s *memStore) CompletedClueCount(ctx context.Context, teamID uint32) (int64, error) {
	var n int64
	for _, cc := range s.completed {
		if cc.TeamID == teamID {
			n++
		}
	}
	return n, nil
}

type memTx struct {
	s *memStore
}

func (t *memTx) ClueForTeam(ctx context.Context, teamID uint32, round, number int) (*models.Clue, error) {
	return t.s.ClueForTeam(ctx, teamID, round, number)
}

func (t *memTx) ClueAt(ctx context.Context, round, number int) (*models.Clue, error) {
	return t.s.ClueAt(ctx, round, number)
}

func (t *memTx) CreateSubmission(sub *models.Submission) error {
	t.s.submissions = append(t.s.submissions, sub)
	return nil
}

func (t *memTx) CreateCompletedClue(cc *models.CompletedClue) error {
	t.s.completed = append(t.s.completed, cc)
	return nil
}

func (t *memTx) SaveTeam(team *models.Team) error {
	cp := *team
	t.s.teams[team.ID] = &cp
	return nil
}

// fakeNotifier 记录推送事件
type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Emit(event string, payload interface{}) {
	f.events = append(f.events, event)
}

// testClue 构造测试线索，答案用最低成本哈希以加快测试
func testClue(id uint32, round, number int, answer string, mod ...func(*models.Clue)) *models.Clue {
	hashed, err := bcrypt.GenerateFromPassword([]byte(models.NormalizeAnswer(answer)), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	clue := &models.Clue{
		ID:               id,
		Round:            round,
		ClueNumber:       number,
		HashedAnswerCode: string(hashed),
		IsActive:         true,
	}
	for _, m := range mod {
		m(clue)
	}
	return clue
}

func assignedTo(teams ...uint32) func(*models.Clue) {
	return func(c *models.Clue) {
		for _, id := range teams {
			c.AssignedTeams = append(c.AssignedTeams, models.Team{ID: id})
		}
	}
}

func shared() func(*models.Clue) {
	return func(c *models.Clue) { c.IsShared = true }
}

func testTeam(id uint32, round, clue int, start time.Time) *models.Team {
	return &models.Team{
		ID:           id,
		TeamName:     "team",
		CurrentRound: round,
		CurrentClue:  clue,
		Status:       models.TeamStatusActive,
		StartTime:    start,
		CreatedAt:    start,
	}
}
