// file: services/timer.go
package services

import (
	"github.com/jonboulle/clockwork"

	"github.com/SALIKRAFIQ01/th16/models"
)

// RoundTimer 计算并定格各轮用时。时钟注入以便测试。
type RoundTimer struct {
	clock clockwork.Clock
}

func NewRoundTimer(clock clockwork.Clock) *RoundTimer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RoundTimer{clock: clock}
}

// Elapsed 返回队伍在指定轮次已耗费的秒数。
// 该轮没有记录开始时间时退回整场开始时间（第 1 轮没有显式的开轮事件）。
func (rt *RoundTimer) Elapsed(team *models.Team, round int) int64 {
	start, ok := team.RoundStartTimes.Get(round)
	if !ok {
		start = team.StartTime
	}
	return int64(rt.clock.Now().Sub(start).Seconds())
}

// Finalize 把指定轮次的用时定格进队伍档案并累加进总用时。
// 每轮只定格一次：已定格的轮次直接返回既有值，总用时不再变动。
func (rt *RoundTimer) Finalize(team *models.Team, round int) int64 {
	if !models.ValidRound(round) {
		return 0
	}
	if recorded, ok := team.RoundTimes.Get(round); ok {
		return recorded
	}
	elapsed := rt.Elapsed(team, round)
	team.RoundTimes.Set(round, elapsed)
	team.TotalTime += elapsed
	return elapsed
}
