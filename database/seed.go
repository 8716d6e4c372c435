// file: database/seed.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/SALIKRAFIQ01/th16/models"
)

// SeedDemoData 写入演示数据：10 支队伍、第 1–4 轮每队专属线索、
// 第 5 轮两两对决的共享线索、第 6/7 轮全员共享的决胜线索，以及管理员账号。
// 已有队伍数据时跳过，避免覆盖正在进行的比赛。
func SeedDemoData() {
	var count int64
	DB.Model(&models.Team{}).Count(&count)
	if count > 0 {
		log.Println("Seed skipped: teams already exist.")
		return
	}

	admin := models.Admin{Username: "admin", Password: "admin123", Role: models.AdminRoleAdmin}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Seed admin failed: %v", err)
		return
	}

	now := time.Now()
	teams := make([]models.Team, 0, 10)
	for i := 1; i <= 10; i++ {
		team := models.Team{
			TeamName:     fmt.Sprintf("Team %d", i),
			HashedCode:   fmt.Sprintf("TEAM%02d", i), // BeforeSave Hook 落库前哈希
			CurrentRound: 1,
			CurrentClue:  1,
			Status:       models.TeamStatusActive,
			StartTime:    now,
		}
		if err := DB.Create(&team).Error; err != nil {
			log.Printf("Seed team failed: %v", err)
			return
		}
		teams = append(teams, team)
	}

	// 第 1–4 轮：每轮 4 题，各队专属
	for round := 1; round <= 4; round++ {
		difficulty := models.ClueDifficultyMedium
		if round <= 2 {
			difficulty = models.ClueDifficultyEasy
		}
		for num := 1; num <= 4; num++ {
			for i, team := range teams {
				answer := fmt.Sprintf("CODE%d%d%d", round, num, i+1)
				hashed, err := models.HashAnswerCode(answer)
				if err != nil {
					log.Printf("Seed clue hash failed: %v", err)
					return
				}
				clue := models.Clue{
					Round:            round,
					ClueNumber:       num,
					Difficulty:       difficulty,
					ClueText:         fmt.Sprintf("Round %d - Clue %d for %s\n\nFind the hidden message at the location marked on your map.", round, num, team.TeamName),
					HashedAnswerCode: hashed,
					Location:         fmt.Sprintf("Location %d-%d-%d", round, num, i+1),
					IsActive:         true,
					AssignedTeams:    []models.Team{team},
				}
				if err := DB.Create(&clue).Error; err != nil {
					log.Printf("Seed clue failed: %v", err)
					return
				}
			}
		}
	}

	// 第 5 轮：1v2、3v4 两组对决共享线索，第 5 队单独一题
	seedShared := func(round, num int, difficulty models.ClueDifficulty, text, location, answer string, shared bool, assigned ...models.Team) {
		hashed, err := models.HashAnswerCode(answer)
		if err != nil {
			log.Printf("Seed clue hash failed: %v", err)
			return
		}
		clue := models.Clue{
			Round:            round,
			ClueNumber:       num,
			Difficulty:       difficulty,
			ClueText:         text,
			HashedAnswerCode: hashed,
			Location:         location,
			IsActive:         true,
			IsShared:         shared,
			AssignedTeams:    assigned,
		}
		if err := DB.Create(&clue).Error; err != nil {
			log.Printf("Seed clue failed: %v", err)
		}
	}

	seedShared(5, 1, models.ClueDifficultyMedium,
		"Round 5 - Pair 1\n\nYou and your opponent face the same challenge. The first to solve advances.",
		"Pair 1 Location", "PAIR1CODE", true, teams[0], teams[1])
	seedShared(5, 1, models.ClueDifficultyMedium,
		"Round 5 - Pair 2\n\nYou and your opponent face the same challenge. The first to solve advances.",
		"Pair 2 Location", "PAIR2CODE", true, teams[2], teams[3])
	seedShared(5, 1, models.ClueDifficultyMedium,
		"Round 5 - Solo\n\nYou face this challenge alone. Solve it to advance.",
		"Solo Location", "UNIQUECODE", false, teams[4])

	// 第 6/7 轮：全员共享的决胜线索
	seedShared(6, 1, models.ClueDifficultyHard,
		"Round 6 - Final Three\n\nThe first two to solve advance to the final round.",
		"Round 6 Location", "ROUND6CODE", true)
	seedShared(7, 1, models.ClueDifficultyHard,
		"Round 7 - The Final\n\nFirst to finish wins it all.",
		"Final Location", "FINALCODE", true)

	log.Println("Demo data seeded: 10 teams (codes TEAM01..TEAM10), admin/admin123.")
}
