// file: services/verifier.go
package services

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/SALIKRAFIQ01/th16/models"
)

// VerifyAnswer 校验提交的暗号。先归一化（小写、去首尾空白），
// 再与线索的单向哈希做恒定时间比对，绝不做明文比较。
// 比对失败不是错误，而是一次正常的"答错"。
func VerifyAnswer(clue *models.Clue, submitted string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(clue.HashedAnswerCode),
		[]byte(models.NormalizeAnswer(submitted)),
	)
	return err == nil
}
