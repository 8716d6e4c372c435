// file: utils/code_generator.go
package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateTeamCode 生成指定长度的随机队伍登录暗号，
// 仅在创建队伍时返回给管理员一次，落库的只有哈希
func GenerateTeamCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(charset[seededRand.Intn(len(charset))])
	}
	return sb.String()
}

// GeneratePhotoName 生成上传照片的存储文件名
func GeneratePhotoName(ext string) string {
	return fmt.Sprintf("%s%s", strings.Replace(uuid.New().String(), "-", "", -1), ext)
}
