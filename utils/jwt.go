// file: utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SALIKRAFIQ01/th16/models"
)

// Token 主体类型，队伍与管理员共用一套签发/解析
const (
	TokenTypeTeam  = "team"
	TokenTypeAdmin = "admin"
)

var jwtSecret []byte

// InitJWT 注入签名密钥，启动时从配置读取
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

type Claims struct {
	SubjectID uint32           `json:"subject_id"`
	Name      string           `json:"name"`
	Type      string           `json:"type"`
	Role      models.AdminRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func GenerateTeamToken(team *models.Team) (string, error) {
	claims := Claims{
		SubjectID: team.ID,
		Name:      team.TeamName,
		Type:      TokenTypeTeam,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func GenerateAdminToken(admin *models.Admin) (string, error) {
	claims := Claims{
		SubjectID: admin.ID,
		Name:      admin.Username,
		Type:      TokenTypeAdmin,
		Role:      admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
