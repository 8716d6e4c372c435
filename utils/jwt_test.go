// file: utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/SALIKRAFIQ01/th16/models"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	team := &models.Team{ID: 42, TeamName: "night-owls"}
	token, err := GenerateTeamToken(team)
	if err != nil {
		t.Fatalf("GenerateTeamToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SubjectID != 42 || claims.Name != "night-owls" || claims.Type != TokenTypeTeam {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	admin := &models.Admin{ID: 7, Username: "ops", Role: models.AdminRoleSuper}
	token, err = GenerateAdminToken(admin)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	claims, err = ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SubjectID != 7 || claims.Type != TokenTypeAdmin || claims.Role != models.AdminRoleSuper {
		t.Fatalf("unexpected admin claims: %+v", claims)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	InitJWT("secret-a")
	token, err := GenerateTeamToken(&models.Team{ID: 1, TeamName: "x"})
	if err != nil {
		t.Fatalf("GenerateTeamToken: %v", err)
	}

	InitJWT("secret-b")
	if _, err := ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestGenerateTeamCode(t *testing.T) {
	code := GenerateTeamCode(8)
	if len(code) != 8 {
		t.Fatalf("expected length 8, got %d", len(code))
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			t.Fatalf("unexpected character %q in code %q", r, code)
		}
	}
}
