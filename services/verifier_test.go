// file: services/verifier_test.go
package services

import (
	"testing"
)

func TestVerifyAnswer_Normalization(t *testing.T) {
	clue := testClue(1, 1, 1, "Secret Word")

	for _, submitted := range []string{"secret word", "SECRET WORD", "  Secret Word  ", "\tsecret word\n"} {
		if !VerifyAnswer(clue, submitted) {
			t.Fatalf("%q should verify against the stored hash", submitted)
		}
	}
}

func TestVerifyAnswer_Wrong(t *testing.T) {
	clue := testClue(1, 1, 1, "right")

	for _, submitted := range []string{"wrong", "", "right!"} {
		if VerifyAnswer(clue, submitted) {
			t.Fatalf("%q should not verify", submitted)
		}
	}
}
