package session

import "testing"

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("admin")
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyPassword("admin", hash) {
		t.Fatal("correct password was rejected")
	}
}

func TestPasswordSingleCharMutation(t *testing.T) {
	const password = "correct horse"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(password); i++ {
		mutated := []byte(password)
		mutated[i] ^= 0x20
		if VerifyPassword(string(mutated), hash) {
			t.Fatalf("mutation at position %v was accepted", i)
		}
	}
}

func TestPasswordNeverPanicsOnBadHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$10$short"} {
		if VerifyPassword("whatever", hash) {
			t.Fatalf("accepted password against corrupt hash %q", hash)
		}
	}
}
