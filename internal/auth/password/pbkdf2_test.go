package password

import "testing"

func TestHashDeterministic(t *testing.T) {
	salt, hash, err := Hash("correct horse", "")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if len(salt) != saltBytes*2 {
		t.Fatalf("salt hex length = %d, want %d", len(salt), saltBytes*2)
	}
	if len(hash) != keyBytes*2 {
		t.Fatalf("hash hex length = %d, want %d", len(hash), keyBytes*2)
	}

	_, again, err := Hash("correct horse", salt)
	if err != nil {
		t.Fatalf("rehash error: %v", err)
	}
	if again != hash {
		t.Fatalf("same password+salt produced different hashes: %s vs %s", hash, again)
	}
}

func TestFreshSaltPerCall(t *testing.T) {
	s1, h1, _ := Hash("pw", "")
	s2, h2, _ := Hash("pw", "")
	if s1 == s2 {
		t.Fatalf("two generated salts are equal")
	}
	if h1 == h2 {
		t.Fatalf("different salts produced equal hashes")
	}
}

func TestVerify(t *testing.T) {
	salt, hash, err := Hash("secret", "")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if !Verify("secret", salt, hash) {
		t.Fatalf("expected password to verify")
	}
	if Verify("wrong", salt, hash) {
		t.Fatalf("expected wrong password to fail")
	}

	// один испорченный hex-символ — не совпало
	mutated := []byte(hash)
	if mutated[0] == '0' {
		mutated[0] = '1'
	} else {
		mutated[0] = '0'
	}
	if Verify("secret", salt, string(mutated)) {
		t.Fatalf("expected mutated hash to fail")
	}

	// другая длина — не совпало, без паники
	if Verify("secret", salt, hash[:len(hash)-2]) {
		t.Fatalf("expected truncated hash to fail")
	}
	if Verify("secret", salt, "") {
		t.Fatalf("expected empty hash to fail")
	}
}
