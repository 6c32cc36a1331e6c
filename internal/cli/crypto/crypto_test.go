package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestDeriveKey_LengthAndDeterminism(t *testing.T) {
	k1 := DeriveKey("correct-horse", "42")
	if len(k1) != 32 {
		t.Fatalf("key len want 32, got %d", len(k1))
	}
	// та же пара (фраза, соль) — тот же ключ
	k2 := DeriveKey("correct-horse", "42")
	if !bytes.Equal(k1, k2) {
		t.Fatalf("same passphrase+salt must derive the same key")
	}
}

func TestDeriveKey_Divergence(t *testing.T) {
	base := DeriveKey("correct-horse", "42")
	if bytes.Equal(base, DeriveKey("wrong-horse", "42")) {
		t.Fatalf("different passphrases must derive different keys")
	}
	if bytes.Equal(base, DeriveKey("correct-horse", "43")) {
		t.Fatalf("different salts must derive different keys")
	}
}

func TestDeriveKey_EmptyInputs(t *testing.T) {
	if DeriveKey("", "42") != nil {
		t.Fatalf("empty passphrase must yield nil key")
	}
	if DeriveKey("correct-horse", "") != nil {
		t.Fatalf("empty salt must yield nil key")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := DeriveKey("correct-horse", "42")

	for _, plain := range []string{"Tax ID", "a", strings.Repeat("x", 4096), "кириллица и 🙂"} {
		packed, err := EncryptString(plain, key)
		if err != nil {
			t.Fatalf("encrypt %q: %v", plain, err)
		}
		if packed == plain {
			t.Fatalf("ciphertext must not equal plaintext")
		}
		if !strings.Contains(packed, ":") {
			t.Fatalf("packed form must contain separator, got %q", packed)
		}
		if got := DecryptString(packed, key); got != plain {
			t.Fatalf("round trip: want %q, got %q", plain, got)
		}
	}
}

func TestEncryptString_EmptyPlaintext(t *testing.T) {
	key := DeriveKey("correct-horse", "42")
	packed, err := EncryptString("", key)
	if err != nil {
		t.Fatalf("encrypt empty: %v", err)
	}
	if packed != "" {
		t.Fatalf("empty plaintext must pack to empty string, got %q", packed)
	}
}

func TestEncryptString_FreshNonce(t *testing.T) {
	key := DeriveKey("correct-horse", "42")
	a, err := EncryptString("same plaintext", key)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptString("same plaintext", key)
	if err != nil {
		t.Fatal(err)
	}
	// одинаковый plaintext, но разный nonce — разные упаковки
	if a == b {
		t.Fatalf("two encryptions of the same plaintext must differ")
	}
}

func TestEncryptString_BadKey(t *testing.T) {
	if _, err := EncryptString("data", []byte("short")); err == nil {
		t.Fatalf("invalid key length must fail encryption")
	}
}

func TestDecryptString_WrongKey(t *testing.T) {
	packed, err := EncryptString("secret", DeriveKey("correct-horse", "42"))
	if err != nil {
		t.Fatal(err)
	}
	if got := DecryptString(packed, DeriveKey("wrong-horse", "42")); got != "" {
		t.Fatalf("wrong key must yield empty string, got %q", got)
	}
}

func TestDecryptString_MalformedInput(t *testing.T) {
	key := DeriveKey("correct-horse", "42")
	cases := []string{
		"",                     // пустая строка
		"no-separator",         // нет разделителя
		"!!!:AAAA",             // битый base64 в nonce
		"AAAA:!!!",             // битый base64 в шифртексте
		"AAAA:AAAA",            // nonce неправильной длины
		":",                    // обе части пустые
		"AAAABBBBCCCCDDDD:",    // пустой шифртекст
	}
	for _, packed := range cases {
		if got := DecryptString(packed, key); got != "" {
			t.Fatalf("malformed %q must yield empty string, got %q", packed, got)
		}
	}
	if got := DecryptString("AAAA:AAAA", nil); got != "" {
		t.Fatalf("nil key must yield empty string, got %q", got)
	}
}

func TestDecryptString_TamperedCiphertext(t *testing.T) {
	key := DeriveKey("correct-horse", "42")
	packed, err := EncryptString("secret", key)
	if err != nil {
		t.Fatal(err)
	}
	// портим последний символ шифртекста
	tampered := packed[:len(packed)-2] + "A="
	if tampered == packed {
		tampered = packed[:len(packed)-2] + "B="
	}
	if got := DecryptString(tampered, key); got != "" {
		t.Fatalf("tampered ciphertext must yield empty string, got %q", got)
	}
}
