package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	sealedPrefix = "sealed:"
	nonceSize    = 24
)

var sealerSalt = []byte("hotelbooking/client-storage")

// Sealer encrypts values before they reach durable storage. A nil Sealer
// stores values as-is.
type Sealer struct {
	key [32]byte
}

func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, nil
	}
	derived, err := scrypt.Key([]byte(secret), sealerSalt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("deriving storage key: %w", err)
	}
	s := &Sealer{}
	copy(s.key[:], derived)
	return s, nil
}

func (s *Sealer) Seal(plain string) (string, error) {
	if s == nil {
		return plain, nil
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return sealedPrefix + base64.StdEncoding.EncodeToString(box), nil
}

// Open reverses Seal. Values written before a secret was configured are
// returned unchanged.
func (s *Sealer) Open(stored string) (string, error) {
	if !strings.HasPrefix(stored, sealedPrefix) {
		return stored, nil
	}
	if s == nil {
		return "", fmt.Errorf("stored value is sealed but STORAGE_SECRET is not set")
	}
	box, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("decoding sealed value: %w", err)
	}
	if len(box) < nonceSize {
		return "", fmt.Errorf("sealed value too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", fmt.Errorf("sealed value failed authentication")
	}
	return string(plain), nil
}
