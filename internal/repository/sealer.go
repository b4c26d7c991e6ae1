package repository

import (
	"bytes"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
)

// noExpiry disables the fernet token age check. Records are long lived.
const noExpiry = -1

// Sealer encrypts record payloads at rest with a fernet key.
// A nil *Sealer stores plaintext.
type Sealer struct {
	key *fernet.Key
}

// NewSealer decodes a base64 fernet key. An empty key returns a nil Sealer.
func NewSealer(encodedKey string) (*Sealer, error) {
	if encodedKey == "" {
		return nil, nil
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return &Sealer{key: key}, nil
}

func (s *Sealer) seal(plain []byte) ([]byte, error) {
	if s == nil {
		return plain, nil
	}
	token, err := fernet.EncryptAndSign(plain, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to seal record: %w", err)
	}
	return token, nil
}

// open returns the JSON payload of a stored row. Rows written before a key
// was configured are plain JSON and are returned unchanged.
func (s *Sealer) open(stored []byte) ([]byte, error) {
	if isPlainJSON(stored) {
		return stored, nil
	}
	if s == nil {
		return nil, fmt.Errorf("%w: record is sealed but no encryption key is configured", apperrors.ErrCorruptRecord)
	}
	plain := fernet.VerifyAndDecrypt(stored, noExpiry, []*fernet.Key{s.key})
	if plain == nil {
		return nil, fmt.Errorf("%w: record failed verification", apperrors.ErrCorruptRecord)
	}
	return plain, nil
}

func isPlainJSON(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && (data[0] == '{' || data[0] == '[')
}
