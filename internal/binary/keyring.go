package binary

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Keyring holds the OpenPGP public keys trusted for detached signatures.
type Keyring struct {
	entities openpgp.EntityList
}

// LoadKeyring reads an armored or binary public keyring from path.
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ParseKeyring(data)
}

// ParseKeyring parses an armored or binary public keyring.
func ParseKeyring(data []byte) (*Keyring, error) {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return &Keyring{entities: entities}, nil
}

// Len returns the number of keys in the keyring.
func (k *Keyring) Len() int {
	return len(k.entities)
}

// VerifyDetached checks sig, armored or binary, as a detached signature
// over data. Signatures starting with an armor header are only checked as
// armored.
func (k *Keyring) VerifyDetached(data, sig []byte) error {
	var err error
	if isArmored(sig) {
		_, err = openpgp.CheckArmoredDetachedSignature(k.entities, bytes.NewReader(data), bytes.NewReader(sig), nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(k.entities, bytes.NewReader(data), bytes.NewReader(sig), nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}
	return nil
}

func isArmored(sig []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(sig), []byte("-----BEGIN PGP"))
}
