package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zarlcorp/core/pkg/zcrypto"
)

// sealed envelope: magic || salt || zcrypto ciphertext
const sealMagic = "DSGSEAL1"

var (
	// ErrBadSeal is returned when sealed data cannot be opened, either
	// because it is damaged or because the passphrase is wrong.
	ErrBadSeal = errors.New("sealed data is damaged or the passphrase is wrong")

	// ErrNoPassphrase is returned when sealing or unsealing without one.
	ErrNoPassphrase = errors.New("passphrase required")
)

// Seal encrypts plain under a key derived from passphrase and a fresh salt.
func Seal(passphrase string, plain []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("seal: %w", ErrNoPassphrase)
	}

	salt, err := zcrypto.RandBytes(zcrypto.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("seal: generate salt: %w", err)
	}

	key, _, err := zcrypto.DeriveKey([]byte(passphrase), salt)
	if err != nil {
		return nil, fmt.Errorf("seal: derive key: %w", err)
	}
	defer zcrypto.Erase(key)

	ct, err := zcrypto.Encrypt(key, plain)
	if err != nil {
		return nil, fmt.Errorf("seal: encrypt: %w", err)
	}

	out := make([]byte, 0, len(sealMagic)+len(salt)+len(ct))
	out = append(out, sealMagic...)
	out = append(out, salt...)
	return append(out, ct...), nil
}

// Unseal reverses Seal.
func Unseal(passphrase string, sealed []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("unseal: %w", ErrNoPassphrase)
	}

	rest, ok := bytes.CutPrefix(sealed, []byte(sealMagic))
	if !ok || len(rest) <= zcrypto.SaltSize {
		return nil, fmt.Errorf("unseal: %w", ErrBadSeal)
	}
	salt, ct := rest[:zcrypto.SaltSize], rest[zcrypto.SaltSize:]

	key, _, err := zcrypto.DeriveKey([]byte(passphrase), salt)
	if err != nil {
		return nil, fmt.Errorf("unseal: derive key: %w", err)
	}
	defer zcrypto.Erase(key)

	plain, err := zcrypto.Decrypt(key, ct)
	if err != nil {
		return nil, fmt.Errorf("unseal: %w", ErrBadSeal)
	}
	return plain, nil
}

// IsSealed reports whether data starts with the sealed envelope marker.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(sealMagic))
}
