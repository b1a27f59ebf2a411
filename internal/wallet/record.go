package wallet

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// EncryptedWallet is the persisted form of a wallet. It serializes as
// {"salt": base64, "box": base64}.
type EncryptedWallet struct {
	Salt []byte `json:"salt"`
	Box  []byte `json:"box"`
}

// Lock serializes state and seals it under password with a fresh salt.
func Lock(state *State, password []byte) (*EncryptedWallet, error) {
	plaintext, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding wallet state: %w", err)
	}
	defer walletcrypto.Zero(plaintext)

	salt, box, err := walletcrypto.Seal(plaintext, password)
	if err != nil {
		return nil, err
	}
	return &EncryptedWallet{Salt: salt, Box: box}, nil
}

// Unlock opens record with password and decodes the wallet state.
// A wrong password and a tampered record both yield
// ErrWrongPasswordOrCorrupt.
func Unlock(record *EncryptedWallet, password []byte) (*State, error) {
	if record == nil {
		return nil, walleterr.ErrWrongPasswordOrCorrupt
	}

	plaintext, err := walletcrypto.Open(record.Salt, record.Box, password)
	if err != nil {
		return nil, err
	}
	defer walletcrypto.Zero(plaintext)

	state, err := decodeState(plaintext)
	if err != nil {
		return nil, walleterr.WithSuggestion(
			walleterr.WithCause(walleterr.ErrWrongPasswordOrCorrupt, err),
			"the password opened this record but it does not hold a usable wallet; restore it from its mnemonic or a backup",
		)
	}
	return state, nil
}

// errMissingSeed marks a decrypted state without a seed field.
var errMissingSeed = errors.New("wallet state has no seed")

// decodeState decodes and validates a decrypted state. The seed field
// must be present: an absent seed would otherwise decode as all zeros.
func decodeState(plaintext []byte) (*State, error) {
	var fields struct {
		Seed json.RawMessage `json:"seed"`
	}
	if err := json.Unmarshal(plaintext, &fields); err != nil {
		return nil, err
	}
	defer walletcrypto.Zero(fields.Seed)
	if len(fields.Seed) == 0 || string(fields.Seed) == "null" {
		return nil, errMissingSeed
	}

	var state State
	if err := json.Unmarshal(plaintext, &state); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		state.Wipe()
		return nil, err
	}
	return &state, nil
}
