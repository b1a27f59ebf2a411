package wallet

import (
	"github.com/mrz1836/xrbwallet/internal/address"
	"github.com/mrz1836/xrbwallet/internal/keys"
)

// Account is a derived account: its keys and address.
type Account struct {
	Index      uint32
	PrivateKey keys.PrivateKey
	PublicKey  keys.PublicKey
	Address    string
}

// DeriveAccount derives the keys and address of account index.
func DeriveAccount(seed keys.Seed, index uint32) (*Account, error) {
	pair := keys.DeriveKeyPair(seed, index)

	addr, err := address.Encode(pair.Public[:])
	if err != nil {
		pair.Private.Wipe()
		return nil, err
	}

	return &Account{
		Index:      index,
		PrivateKey: pair.Private,
		PublicKey:  pair.Public,
		Address:    addr,
	}, nil
}

// DeriveAccounts derives every account tracked by state, in list order.
func (s *State) DeriveAccounts() ([]*Account, error) {
	out := make([]*Account, 0, len(s.Accounts))
	for _, entry := range s.Accounts {
		acct, err := DeriveAccount(s.Seed, entry.Index)
		if err != nil {
			return nil, err
		}
		out = append(out, acct)
	}
	return out, nil
}

// Wipe zeroes the private key.
func (a *Account) Wipe() {
	a.PrivateKey.Wipe()
}
