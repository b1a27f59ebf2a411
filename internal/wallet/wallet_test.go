package wallet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xrbwallet/internal/keys"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

func testSeed(b byte) keys.Seed {
	var s keys.Seed
	for i := range s {
		s[i] = b
	}
	return s
}

func TestValidateWalletName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "main", false},
		{"with underscore", "my_wallet", false},
		{"with hyphen", "my-wallet", false},
		{"digits", "w1", false},
		{"max length", "a123456789012345678901234567890123456789012345678901234567890123", false},
		{"empty", "", true},
		{"too long", "a1234567890123456789012345678901234567890123456789012345678901234", true},
		{"space", "my wallet", true},
		{"slash", "a/b", true},
		{"dot", "a.b", true},
		{"unicode", "wället", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateWalletName(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, walleterr.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewState(t *testing.T) {
	t.Parallel()

	st := NewState(testSeed(1))
	assert.Equal(t, StateVersion, st.Version)
	require.Len(t, st.Accounts, 1)
	assert.Equal(t, uint32(0), st.Accounts[0].Index)
	assert.False(t, st.CreatedAt.IsZero())
	require.NoError(t, st.Validate())
}

func TestState_AddAccount(t *testing.T) {
	t.Parallel()

	st := NewState(testSeed(1))

	a, err := st.AddAccount("savings")
	require.NoError(t, err)
	assert.Equal(t, AccountEntry{Index: 1, Label: "savings"}, a)

	b, err := st.AddAccount("")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), b.Index)

	assert.True(t, st.HasIndex(2))
	assert.False(t, st.HasIndex(3))

	got, ok := st.Account(1)
	require.True(t, ok)
	assert.Equal(t, "savings", got.Label)

	_, ok = st.Account(3)
	assert.False(t, ok)
	_, ok = st.Account(-1)
	assert.False(t, ok)
}

func TestState_AddAccountAfterGap(t *testing.T) {
	t.Parallel()

	st := &State{Seed: testSeed(2), Accounts: []AccountEntry{{Index: 0}, {Index: 7}}, Version: StateVersion}
	a, err := st.AddAccount("")
	require.NoError(t, err)
	assert.Equal(t, uint32(8), a.Index)
}

func TestState_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		state   State
		wantErr bool
	}{
		{"valid", State{Version: 1, Accounts: []AccountEntry{{Index: 0}, {Index: 1}}}, false},
		{"no accounts", State{Version: 1}, false},
		{"zero version", State{Version: 0}, true},
		{"future version", State{Version: StateVersion + 1}, true},
		{"duplicate index", State{Version: 1, Accounts: []AccountEntry{{Index: 3}, {Index: 3}}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.state.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestState_JSON(t *testing.T) {
	t.Parallel()

	st := NewState(testSeed(0xAB))
	_, err := st.AddAccount("spending")
	require.NoError(t, err)

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seed":"ABABABAB`)

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, st.Seed, decoded.Seed)
	assert.Equal(t, st.Accounts, decoded.Accounts)
	assert.True(t, st.CreatedAt.Equal(decoded.CreatedAt))
}

func TestState_Wipe(t *testing.T) {
	t.Parallel()

	st := NewState(testSeed(9))
	st.Wipe()
	assert.Equal(t, keys.Seed{}, st.Seed)
}

func TestDeriveAccount(t *testing.T) {
	t.Parallel()

	acct, err := DeriveAccount(keys.Seed{}, 0)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), acct.Index)
	assert.Equal(t, "9F0E444C69F77A49BD0BE89DB92C38FE713E0963165CCA12FAF5712D7657120F", acct.PrivateKey.String())
	assert.Equal(t, "C008B814A7D269A1FA3C6528B19201A24D797912DB9996FF02A1FF356E45552B", acct.PublicKey.String())
	assert.Equal(t, "xrb_3i1aq1cchnmbn9x5rsbap8b15akfh7wj7pwskuzi7ahz8oq6cobd99d4r3b7", acct.Address)

	acct.Wipe()
	assert.Equal(t, keys.PrivateKey{}, acct.PrivateKey)
}

func TestState_DeriveAccounts(t *testing.T) {
	t.Parallel()

	st := NewState(keys.Seed{})
	_, err := st.AddAccount("")
	require.NoError(t, err)

	accounts, err := st.DeriveAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "xrb_3i1aq1cchnmbn9x5rsbap8b15akfh7wj7pwskuzi7ahz8oq6cobd99d4r3b7", accounts[0].Address)
	assert.Equal(t, uint32(1), accounts[1].Index)
	assert.NotEqual(t, accounts[0].Address, accounts[1].Address)
}
