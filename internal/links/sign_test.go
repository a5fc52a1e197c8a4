package links

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPersonal(t *testing.T, msg string) (addrHex, sigHex string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	require.NoError(t, err)
	// wallets emit yellow paper V
	sig[crypto.RecoveryIDOffset] += 27
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

func TestVerifyConnectProofRecoversSigner(t *testing.T) {
	msg := "bind wallet 1724900000"
	addr, sig := signPersonal(t, msg)
	assert.True(t, verifyConnectProof(addr, msg, sig))
}

func TestVerifyConnectProofWrongAddress(t *testing.T) {
	msg := "bind wallet 1724900000"
	_, sig := signPersonal(t, msg)
	other, _ := signPersonal(t, msg)
	assert.False(t, verifyConnectProof(other, msg, sig))
}

func TestVerifyConnectProofWrongMessage(t *testing.T) {
	addr, sig := signPersonal(t, "bind wallet 1724900000")
	assert.False(t, verifyConnectProof(addr, "another message", sig))
}

func TestVerifyConnectProofEmptySignature(t *testing.T) {
	assert.False(t, verifyConnectProof("0xabc", "msg", ""))
}

func TestVerifyConnectProofNonEvmAddress(t *testing.T) {
	// non-EVM wallet families verify inside the adapter
	assert.True(t, verifyConnectProof("0x1::aptos_account", "msg", "adapter-signature"))
}

func TestVerifySignatureMalformed(t *testing.T) {
	assert.False(t, verifySignature("0xabc", "not-hex", []byte("msg")))
	assert.False(t, verifySignature("0xabc", "0x0102", []byte("msg")))
}
