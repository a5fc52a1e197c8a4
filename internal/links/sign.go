package links

import (
	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// verifyConnectProof checks the ownership proof sent with a connect
// completion. EVM-style addresses are verified by recovering the
// personal-sign signer; other wallet families verify inside the wallet
// adapter, so a non-empty signature is accepted as-is for them.
func verifyConnectProof(address, message, signature string) bool {
	if signature == "" {
		return false
	}
	if !ethcommon.IsHexAddress(address) {
		return true
	}
	return verifySignature(ethcommon.HexToAddress(address).Hex(), signature, []byte(message))
}

func verifySignature(signAddrHex, signatureHex string, msg []byte) bool {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return false
	}
	if len(sig) != crypto.SignatureLength {
		return false
	}
	msg = accounts.TextHash(msg)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}
	recovered, err := crypto.SigToPub(msg, sig)
	if err != nil {
		return false
	}
	recoveredAddr := crypto.PubkeyToAddress(*recovered)
	return signAddrHex == recoveredAddr.Hex()
}
