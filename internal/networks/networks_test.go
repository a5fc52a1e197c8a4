package networks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByNameFoldsCase(t *testing.T) {
	for _, name := range []string{"mainnet", "Mainnet", "MAINNET"} {
		network := ByName(name)
		require.NotNilf(t, network, "name %q", name)
		assert.Equal(t, "mainnet", network.Key)
	}
	assert.Nil(t, ByName("devnet"))
}

func TestExplorerTxnURL(t *testing.T) {
	url := ExplorerTxnURL("Mainnet", "0xhash")
	assert.Equal(t, "https://explorer.aptoslabs.com/txn/0xhash?network=mainnet", url)
}

func TestExplorerTxnURLUnknownNetworkFallsBack(t *testing.T) {
	url := ExplorerTxnURL("devnet", "0xhash")
	assert.Equal(t, "https://explorer.aptoslabs.com/txn/0xhash?network=testnet", url)
}
