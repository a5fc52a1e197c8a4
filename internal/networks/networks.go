package networks

import (
	"fmt"
	"strings"
)

type Network struct {
	Key      string
	Name     string
	APIURL   string
	Explorer string
}

var (
	Array = []*Network{
		{
			Key:      "mainnet",
			Name:     "Mainnet",
			APIURL:   "https://api.mainnet.aptoslabs.com/v1",
			Explorer: "https://explorer.aptoslabs.com",
		},
		{
			Key:      "testnet",
			Name:     "Testnet",
			APIURL:   "https://api.testnet.aptoslabs.com/v1",
			Explorer: "https://explorer.aptoslabs.com",
		},
	}

	Mapping = map[string]*Network{
		"mainnet": Array[0],
		"testnet": Array[1],
	}
)

// ByName matches a stored network label against the static table. Completion
// payloads carry the label with inconsistent casing, so match folded.
func ByName(name string) *Network {
	return Mapping[strings.ToLower(name)]
}

// ExplorerTxnURL builds the explorer link shown in notifications and
// transaction pages. Unknown networks fall back to the testnet explorer.
func ExplorerTxnURL(networkName, txnHash string) string {
	network := ByName(networkName)
	if network == nil {
		network = Mapping["testnet"]
	}
	return fmt.Sprintf("%v/txn/%v?network=%v", network.Explorer, txnHash, network.Key)
}
