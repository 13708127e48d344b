package entity

// Transaction is one ledger record as returned by the wallet API.
// Value is in wei, Timestamp in unix seconds; both are kept as the API
// sends them so formatting failures can degrade to the raw value.
type Transaction struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber int64  `json:"blockNumber"`
	Timestamp   int64  `json:"timestamp"`
	GasPrice    string `json:"gasPrice"`
}

type TransactionHistory struct {
	Email        string        `json:"email"`
	PublicKey    string        `json:"publicKey"`
	Transactions []Transaction `json:"transactions"`
}
