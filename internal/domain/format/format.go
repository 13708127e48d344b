// Package format turns raw ledger records (hex hashes, wei amounts,
// unix timestamps) into the display strings used in notification
// emails. Every transform degrades to the raw input instead of
// failing, so one malformed field never loses a whole batch.
package format

import (
	"strconv"
	"time"

	"maillet-agent/internal/domain/entity"
)

const (
	addrPrefix = 6
	addrSuffix = 4
	weiPerEth  = 1e18
)

// FormattedTransaction mirrors entity.Transaction with display-ready
// fields: shortened addresses, ETH value, human timestamp.
type FormattedTransaction struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber int64  `json:"blockNumber"`
	Timestamp   string `json:"timestamp"`
	GasPrice    string `json:"gasPrice"`
}

type FormattedHistory struct {
	Email        string                 `json:"email"`
	PublicKey    string                 `json:"publicKey"`
	Transactions []FormattedTransaction `json:"transactions"`
}

// Shorten renders an address or hash as prefix6...suffix4. Inputs too
// short to shorten are returned unchanged.
func Shorten(s string) string {
	return ShortenN(s, addrPrefix, addrSuffix)
}

func ShortenN(s string, prefix, suffix int) string {
	if len(s) < prefix+suffix {
		return s
	}
	return s[:prefix] + "..." + s[len(s)-suffix:]
}

// WeiToEth converts a decimal wei string to an ETH string. Unparseable
// input is returned unchanged.
func WeiToEth(wei string) string {
	f, err := strconv.ParseFloat(wei, 64)
	if err != nil {
		return wei
	}
	return strconv.FormatFloat(f/weiPerEth, 'g', -1, 64)
}

// FormatTimestamp renders unix seconds as "2006-01-02 15:04:05 UTC".
// Timestamps before the epoch fall back to the numeric string.
func FormatTimestamp(ts int64) string {
	if ts < 0 {
		return strconv.FormatInt(ts, 10)
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05") + " UTC"
}

// ProcessTransactions formats every record in a history payload for
// the transaction-history email template.
func ProcessTransactions(h entity.TransactionHistory) FormattedHistory {
	out := FormattedHistory{
		Email:        h.Email,
		PublicKey:    h.PublicKey,
		Transactions: make([]FormattedTransaction, 0, len(h.Transactions)),
	}
	for _, tx := range h.Transactions {
		out.Transactions = append(out.Transactions, FormattedTransaction{
			Hash:        Shorten(tx.Hash),
			From:        Shorten(tx.From),
			To:          Shorten(tx.To),
			Value:       WeiToEth(tx.Value),
			BlockNumber: tx.BlockNumber,
			Timestamp:   FormatTimestamp(tx.Timestamp),
			GasPrice:    tx.GasPrice,
		})
	}
	return out
}
