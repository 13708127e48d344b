package entity

type ToolName string

const (
	ToolGetWalletBalance      ToolName = "get_wallet_balance"
	ToolSendWalletTransaction ToolName = "send_wallet_transaction"
	ToolGetWalletHistory      ToolName = "get_wallet_history"
	ToolCreateWalletAccount   ToolName = "create_wallet_account"
)

func (t ToolName) String() string {
	return string(t)
}

// SupportedTools is the fixed set of tools the agent may expose to the
// model. Registration of any other name is rejected.
var SupportedTools = map[ToolName]struct{}{
	ToolGetWalletBalance:      {},
	ToolSendWalletTransaction: {},
	ToolGetWalletHistory:      {},
	ToolCreateWalletAccount:   {},
}
