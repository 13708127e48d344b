// Package sendgrid sends the transactional reply emails through
// SendGrid dynamic templates. Delivery is fire-and-forget: failures
// are logged and swallowed so wallet operations never depend on email
// transport.
package sendgrid

import (
	"context"
	"strconv"
	"time"

	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/domain/format"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	senderEmail = "transactions@maillet.tech"
	senderName  = "Maillet"
	network     = "Sepolia Testnet"

	defaultHost = "https://api.sendgrid.com"
	endpoint    = "/v3/mail/send"

	templateBalance      = "d-345032b89250417291e75411e5d5a118"
	templateConfirmation = "d-e7e3b35d0cbd4f8faab7b3620e7a30a2"
	templateFailure      = "d-df42ce379fe64144841c15a8ffb06178"
	templateHistory      = "d-712588d419c54047bbae11246be5b625"
	templateCreation     = "d-1825294cd31248e2810419f8983a819b"
)

var _ output.NotifierPort = (*Notifier)(nil)

type Notifier struct {
	apiKey  string
	host    string
	ethRate float64
	logger  output.LoggerPort
	now     func() time.Time
}

type Config struct {
	APIKey string
	// Host overrides the SendGrid API host, used by tests.
	Host string
	// EthRate is the fixed ETH to fiat rate shown in balance emails.
	EthRate float64
	Logger  output.LoggerPort
}

func NewNotifier(cfg Config) *Notifier {
	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	return &Notifier{
		apiKey:  cfg.APIKey,
		host:    host,
		ethRate: cfg.EthRate,
		logger:  cfg.Logger,
		now:     time.Now,
	}
}

func (n *Notifier) SendBalance(ctx context.Context, recipient, address, ethAmount string) {
	ethValue := 0.0
	if amount, err := strconv.ParseFloat(ethAmount, 64); err == nil {
		ethValue = n.ethRate * amount
	}

	n.send(ctx, templateBalance, recipient, map[string]interface{}{
		"address":    address,
		"eth_amount": ethAmount + " ETH",
		"eth_value":  ethValue,
		"date":       n.humanDate(),
		"network":    network,
	})
}

func (n *Notifier) SendConfirmation(ctx context.Context, recipient, beneficiary, ethAmount, txID string) {
	n.send(ctx, templateConfirmation, recipient, map[string]interface{}{
		"amount":  ethAmount + " ETH",
		"to":      beneficiary,
		"txid":    txID,
		"date":    n.humanDate(),
		"network": network,
	})
}

func (n *Notifier) SendFailure(ctx context.Context, recipient, beneficiary, ethAmount, txID, reason string) {
	n.send(ctx, templateFailure, recipient, map[string]interface{}{
		"amount":  ethAmount + " ETH",
		"to":      beneficiary,
		"txid":    txID,
		"reason":  reason,
		"date":    n.humanDate(),
		"network": network,
	})
}

func (n *Notifier) SendTransactionHistory(ctx context.Context, recipient string, history format.FormattedHistory) {
	n.send(ctx, templateHistory, recipient, map[string]interface{}{
		"email":        history.Email,
		"publicKey":    history.PublicKey,
		"transactions": history.Transactions,
	})
}

func (n *Notifier) SendCreationConfirmation(ctx context.Context, recipient, publicKey string) {
	n.send(ctx, templateCreation, recipient, map[string]interface{}{
		"email":     recipient,
		"publicKey": publicKey,
	})
}

func (n *Notifier) send(ctx context.Context, templateID, recipient string, data map[string]interface{}) {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(senderName, senderEmail))
	m.SetTemplateID(templateID)

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", recipient))
	for key, value := range data {
		p.SetDynamicTemplateData(key, value)
	}
	m.AddPersonalizations(p)

	request := sendgrid.GetRequest(n.apiKey, endpoint, n.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(m)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		n.logger.Error("Email send failed", "template", templateID, "recipient", recipient, "error", err)
		return
	}

	if resp.StatusCode >= 300 {
		n.logger.Warn("Email rejected", "template", templateID, "recipient", recipient,
			"status", resp.StatusCode, "body", resp.Body)
		return
	}

	n.logger.Info("Email sent", "template", templateID, "recipient", recipient, "status", resp.StatusCode)
}

// humanDate matches the date shown in the email templates, e.g.
// "January 2, 2006, 15:04 UTC".
func (n *Notifier) humanDate() string {
	return n.now().UTC().Format("January 2, 2006, 15:04 UTC")
}
