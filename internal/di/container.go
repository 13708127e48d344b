package di

import (
	"fmt"

	"maillet-agent/internal/adapter/tool"
	"maillet-agent/internal/application/port/input"
	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/application/service"
	"maillet-agent/internal/infrastructure/email/sendgrid"
	"maillet-agent/internal/infrastructure/httpserver"
	"maillet-agent/internal/infrastructure/llm/gemini"
	"maillet-agent/internal/infrastructure/logger"
	"maillet-agent/internal/infrastructure/wallet"
	"maillet-agent/internal/usecase/executor"
)

// Container wires the whole service once at startup. Nothing here is
// a package-level singleton; the webhook handler receives everything
// it needs through the container.
type Container struct {
	Wallet    output.WalletPort
	Notifier  output.NotifierPort
	LLM       output.LLMPort
	Logger    output.LoggerPort
	Tools     output.ToolRegistry
	Processor input.RequestProcessor
	Server    *httpserver.Server
}

type Config struct {
	WalletAPIURL   string
	SendGridAPIKey string
	EthRate        float64
	GeminiAPIKey   string
	GeminiModel    string
	LLMBaseURL     string
	Development    bool
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(cfg.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	walletClient := wallet.NewClient(wallet.DefaultConfig(cfg.WalletAPIURL))

	notifier := sendgrid.NewNotifier(sendgrid.Config{
		APIKey:  cfg.SendGridAPIKey,
		EthRate: cfg.EthRate,
		Logger:  log,
	})

	llmCfg := gemini.DefaultConfig(cfg.GeminiAPIKey, cfg.GeminiModel)
	if cfg.LLMBaseURL != "" {
		llmCfg.BaseURL = cfg.LLMBaseURL
	}
	llm := gemini.NewGeminiAdapter(llmCfg)

	tools := service.NewToolRegistry()
	if err := registerWalletTools(tools, walletClient, notifier, log); err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	processor := executor.New(llm, tools, log)
	server := httpserver.NewServer(processor, log)

	return &Container{
		Wallet:    walletClient,
		Notifier:  notifier,
		LLM:       llm,
		Logger:    log,
		Tools:     tools,
		Processor: processor,
		Server:    server,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func registerWalletTools(registry *service.ToolRegistryImpl, walletClient output.WalletPort, notifier output.NotifierPort, log output.LoggerPort) error {
	toRegister := []output.ToolPort{
		tool.NewBalanceTool(walletClient, notifier, log),
		tool.NewSendTool(walletClient, notifier, log),
		tool.NewHistoryTool(walletClient, notifier, log),
		tool.NewCreateAccountTool(walletClient, notifier, log),
	}
	for _, t := range toRegister {
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}
