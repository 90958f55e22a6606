// Package servecmder provides the serve command for running the chat API server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/api"
	"github.com/inletlabs/attache/pkg/agent"
	"github.com/inletlabs/attache/pkg/config"
	"github.com/inletlabs/attache/pkg/eventstream"
	"github.com/inletlabs/attache/pkg/eventstream/kafka"
	"github.com/inletlabs/attache/pkg/eventstream/nop"
	"github.com/inletlabs/attache/pkg/llm/azure"
	"github.com/inletlabs/attache/pkg/logger"
	"github.com/inletlabs/attache/pkg/tools/builtin"
	"github.com/inletlabs/attache/pkg/utils"
)

type ServeCommander struct {
	listen string
	debug  bool
	logger *zap.Logger
}

const serveLongDesc string = `Run the Attache chat API server.

The server needs Azure OpenAI credentials (AZURE_OPENAI_ENDPOINT,
AZURE_OPENAI_API_KEY, AZURE_OPENAI_DEPLOYMENT_NAME). Without them it still
serves health and tool listing endpoints, and chat endpoints answer 503.`

const serveShortDesc string = "Run the Attache chat API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for the API server to listen on (overrides config)")

	return cmd
}

func (c *ServeCommander) run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Debug {
		c.debug = true
	}
	if c.listen != "" {
		cfg.Server.Listen = c.listen
	}

	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	registry := builtin.NewRegistry(c.logger)

	// A missing Azure config degrades the service rather than failing it:
	// health and tool listing keep working, chat answers 503.
	var service api.ChatService
	if err := cfg.Validate(); err != nil {
		c.logger.Warn("serving without agent", zap.Error(err))
	} else {
		client, err := azure.NewClient(azure.ClientConfig{
			Endpoint:   cfg.Azure.Endpoint,
			APIKey:     cfg.Azure.APIKey,
			Deployment: cfg.Azure.Deployment,
			APIVersion: cfg.Azure.APIVersion,
		})
		if err != nil {
			return fmt.Errorf("creating azure client: %w", err)
		}

		runner := azure.NewRunner(client, registry, azure.RunnerConfig{
			Model: cfg.Azure.Deployment,
		}, c.logger)

		publisher := c.newPublisher(cfg)
		defer publisher.Close()

		service = agent.NewSession(runner, registry, c.logger,
			agent.WithHistoryCap(cfg.History.Cap),
			agent.WithPublisher(publisher),
		)
	}

	apiConfig := api.Config{
		ListenAddr:  cfg.Server.Listen,
		CORSOrigins: cfg.Server.CORSOrigins,
		Version:     utils.Version,
	}
	server := api.NewServer(apiConfig, service, healthFromConfig(cfg), registry.Specs(), c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

func (c *ServeCommander) newPublisher(cfg *config.Config) eventstream.Publisher {
	if !cfg.Events.Enabled {
		return nop.NewPublisher()
	}

	c.logger.Info("publishing reply events",
		zap.Strings("brokers", cfg.Events.Brokers),
		zap.String("topic", cfg.Events.Topic),
	)
	return kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic)
}

func healthFromConfig(cfg *config.Config) api.HealthStatus {
	status := "healthy"
	if !cfg.Valid() {
		status = "degraded"
	}
	return api.HealthStatus{
		Status:                  status,
		ConfigurationValid:      cfg.Valid(),
		AzureEndpointConfigured: cfg.Azure.EndpointConfigured(),
		APIKeyConfigured:        cfg.Azure.APIKeyConfigured(),
		DeploymentConfigured:    cfg.Azure.DeploymentConfigured(),
	}
}
