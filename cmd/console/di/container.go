package di

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"user-console/internal/adapter/httpapi"
	"user-console/internal/adapter/terminal"
	"user-console/internal/config"
	"user-console/internal/usecase/user"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Client   *httpapi.Client
	View     *terminal.View
	Prompter *terminal.Prompter
	UserUC   *user.Usecase
	Console  *terminal.Console
}

// NewContainer creates and initializes all application dependencies. The
// console reads commands from in and draws to out.
func NewContainer(cfg *config.Config, l *zap.Logger, in io.Reader, out io.Writer) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize API client
	client := httpapi.NewClient(httpapi.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout(),
		UserAgent: cfg.API.UserAgent,
	}, nil, l)

	// Initialize terminal adapters
	view := terminal.NewView(out)
	lines := terminal.NewLineReader(in)
	prompter := terminal.NewPrompter(lines, out)

	// Initialize use case
	userUC := user.New(client, view, prompter, l)

	console := terminal.NewConsole(userUC, view, prompter, lines, out, cfg.App.Prompt, l)

	l.Info("dependencies initialized", zap.String("api_base_url", client.BaseURL()))

	return &Container{
		Config:   cfg,
		Logger:   l,
		Client:   client,
		View:     view,
		Prompter: prompter,
		UserUC:   userUC,
		Console:  console,
	}, nil
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.Client != nil {
		c.Client.Close()
	}
	return nil
}
