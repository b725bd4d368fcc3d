package config

import (
	"log/slog"
	"os"

	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

type config struct {
	root *sconfig.Root
}

func (c *config) Validate() error {
	return c.root.Validate()
}

func (c *config) GetRoot() *sconfig.Root {
	if c == nil {
		return nil
	}

	return c.root
}

func (c *config) IsDebugMode() bool {
	return os.Getenv("CONNLIFECYCLE_DEBUG_MODE") == "true"
}

func (c *config) GetRootLogger() *slog.Logger {
	return c.GetRoot().GetRootLogger()
}

func (c *config) GetLifecycle() *sconfig.Lifecycle {
	if c == nil || c.root == nil || c.root.Lifecycle == nil {
		return &sconfig.Lifecycle{}
	}

	return c.root.Lifecycle
}
