package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/config"
	"github.com/rmorlok/connlifecycle/internal/service"
	"github.com/spf13/cobra"
)

const configEnvVar = "CONNLIFECYCLE_CONFIG"

// skipConfigAnnotation marks commands that run without a configuration file.
const skipConfigAnnotation = "skip-config"

type cli struct {
	cfgFile string
	cfg     config.C
}

func (c *cli) loadConfig() error {
	if c.cfgFile == "" {
		c.cfgFile = os.Getenv(configEnvVar)
	}

	if c.cfgFile == "" {
		return errors.New("no configuration file found; must be specified with --config or " + configEnvVar + " environment variable")
	}

	path, err := homedir.Expand(c.cfgFile)
	if err != nil {
		return errors.Wrapf(err, "failed to expand config path '%s'", c.cfgFile)
	}

	c.cfg, err = config.LoadConfig(path)
	return errors.Wrapf(err, "failed to load configuration from '%s'", c.cfgFile)
}

// dependencies builds a dependency manager for a one-shot command. Callers must Close it.
func (c *cli) dependencies(serviceId string) *service.DependencyManager {
	dm := service.NewDependencyManager(serviceId, c.cfg)
	dm.AutoMigrateDatabase()
	return dm
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "connlifecycle",
		Short:        "Maintain connector definitions, their versions and their support states",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}
			return c.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file; may also be specified in "+configEnvVar)

	rootCmd.AddCommand(cmdWorker(c))
	rootCmd.AddCommand(cmdMigrate(c))
	rootCmd.AddCommand(cmdReconcile(c))
	rootCmd.AddCommand(cmdSupportStates(c))
	rootCmd.AddCommand(cmdAdvanceDefault(c))
	rootCmd.AddCommand(cmdResolveVersion(c))
	rootCmd.AddCommand(cmdPublishCatalog(c))
	rootCmd.AddCommand(cmdConfigSchema())

	return rootCmd
}

func main() {
	// Optionally load environment variables from a .env file.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
