package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"otsshare/internal/app/client"
	"otsshare/internal/app/client/config"
	"otsshare/internal/utils/logger"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
	domain    string

	cfg *config.Config
	log *slog.Logger
	app *client.App
)

var rootCmd = &cobra.Command{
	Use:   "otsshare",
	Short: "Share one-time secrets",
	Long: `otsshare encrypts a secret on this machine, stores only the ciphertext
on the server and prints a link that carries everything needed to decrypt it.
The secret can be read once and disappears when it expires.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if domain != "" {
		cfg.ShareDomain = domain
	}

	// logs would mix with the printed link, so they stay off unless asked for
	if debug {
		log = logger.New(cfg.Env, "debug")
	} else {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	app = client.New(cfg, log)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print debug logs")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API address, overrides SERVER_ADDRESS")
	rootCmd.PersistentFlags().StringVar(&domain, "domain", "", "origin used in share links, overrides SHARE_DOMAIN")

	rootCmd.AddCommand(createCmd, revealCmd)
}
