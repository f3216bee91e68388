package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"otsshare/internal/app/client"
	"otsshare/internal/domain/record"
)

var (
	outFlag   string
	forceFlag bool
)

var revealCmd = &cobra.Command{
	Use:   "reveal <link>",
	Short: "Fetch, decrypt and print a one-time secret",
	Long: `Reads the secret behind a link. The server deletes it on read, so the
link stops working afterwards. Files are saved under the name carried by the
link unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runReveal,
}

func init() {
	revealCmd.Flags().StringVarP(&outFlag, "out", "o", "", "write the secret to this path")
	revealCmd.Flags().BoolVar(&forceFlag, "force", false, "overwrite an existing output file")
}

func runReveal(cmd *cobra.Command, args []string) error {
	_, stop := startSpinner("Fetching secret...")
	secret, err := app.Reveal(cmd.Context(), args[0])
	stop()
	if err != nil {
		if errors.Is(err, client.ErrSecretGone) {
			return fmt.Errorf("%w; ask the sender for a new link", err)
		}
		return err
	}

	path := outFlag
	if path == "" && secret.Type == record.RecTypeFile && secret.FileName != "" {
		path = filepath.Base(secret.FileName)
	}

	if path == "" {
		_, err := cmd.OutOrStdout().Write(secret.Content)
		if err == nil && len(secret.Content) > 0 && secret.Content[len(secret.Content)-1] != '\n' {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if forceFlag {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("save secret: %w", err)
	}
	if _, err := f.Write(secret.Content); err != nil {
		f.Close()
		return fmt.Errorf("save secret: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save secret: %w", err)
	}

	detail := ""
	if secret.MimeType != "" {
		detail = " (" + secret.MimeType + ")"
	}
	fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("✓ %s secret saved to %s, %d bytes%s",
		secret.Type.DisplayName(), path, len(secret.Content), detail))
	return nil
}
