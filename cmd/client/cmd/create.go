package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"otsshare/internal/app/client"
	"otsshare/internal/domain/record"
)

const maxSecretSize = 10 << 20

var (
	textFlag     string
	fileFlag     string
	expireValue  int
	expireUnit   string
	passwordFlag string
	askPassword  bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Encrypt a secret and print its one-time link",
	Long: `Encrypts text or a file locally and uploads only the ciphertext.

The secret is taken from --text, --file or standard input. A random password
is generated unless one is given with --password or --ask-password.`,
	Example: `  otsshare create --text "vault code 4242" --expire-value 30 --expire-unit minutes
  otsshare create --file ./contract.pdf --ask-password
  pg_dump prod | otsshare create`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&textFlag, "text", "t", "", "secret text")
	createCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "path of a file to share")
	createCmd.Flags().IntVar(&expireValue, "expire-value", 1, "lifetime of the secret, in --expire-unit")
	createCmd.Flags().StringVar(&expireUnit, "expire-unit", string(record.ExpirationUnitHours), "minutes or hours")
	createCmd.Flags().StringVarP(&passwordFlag, "password", "p", "", "encryption password")
	createCmd.Flags().BoolVar(&askPassword, "ask-password", false, "prompt for the encryption password")
	createCmd.MarkFlagsMutuallyExclusive("text", "file")
	createCmd.MarkFlagsMutuallyExclusive("password", "ask-password")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	req := client.ShareRequest{
		Expire: record.ExpirationSettings{
			Value: expireValue,
			Unit:  record.ExpirationUnit(strings.ToLower(expireUnit)),
		},
		Password: passwordFlag,
	}
	if err := req.Expire.Validate(); err != nil {
		return err
	}

	content, fileName, err := readSecret(cmd)
	if err != nil {
		return err
	}
	req.Content, req.FileName = content, fileName

	if askPassword {
		pw, err := promptPassword(cmd)
		if err != nil {
			return err
		}
		req.Password = pw
	}

	_, stop := startSpinner("Encrypting and uploading...")
	share, err := app.Share(cmd.Context(), req)
	stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, share.Link)
	fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("✓ Secret stored, link expires at %s and works once",
		share.ExpiresAt.Local().Format("2006-01-02 15:04:05")))
	return nil
}

func readSecret(cmd *cobra.Command) ([]byte, string, error) {
	switch {
	case fileFlag != "":
		data, err := readLimited(fileFlag)
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(fileFlag), nil

	case textFlag != "":
		return []byte(textFlag), "", nil

	default:
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxSecretSize+1))
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		if len(data) > maxSecretSize {
			return nil, "", fmt.Errorf("secret is larger than %d bytes", maxSecretSize)
		}
		if len(data) == 0 {
			return nil, "", errors.New("nothing to share: use --text, --file or pipe data to stdin")
		}
		return data, "", nil
	}
}

func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if info.Size() > maxSecretSize {
		return nil, fmt.Errorf("%s is larger than %d bytes", path, maxSecretSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return data, nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--ask-password needs an interactive terminal")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Repeat password: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(pw) != string(confirm) {
		return "", errors.New("passwords do not match")
	}
	if len(pw) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(pw), nil
}
