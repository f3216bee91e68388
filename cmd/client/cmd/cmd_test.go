package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"otsshare/internal/app/server/api"
	"otsshare/internal/domain/record"
	"otsshare/internal/infrastructure/storage/sqlite"
)

func startServer(t *testing.T) string {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "ots.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	srv := httptest.NewServer(api.New(record.NewService(repo, slog.Default()), repo, slog.Default()))
	t.Cleanup(srv.Close)
	return srv.URL
}

// run executes the root command with fresh flag values and returns its
// stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCreateAndReveal_Text(t *testing.T) {
	server := startServer(t)

	out, _, err := run(t, "", "create", "--server", server, "--domain", "https://ots.example.com",
		"--text", "vault code 4242", "--expire-value", "30", "--expire-unit", "minutes")
	require.NoError(t, err)

	shareLink := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(shareLink, "https://ots.example.com/r/"), shareLink)

	out, _, err = run(t, "", "reveal", "--server", server, shareLink)
	require.NoError(t, err)
	assert.Equal(t, "vault code 4242\n", out)

	_, _, err = run(t, "", "reveal", "--server", server, shareLink)
	assert.Error(t, err)
}

func TestCreateAndReveal_Stdin(t *testing.T) {
	server := startServer(t)

	out, _, err := run(t, "line one\nline two\n", "create", "--server", server)
	require.NoError(t, err)

	out, _, err = run(t, "", "reveal", "--server", server, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", out)
}

func TestCreateAndReveal_File(t *testing.T) {
	server := startServer(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("meeting at noon"), 0o600))

	out, _, err := run(t, "", "create", "--server", server, "--file", src, "--password", "s3cr3t")
	require.NoError(t, err)

	dst := filepath.Join(dir, "revealed.txt")
	_, status, err := run(t, "", "reveal", "--server", server, "--out", dst, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Contains(t, status, "File secret saved to "+dst)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "meeting at noon", string(got))
}

func TestCreate_InvalidInput(t *testing.T) {
	server := startServer(t)

	_, _, err := run(t, "", "create", "--server", server, "--text", "x", "--expire-unit", "days")
	assert.ErrorIs(t, err, record.ErrInvalidExpiration)

	_, _, err = run(t, "", "create", "--server", server)
	assert.Error(t, err, "empty stdin")
}

func TestReveal_MalformedLink(t *testing.T) {
	server := startServer(t)

	_, _, err := run(t, "", "reveal", "--server", server, "https://ots.example.com/about")
	assert.Error(t, err)
}
