package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/sift/internal/config"
	"github.com/dkoosis/sift/pkg/diag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sift.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NO_COLOR", "")
	require.NoError(t, os.Unsetenv("NO_COLOR"))

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultTop, cfg.Top)
	assert.Equal(t, config.DefaultTheme, cfg.Theme)
	assert.Empty(t, cfg.FailOn)
	assert.Empty(t, cfg.History)
}

func TestLoad_File(t *testing.T) {
	p := writeConfig(t, "format: markdown\ntop: 5\nroot: 'K:\\driplo'\nfail-on: warning\ninputs: [a.log, b.log]\n")

	cfg, err := config.Load(config.New(), p)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, 5, cfg.Top)
	assert.Equal(t, `K:\driplo`, cfg.Root)
	assert.Equal(t, []string{"a.log", "b.log"}, cfg.Inputs)
	assert.Equal(t, p, cfg.File)

	sev, ok := cfg.FailOnSeverity()
	assert.True(t, ok)
	assert.Equal(t, diag.SeverityWarning, sev)
}

func TestLoad_Precedence(t *testing.T) {
	p := writeConfig(t, "format: markdown\ntop: 5\ntheme: orca\n")
	t.Setenv("SIFT_TOP", "7")
	t.Setenv("SIFT_FAIL_ON", "error")

	v := config.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", config.DefaultFormat, "")
	require.NoError(t, flags.Parse([]string{"--format", "json"}))
	require.NoError(t, v.BindPFlags(flags))

	cfg, err := config.Load(v, p)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format, "flag beats file")
	assert.Equal(t, 7, cfg.Top, "env beats file")
	assert.Equal(t, "error", cfg.FailOn)
	assert.Equal(t, "orca", cfg.Theme, "file beats default")
}

func TestLoad_NoColorForcesMono(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NO_COLOR", "1")

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"format", "format: html\n", `format "html" must be one of`},
		{"theme", "theme: neon\n", "theme"},
		{"top", "top: -1\n", "top -1 out of range"},
		{"fail-on", "fail-on: fatal\n", `fail-on "fatal" must be one of: error, warning, info`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(config.New(), writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHistoryPath(t *testing.T) {
	t.Parallel()

	def := func() (string, error) { return "/cfg/sift/history.db", nil }

	p, err := (&config.Config{}).HistoryPath(def)
	require.NoError(t, err)
	assert.Empty(t, p)

	p, err = (&config.Config{History: "runs.db"}).HistoryPath(def)
	require.NoError(t, err)
	assert.Equal(t, "runs.db", p)

	p, err = (&config.Config{History: config.HistoryDefault}).HistoryPath(def)
	require.NoError(t, err)
	assert.Equal(t, "/cfg/sift/history.db", p)
}
