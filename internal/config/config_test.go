package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValidConfigRoundTrips(t *testing.T) {
	raw := []byte("language: v1.2.3\nmaxIndentUnit: 2\nsolveIterationCap: 5\n")
	cfg, err := Parse("solvent.yaml", raw)
	require.NoError(t, err)
	require.Equal(t, "v1.2.3", cfg.Language)
	require.Equal(t, 2, cfg.MaxIndentUnit)
	require.Equal(t, 5, cfg.SolveIterationCap)
}

func TestParseAcceptsLanguageWithoutVPrefix(t *testing.T) {
	cfg, err := Parse("solvent.yaml", []byte("language: 1.0.0\n"))
	require.NoError(t, err)
	require.Equal(t, "1.0.0", cfg.Language)
}

func TestParseRejectsMissingLanguage(t *testing.T) {
	_, err := Parse("solvent.yaml", []byte("maxIndentUnit: 2\n"))
	require.Error(t, err)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse("solvent.yaml", []byte("language: v1.0.0\nunknownField: true\n"))
	require.Error(t, err)
}

func TestParseRejectsInvalidSemver(t *testing.T) {
	_, err := Parse("solvent.yaml", []byte("language: not-a-version\n"))
	require.Error(t, err)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse("solvent.yaml", []byte("language: [this is not\n  a scalar"))
	require.Error(t, err)
}

func TestParseRejectsIndentUnitOutOfRange(t *testing.T) {
	_, err := Parse("solvent.yaml", []byte("language: v1.0.0\nmaxIndentUnit: 0\n"))
	require.Error(t, err)
}

func TestDefaultPinsLanguageToCompilerVersion(t *testing.T) {
	cfg := Default("v0.1.0")
	require.Equal(t, "v0.1.0", cfg.Language)
	require.Zero(t, cfg.MaxIndentUnit)
	require.Zero(t, cfg.SolveIterationCap)
}
