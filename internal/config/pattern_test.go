package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegex(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{name: "single token", tokens: []string{"USA"}, want: `\s*\((?:USA)\)\s*`},
		{name: "multiple tokens", tokens: []string{"USA", "EU", "JP"}, want: `\s*\((?:USA|EU|JP)\)\s*`},
		{name: "blank tokens dropped", tokens: []string{"USA", "", "  ", "EU"}, want: `\s*\((?:USA|EU)\)\s*`},
		{name: "metacharacters escaped", tokens: []string{"v1.0", "A|B"}, want: `\s*\((?:v1\.0|A\|B)\)\s*`},
		{name: "empty token set", tokens: nil, want: NeverMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildRegex(tt.tokens))
		})
	}
}

func TestEmptyTokenSetMatchesNothing(t *testing.T) {
	re, err := TokenList().Compile()
	require.NoError(t, err)

	for _, s := range []string{"", "()", "Game ().zip", "Game (USA).zip", " "} {
		assert.False(t, re.MatchString(s), "never-match pattern matched %q", s)
	}
}

func TestTokenListEscapesLiterals(t *testing.T) {
	re, err := TokenList("v1.0").Compile()
	require.NoError(t, err)

	assert.True(t, re.MatchString("Game (v1.0).zip"))
	assert.False(t, re.MatchString("Game (v1x0).zip"), "dot must be literal")
}

func TestRawPatternCompileErrors(t *testing.T) {
	for _, expr := range []string{"", "   ", "(unclosed", `\s*\((?:USA\)`} {
		_, err := RawPattern(expr).Compile()
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr), "expr %q: want ConfigError, got %v", expr, err)
		assert.Equal(t, "regex", cfgErr.Field)
	}
}

func TestPatternKindString(t *testing.T) {
	assert.Equal(t, "tokens", KindTokenList.String())
	assert.Equal(t, "regex", KindRawPattern.String())
}

func TestPresets(t *testing.T) {
	presets, err := ListPresets()
	require.NoError(t, err)

	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
		assert.NotEmpty(t, p.Tokens, "preset %s has no tokens", p.Name)
	}
	assert.Equal(t, []string{"default", "minimal", "nointro"}, names)

	assert.Contains(t, DefaultTokens(), "USA")
	assert.Contains(t, DefaultTokens(), "1999-10-29", "date tokens stay strings")
	assert.Nil(t, PresetTokens("nonexistent"))

	_, err = LoadPreset("nonexistent")
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
