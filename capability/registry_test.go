package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	Register("test-upper", EnrichSections, func(cfg Config) (Capability, error) {
		return Func(func(ctx context.Context, q string) (string, error) {
			return cfg.Model + ":" + q, nil
		}), nil
	})

	entry, ok := Lookup("test-upper")
	require.True(t, ok)
	assert.Equal(t, EnrichSections, entry.Enrich)

	cap, err := entry.Factory(Config{Model: "gemini"})
	require.NoError(t, err)
	out, err := cap.Run(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "gemini:ping", out)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("no-such-component")
	assert.False(t, ok)
}

func TestConfigSetting(t *testing.T) {
	assert.Equal(t, "", Config{}.Setting("missing"))
	cfg := Config{Settings: map[string]string{"openai_api_key": "k"}}
	assert.Equal(t, "k", cfg.Setting("openai_api_key"))
}
