package chrome

import (
	"testing"

	"github.com/paulstansifer/number-loom/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerNilConfig(t *testing.T) {
	_, err := NewManager(nil)
	require.Error(t, err)
}

func TestNewManagerDoesNotLaunch(t *testing.T) {
	m, err := NewManager(&config.AppConfig{
		Headless:  true,
		TargetURL: "http://127.0.0.1:8080",
	})
	require.NoError(t, err)

	// No browser has launched yet, so a page cannot be opened.
	_, err = m.NewPage("http://127.0.0.1:8080")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser context not initialized")

	require.NoError(t, m.Close())
	// Close is idempotent.
	require.NoError(t, m.Close())
}
