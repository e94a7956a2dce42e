package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/showcase/internal/config"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		StoreBackend: backend,
		BoltPath:     filepath.Join(t.TempDir(), "data", "showcase.db"),
		StoreKey:     "showcase_portfolio_data",
		AIProvider:   "googleai",
	}
}

func TestNewCoreMemoryBackend(t *testing.T) {
	ctx := context.Background()
	core, err := NewCore(ctx, testConfig(t, config.BackendMemory), logger.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, core.Close()) }()

	assert.Equal(t, config.BackendMemory, core.Backend())
	assert.NoError(t, core.Ping(ctx))
	assert.Equal(t, "degraded", core.Factory.Mode())
	assert.Equal(t, "Sagar Parmar", core.Persona.Profile.Name)

	require.NoError(t, core.Store.Load(ctx))
	assert.Equal(t, 5, core.Store.Count())
}

func TestNewCoreBoltBackendPersists(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendBolt)

	core, err := NewCore(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, core.Store.Load(ctx))
	require.NoError(t, core.Store.Remove(ctx, "subtitle-studio"))
	require.NoError(t, core.Close())

	reopened, err := NewCore(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, reopened.Close()) }()
	require.NoError(t, reopened.Store.Load(ctx))

	assert.Equal(t, 4, reopened.Store.Count())
	_, ok := reopened.Store.Get("subtitle-studio")
	assert.False(t, ok)
}

func TestNewCoreSeedOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`records:
  - id: only
    title: Only Record
    category: Documentary
`), 0o644))

	cfg := testConfig(t, config.BackendMemory)
	cfg.SeedFile = path

	core, err := NewCore(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer func() { _ = core.Close() }()

	require.NoError(t, core.Store.Load(context.Background()))
	records := core.Store.List()
	require.Len(t, records, 1)
	assert.Equal(t, "only", records[0].ID)
}

func TestNewCoreBadSeedFile(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.SeedFile = "/nonexistent/seed.yaml"

	_, err := NewCore(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestCoreOpenSession(t *testing.T) {
	ctx := context.Background()
	core, err := NewCore(ctx, testConfig(t, config.BackendMemory), logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, core.Store.Load(ctx))

	_, err = core.OpenSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, core.Sessions.Count())

	scoped, err := core.OpenSession(ctx, "healthcare-ui-ux")
	require.NoError(t, err)
	assert.Equal(t, "healthcare-ui-ux", scoped.RecordID())
	assert.True(t, scoped.Degraded())

	general, err := core.OpenSession(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, general.RecordID())
	assert.Equal(t, 2, core.Sessions.Count())

	require.NoError(t, core.Close())
	assert.Equal(t, 0, core.Sessions.Count())
	assert.Equal(t, "closed", scoped.State().String())
}
