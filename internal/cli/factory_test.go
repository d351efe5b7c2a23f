package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/colorchanger"
	"github.com/aretw0/colorchanger/internal/config"
	"github.com/aretw0/colorchanger/internal/logging"
	"github.com/aretw0/colorchanger/pkg/adapters/file"
	"github.com/aretw0/colorchanger/pkg/adapters/memory"
	"github.com/aretw0/colorchanger/pkg/adapters/redis"
	"github.com/aretw0/colorchanger/pkg/adapters/sqlite"
)

func TestOpenBackend_Drivers(t *testing.T) {
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	tests := []struct {
		name   string
		cfg    config.Store
		assert func(t *testing.T, b *Backend)
	}{
		{"memory", config.Store{Driver: config.DriverMemory}, func(t *testing.T, b *Backend) {
			assert.IsType(t, &memory.Store{}, b.Store)
		}},
		{"file", config.Store{Driver: config.DriverFile, Path: filepath.Join(dir, "sessions")}, func(t *testing.T, b *Backend) {
			assert.IsType(t, &file.Store{}, b.Store)
		}},
		{"sqlite", config.Store{Driver: config.DriverSQLite, Path: filepath.Join(dir, "sessions.db")}, func(t *testing.T, b *Backend) {
			assert.IsType(t, &sqlite.Store{}, b.Store)
		}},
		{"redis with lock", config.Store{Driver: config.DriverRedis, Redis: config.Redis{Addr: mr.Addr(), Lock: true, Prefix: "cc:"}}, func(t *testing.T, b *Backend) {
			assert.IsType(t, &redis.Store{}, b.Store)
			assert.NotNil(t, b.Locker)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := OpenBackend(tt.cfg)
			require.NoError(t, err)
			defer b.Close()
			tt.assert(t, b)

			ids, err := b.Store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	_, err := OpenBackend(config.Store{Driver: "mongo"})
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNewRuntime_TurnsAndMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Timeout.Launch = 7 * time.Second

	rt, err := NewRuntime(cfg, logging.NewNop(), true)
	require.NoError(t, err)
	defer rt.Close()

	res, err := rt.Engine.Turn(context.Background(), "s1", colorchanger.Launch("r1"))
	require.NoError(t, err)
	assert.Equal(t, 7000, res.Response.Start.TimeoutMS)

	families, err := rt.Registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "colorchanger_transitions_total")
}
