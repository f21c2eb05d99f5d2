package bootstrap

import (
	"testing"

	"github.com/ericzhangohoh/caplet/internal/directory"
	infra "github.com/ericzhangohoh/caplet/internal/infrastructure"
	"github.com/ericzhangohoh/caplet/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func httpOption() *infra.AppConfig {
	option := new(infra.AppConfig)
	option.Directory.Driver = "http"
	option.Directory.BaseURL = "http://courses.internal"
	option.Progress.Driver = "http"
	option.Progress.BaseURL = "http://progress.internal"
	return option
}

func TestNewBackendsHTTP(t *testing.T) {
	b, err := NewBackends(httpOption(), zap.NewNop())
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &directory.HTTPDirectory{}, b.CourseUseCase.Directory)
	assert.IsType(t, &progress.HTTPProgress{}, b.CourseUseCase.Progress)
	assert.Empty(t, b.Probes)
}

func TestNewBackendsRedisAndNone(t *testing.T) {
	option := httpOption()
	option.Directory.Driver = "redis"
	option.Directory.KeyPrefix = "caplet:"
	option.KVStore.Host = "127.0.0.1"
	option.KVStore.Port = 6379
	option.Progress.Driver = "none"

	b, err := NewBackends(option, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &directory.KVDirectory{}, b.CourseUseCase.Directory)
	assert.Equal(t, progress.NoProgress{}, b.CourseUseCase.Progress)
	assert.Len(t, b.Probes, 1)
	assert.NoError(t, b.Close())
}

func TestNewBackendsRejectsUnknownDrivers(t *testing.T) {
	option := httpOption()
	option.Directory.Driver = "ftp"
	_, err := NewBackends(option, zap.NewNop())
	assert.EqualError(t, err, "unsupported directory driver 'ftp'")

	option = httpOption()
	option.Progress.Driver = "sql"
	option.Database.Driver = "sqlite"
	_, err = NewBackends(option, zap.NewNop())
	assert.Error(t, err)
}
