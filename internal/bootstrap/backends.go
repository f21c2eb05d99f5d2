// Package bootstrap builds the course pipeline from configuration. Both the
// web server and the terminal browser start here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericzhangohoh/caplet/internal/course"
	"github.com/ericzhangohoh/caplet/internal/directory"
	"github.com/ericzhangohoh/caplet/internal/domain"
	infra "github.com/ericzhangohoh/caplet/internal/infrastructure"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/auth"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/driver"
	"github.com/ericzhangohoh/caplet/internal/progress"
	"go.uber.org/zap"
)

// Pinger a backend connection the liveness probe can check
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backends the wired use case plus the connections behind it
type Backends struct {
	CourseUseCase *course.CourseUseCaseImpl
	Probes        []Pinger
	closers       []func() error
}

// Close releases every opened connection
func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewBackends opens the configured course directory and progress backend
func NewBackends(option *infra.AppConfig, logger *zap.Logger) (*Backends, error) {
	b := new(Backends)

	dir, err := b.directory(option, logger)
	if err != nil {
		b.Close()
		return nil, err
	}
	prog, err := b.progress(option, logger)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.CourseUseCase = course.NewCourseUseCase(dir, prog)
	return b, nil
}

func (b *Backends) directory(option *infra.AppConfig, logger *zap.Logger) (domain.CourseDirectory, error) {
	switch option.Directory.Driver {
	case "http":
		logger.Debug("Using HTTP course directory", zap.String("directory.url", option.Directory.BaseURL))
		return directory.NewHTTPDirectory(option.Directory.BaseURL, option.Directory.Timeout), nil
	case "redis":
		rdb := driver.NewRedisClient(&driver.KVConfig{
			Host:     option.KVStore.Host,
			Port:     option.KVStore.Port,
			Password: option.KVStore.Password,
			DB:       option.KVStore.DB,
		})
		b.Probes = append(b.Probes, rdb)
		b.closers = append(b.closers, rdb.Close)
		logger.Debug("Using redis course directory",
			zap.String("kv.host", option.KVStore.Host),
			zap.Int("kv.port", option.KVStore.Port),
			zap.String("kv.prefix", option.Directory.KeyPrefix))
		return directory.NewKVDirectory(rdb, option.Directory.KeyPrefix), nil
	}
	return nil, fmt.Errorf("unsupported directory driver '%s'", option.Directory.Driver)
}

func (b *Backends) progress(option *infra.AppConfig, logger *zap.Logger) (domain.ProgressService, error) {
	switch option.Progress.Driver {
	case "http":
		logger.Debug("Using HTTP progress service", zap.String("progress.url", option.Progress.BaseURL))
		return progress.NewHTTPProgress(option.Progress.BaseURL, option.Progress.Timeout), nil
	case "sql":
		conn, err := driver.GetDBConnection(&driver.DBConfig{
			User:     option.Database.User,
			Password: option.Database.Password,
			MaxConn:  option.Database.MaxConn,
			Protocol: option.Database.Protocol,
			Driver:   option.Database.Driver,
			Host:     option.Database.Host,
			Port:     option.Database.Port,
			Query:    option.Database.Query,
			Schema:   option.Database.Schema,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create DB connection: %w", err)
		}
		b.Probes = append(b.Probes, conn)
		b.closers = append(b.closers, conn.Close)
		logger.Debug("Using SQL progress store",
			zap.String("db.driver", option.Database.Driver),
			zap.String("db.schema", option.Database.Schema),
			zap.String("db.host", option.Database.Host))
		jwtUtil := auth.NewJWTUtil(option.Security.JWTMethod, option.Security.JWTSecret, option.Security.TokenName)
		return progress.NewSQLProgress(conn, jwtUtil), nil
	case "none":
		return progress.NoProgress{}, nil
	}
	return nil, fmt.Errorf("unsupported progress driver '%s'", option.Progress.Driver)
}
