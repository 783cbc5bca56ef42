package telemetry

import (
	"fmt"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// ProfilerConfig controls the pyroscope continuous profiler.
type ProfilerConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	Environment     string
}

// Profiler owns a running pyroscope session.
type Profiler struct {
	session *pyroscope.Profiler
	logger  *zap.Logger
}

// NewProfiler starts continuous profiling. When disabled it returns a no-op
// Profiler whose Stop does nothing.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	if !cfg.Enabled {
		logger.Info("profiling disabled")
		return &Profiler{logger: logger}, nil
	}

	session, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          pyroscopeLogger{logger: logger},
		Tags: map[string]string{
			"environment": cfg.Environment,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start profiler: %w", err)
	}

	logger.Info("profiling enabled", zap.String("server", cfg.ServerAddress))
	return &Profiler{session: session, logger: logger}, nil
}

// Stop flushes and stops the profiling session.
func (p *Profiler) Stop() {
	if p.session == nil {
		return
	}
	if err := p.session.Stop(); err != nil {
		p.logger.Error("profiler stop failed", zap.Error(err))
	}
}

// pyroscopeLogger adapts zap to the pyroscope logger interface.
type pyroscopeLogger struct {
	logger *zap.Logger
}

func (l pyroscopeLogger) Infof(format string, args ...any) {
	l.logger.Sugar().Infof(format, args...)
}

func (l pyroscopeLogger) Debugf(format string, args ...any) {
	l.logger.Sugar().Debugf(format, args...)
}

func (l pyroscopeLogger) Errorf(format string, args ...any) {
	l.logger.Sugar().Errorf(format, args...)
}
