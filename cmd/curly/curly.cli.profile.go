package main

import (
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

var profileModes = map[string]func(*profile.Profile){
	ProfileModeCPU:   profile.CPUProfile,
	ProfileModeMem:   profile.MemProfile,
	ProfileModeBlock: profile.BlockProfile,
	ProfileModeMutex: profile.MutexProfile,
	ProfileModeTrace: profile.TraceProfile,
}

// startProfile starts the profiler for mode and returns its stop function.
// An empty mode is a no-op.
func startProfile(mode, dir string, logger *zap.Logger) (stop func(), err error) {
	if mode == "" {
		return func() {}, nil
	}
	fn, ok := profileModes[mode]
	if !ok {
		return nil, newCLIError(ExitCodeUsageError, ErrMsgProfileFailed, nil)
	}

	logger.Debug(LogMsgProfiling,
		zap.String(LogFieldProfileMode, mode),
		zap.String(LogFieldProfileDir, dir))

	p := profile.Start(fn, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook)
	return p.Stop, nil
}
