package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar names the environment variable read by InitFromEnv.
const EnvVar = "LAYOUTKIT_DEBUG"

// Options configures the debug logger.
type Options struct {
	// Path is the log file. Empty means "debug.log" in the current directory.
	Path string
	// Level is a zap level name ("debug", "info", "warn", "error").
	Level string
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
}

var (
	logger atomic.Pointer[zap.Logger]
	mu     sync.Mutex
	sink   *lumberjack.Logger
)

func init() {
	logger.Store(zap.NewNop())
}

// Init initializes debug logging to the file named in opts.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(opts)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(opts Options) error {
	path := opts.Path
	if path == "" {
		path = "debug.log"
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	} else {
		level.SetLevel(zap.DebugLevel)
	}

	if sink != nil {
		_ = sink.Close()
	}
	sink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(sink), level)

	logger.Store(zap.New(core, zap.AddStacktrace(zap.ErrorLevel)).Named("layoutkit"))
	return nil
}

// InitFromEnv initializes logging when EnvVar is set. It reports whether
// logging was enabled.
func InitFromEnv() (bool, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return false, nil
	}
	if err := Init(Options{Path: path}); err != nil {
		return false, err
	}
	return true, nil
}

// Logger returns the current logger. It never returns nil.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the logger. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Close flushes and closes the debug log file and restores the no-op logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Load().Sync()
	logger.Store(zap.NewNop())
	if sink != nil {
		err := sink.Close()
		sink = nil
		return err
	}
	return nil
}

// Log writes a formatted message at debug level.
func Log(format string, args ...any) {
	Logger().Sugar().Debugf(format, args...)
}
