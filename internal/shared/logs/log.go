package logs

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"GameBoard/internal/shared/config"
	"GameBoard/modules/kit/logx"
)

var (
	// 热更新回调在 watcher goroutine 上读 logger，所以用 atomic 存
	current atomic.Pointer[zap.Logger]
	// 进程级 AtomicLevel，配置热更新时直接改它，不用重建 logger
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	watchOnce sync.Once
	nop       = zap.NewNop()
)

// Init builds the process logger: colour console output on stderr, plus a rotated JSON
// file when cfg.FileDir is set. Unknown levels fall back to info.
// log.level in the config file is followed after Init without a restart.
func Init(appName string, cfg config.LogConfig) error {
	level.SetLevel(parseLevel(cfg.Level))
	current.Store(build(appName, cfg, os.Stderr, level))
	watchOnce.Do(func() {
		config.OnChange(func(c config.Config) {
			SetLevel(c.Log.Level)
		})
	})
	return nil
}

// New builds a logger without installing it; console output goes to console.
func New(appName string, cfg config.LogConfig, console io.Writer) *zap.Logger {
	return build(appName, cfg, console, zap.NewAtomicLevelAt(parseLevel(cfg.Level)))
}

// SetLevel 动态调整进程日志级别；解析不了的级别保持原样并打一条 warn
func SetLevel(text string) {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(text))); err != nil {
		Logger().Warn("ignore unknown log level", zap.String("level", text))
		return
	}
	if level.Level() == lvl {
		return
	}
	level.SetLevel(lvl)
	Logger().Info("log level changed", zap.String("level", lvl.String()))
}

// Level reports the process log level.
func Level() zapcore.Level {
	return level.Level()
}

// 解析失败回退到 info
func parseLevel(text string) zapcore.Level {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(text))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func build(appName string, cfg config.LogConfig, console io.Writer, atomicLevel zap.AtomicLevel) *zap.Logger {
	// console 和 file 共用的编码器配置
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// 控制台：彩色级别，Lock 保证并发写安全
	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleSyncer := zapcore.Lock(zapcore.AddSync(console))
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), consoleSyncer, atomicLevel)

	// 文件：JSON 不带颜色，lumberjack 负责切割
	if cfg.FileDir != "" {
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FileDir,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		core = zapcore.NewTee(
			core,
			zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(fileWriter), atomicLevel),
		)
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	return zap.New(core, opts...).Named(appName)
}

// Logger returns the process logger; a no-op logger before Init.
func Logger() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return nop
}

// Kit returns the process logger behind the logx.Logger interface.
func Kit() logx.Logger {
	return logx.NewZapLogger(Logger())
}

func Sync() {
	_ = Logger().Sync()
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

// Fatal logs then exits with status 1.
func Fatal(msg string, fields ...zap.Field) {
	Logger().Fatal(msg, fields...)
}
