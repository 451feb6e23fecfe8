// Package logger is the process-wide structured log. The dashboard owns the
// terminal, so records go to a rotating file and reach stderr only with
// --debug. The helpers are no-ops until Init runs, which keeps packages
// usable from tests without setup.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDirName  = "logs"
	logFileName = "horo.log"

	rotateMaxMB      = 10
	rotateMaxBackups = 3
	rotateMaxAgeDays = 28
)

// Logger is nil until Init.
var Logger *log.Logger

var file *lumberjack.Logger

type Config struct {
	Debug     bool
	ConfigDir string // logs/ is created beneath it
}

func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, logDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if file != nil {
		_ = file.Close()
	}
	file = &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    rotateMaxMB,
		MaxBackups: rotateMaxBackups,
		MaxAge:     rotateMaxAgeDays,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          "horo",
	}
	var w io.Writer = file
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		w = io.MultiWriter(os.Stderr, file)
	}
	Logger = log.NewWithOptions(w, opts)
	return nil
}

// Path is the active log file, or "" before Init.
func Path() string {
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close flushes and releases the log file. Later calls log nowhere.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
