// Package logging routes the standard logger to stderr and an optional log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   bool
	console io.Writer = os.Stderr
)

// Init points the standard logger at stderr and, when logPath is set, at
// logPath opened in append mode. Debug output is enabled by debugMode.
func Init(logPath string, debugMode bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	debug = debugMode

	writers := []io.Writer{console}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	debug = false
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// DebugEnabled reports whether debug logging is on.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

func LogEvent(format string, args ...any) {
	log.Println(fmt.Sprintf(format, args...))
}

// LogDebug logs only when debug mode is enabled.
func LogDebug(format string, args ...any) {
	if !DebugEnabled() {
		return
	}
	log.Println("[DEBUG] " + fmt.Sprintf(format, args...))
}

// LogFileEvent logs an action taken on a file, e.g. LogFileEvent("wrote", path, nil).
func LogFileEvent(action, path string, detail any) {
	log.Println(buildFileMessage(action, path, detail))
}

func buildFileMessage(action, path string, detail any) string {
	act := strings.ToUpper(strings.TrimSpace(action))
	if act == "" {
		act = "FILE"
	}
	pathValue := strings.TrimSpace(path)
	if pathValue == "" {
		pathValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", act), fmt.Sprintf("path=%s", pathValue)}
	if detail != nil {
		parts = append(parts, fmt.Sprintf("detail=%s", formatDetail(detail)))
	}
	return strings.Join(parts, " ")
}

func formatDetail(detail any) string {
	switch v := detail.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
