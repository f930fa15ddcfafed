package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger struct to hold leveled loggers and configuration
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	output      io.Writer
	level       LogLevel
	mutex       sync.Mutex
}

// LogLevel defines the logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// Global logger instance
var GlobalLogger *Logger
var once sync.Once

func init() {
	GlobalLogger = newLogger(os.Stdout, INFO)
}

// InitLogger replaces the default stdout logger with one writing to output at the given level.
// Only the first call has an effect.
func InitLogger(output io.Writer, level string) {
	once.Do(func() {
		if output == nil {
			output = os.Stdout
		}
		GlobalLogger = newLogger(output, ParseLevel(level))
	})
}

// NewFileWriter returns a size-rotated log file writer.
func NewFileWriter(path string, maxSizeMB, maxBackups int) io.WriteCloser {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}
}

// ParseLevel maps a level name to a LogLevel, defaulting to INFO.
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func newLogger(output io.Writer, level LogLevel) *Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		infoLogger:  log.New(output, color.GreenString("INFO: "), flags),
		warnLogger:  log.New(output, color.YellowString("WARN: "), flags),
		errorLogger: log.New(output, color.RedString("ERROR: "), flags),
		debugLogger: log.New(output, color.BlueString("DEBUG: "), flags),
		output:      output,
		level:       level,
	}
}

// Println logs a message at the INFO level
func (l *Logger) Println(v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= INFO {
		l.infoLogger.Println(v...)
	}
}

// Printf logs a formatted message at the INFO level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= INFO {
		l.infoLogger.Printf(format, v...)
	}
}

// Warnf logs a formatted message at the WARN level
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= WARN {
		l.warnLogger.Printf(format, v...)
	}
}

// Error logs a message at the ERROR level
func (l *Logger) Error(v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= ERROR {
		l.errorLogger.Println(v...)
	}
}

// Errorf logs a formatted message at the ERROR level
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= ERROR {
		l.errorLogger.Printf(format, v...)
	}
}

// Debug logs a message at the DEBUG level
func (l *Logger) Debug(v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= DEBUG {
		l.debugLogger.Println(v...)
	}
}

// Debugf logs a formatted message at the DEBUG level
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= DEBUG {
		l.debugLogger.Printf(format, v...)
	}
}
