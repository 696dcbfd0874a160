// Package logger 는 api 서버와 importer 가 함께 쓰는 gookit/slog 기반 JSON 로거다.
package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger 는 애플리케이션 전역에서 사용하는 최소 로거 인터페이스다.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields 는 구조화 로그를 위한 공통 필드 타입이다.
type Fields map[string]any

// defaultServiceName 은 SERVICE_NAME 환경변수가 없을 때 쓰는 값이다.
const defaultServiceName = "blog-cms"

// Log 는 전역 로거다. Init 전에도 info 레벨로 동작한다.
var Log Logger = NewLogger("info")

// Init 은 설정 파일의 logging.level 값으로 전역 로거를 교체한다.
// 알 수 없는 레벨은 info 로 취급한다.
func Init(level string) {
	Log = NewLogger(normalizeLevel(level))
}

// NewLogger 는 datetime/level/message 만 기본 필드로 내보내는 JSON 콘솔 로거를 만든다.
// 나머지 정보는 Fields 로 최상위 키에 붙는다.
func NewLogger(level string) Logger {
	maxLevel := slog.LevelByName(normalizeLevel(level))

	levels := make(slog.Levels, 0, len(slog.AllLevels))
	for _, lv := range slog.AllLevels {
		if lv <= maxLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{slog.FieldKeyDatetime, slog.FieldKeyLevel, slog.FieldKeyMessage}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	}))

	return slog.NewWithHandlers(h)
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "trace", "debug", "info", "notice", "warn", "warning", "error", "fatal", "panic":
		return level
	default:
		return "info"
	}
}

// withServiceName 은 service_name 필드가 없으면 채워 넣는다. 호출자의 map 은 건드리지 않는다.
func withServiceName(fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	if _, ok := out["service_name"]; !ok {
		sn := os.Getenv("SERVICE_NAME")
		if sn == "" {
			sn = defaultServiceName
		}
		out["service_name"] = sn
	}
	return out
}

// logWithFields 는 전역 로거가 gookit/slog 일 때만 필드를 붙이고, 아니면 메시지만 남긴다.
func logWithFields(level slog.Level, msg string, fields Fields) {
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(withServiceName(fields))).Log(level, msg)
		return
	}
	switch level {
	case slog.DebugLevel:
		Log.Debug(msg)
	case slog.WarnLevel:
		Log.Warn(msg)
	case slog.ErrorLevel:
		Log.Error(msg)
	default:
		Log.Info(msg)
	}
}

func DebugWithFields(msg string, fields Fields) { logWithFields(slog.DebugLevel, msg, fields) }
func InfoWithFields(msg string, fields Fields)  { logWithFields(slog.InfoLevel, msg, fields) }
func WarnWithFields(msg string, fields Fields)  { logWithFields(slog.WarnLevel, msg, fields) }
func ErrorWithFields(msg string, fields Fields) { logWithFields(slog.ErrorLevel, msg, fields) }
