package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AuditEventType names one step of a submission's life.
type AuditEventType string

const (
	AuditSubmitSent     AuditEventType = "submit_sent"
	AuditSubmitSolved   AuditEventType = "submit_solved"
	AuditSubmitFailed   AuditEventType = "submit_failed"
	AuditDisplayReplace AuditEventType = "display_replace"
)

// AuditEvent is one line of audit.jsonl.
type AuditEvent struct {
	EventType    AuditEventType
	SubmissionID string
	Endpoint     string
	ResultType   string
	ErrorKind    string
	StatusCode   int
	Duration     time.Duration
	Message      string
}

var (
	auditMu     sync.Mutex
	auditFile   *os.File
	auditLogger *zap.Logger
)

// AuditPath returns the audit trail file for a workspace.
func AuditPath(workspace string) string {
	return filepath.Join(LogsDir(workspace), "audit.jsonl")
}

// InitAudit opens the audit trail. No-op unless debug mode is on.
func InitAudit(workspace string) error {
	if !IsDebugMode() {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if auditLogger != nil {
		return nil
	}

	path := AuditPath(workspace)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.MessageKey = "event"
	cfg.EncodeTime = zapcore.EpochMillisTimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(f), zapcore.DebugLevel)

	auditFile = f
	auditLogger = zap.New(core)
	return nil
}

func closeAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditLogger != nil {
		_ = auditLogger.Sync()
		auditLogger = nil
	}
	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// Audit records a submission event. Dropped when the audit trail is closed.
func Audit(e AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditLogger == nil {
		return
	}

	fields := []zap.Field{zap.String("submission", e.SubmissionID)}
	if e.Endpoint != "" {
		fields = append(fields, zap.String("endpoint", e.Endpoint))
	}
	if e.ResultType != "" {
		fields = append(fields, zap.String("result_type", e.ResultType))
	}
	if e.ErrorKind != "" {
		fields = append(fields, zap.String("kind", e.ErrorKind))
	}
	if e.StatusCode != 0 {
		fields = append(fields, zap.Int("status", e.StatusCode))
	}
	if e.Duration > 0 {
		fields = append(fields, zap.Int64("dur_ms", e.Duration.Milliseconds()))
	}
	if e.Message != "" {
		fields = append(fields, zap.String("msg", e.Message))
	}
	auditLogger.Info(string(e.EventType), fields...)
}
