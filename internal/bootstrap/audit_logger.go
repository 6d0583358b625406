package bootstrap

import "context"

// AuditLog is an operational event worth keeping outside request logs,
// such as server start and shutdown.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
