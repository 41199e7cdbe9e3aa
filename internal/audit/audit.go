package audit

import (
	"context"

	"github.com/caffeinepub/cybermeet/pkg/log"
)

// Audit actions.
const (
	ActionCreateRoom  = "room.create"
	ActionJoinRoom    = "room.join"
	ActionLeaveRoom   = "room.leave"
	ActionAssignRole  = "role.assign"
	ActionSaveProfile = "profile.save"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, callerID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldCallerID, callerID).
		Msg(msg)
}

// LogWithRoom emits an audit log entry carrying the affected room id.
func LogWithRoom(ctx context.Context, action string, callerID string, roomID int64, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldCallerID, callerID).
		Int64(log.FieldRoomID, roomID).
		Msg(msg)
}

// LogWithDetail emits an audit log entry with an extra detail field.
func LogWithDetail(ctx context.Context, action string, callerID string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldCallerID, callerID).
		Str(FieldDetail, detail).
		Msg(msg)
}
