package runner

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Status indicates the outcome of running a command.
type Status uint8

const (
	// StatusOK indicates successful execution.
	StatusOK Status = iota
	// StatusNoOp indicates the command had no effect.
	StatusNoOp
	// StatusError indicates the command failed.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Data keys for operation-specific result payloads.
const (
	// DataSheetName carries a created sheet's name.
	DataSheetName = "sheetName"
	// DataTableName carries a created table's backend-assigned name.
	DataTableName = "tableName"
	// DataChartName carries a created chart's backend-assigned name.
	DataChartName = "chartName"
	// DataCompletedSteps carries the number of batch steps that
	// succeeded before a failure stopped the batch.
	DataCompletedSteps = "completedSteps"
)

// Result represents the outcome of one command.
type Result struct {
	// Status indicates the result status.
	Status Status

	// Err contains the failure, converted from whatever fault the
	// backend raised. Never a raw panic.
	Err error

	// Message is an optional status message for display.
	Message string

	// Data holds operation-specific return data.
	Data map[string]any
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates failure.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// SuccessWithData creates a successful result with data.
func SuccessWithData(key string, value any) Result {
	return Result{Status: StatusOK, Data: map[string]any{key: value}}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Error creates a failure result.
func Error(err error) Result {
	return Result{Status: StatusError, Err: err}
}

// Errorf creates a failure result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Err: fmt.Errorf(format, args...)}
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (any, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from the result data.
func (r Result) GetDataString(key string) string {
	if v, ok := r.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataInt retrieves an int value from the result data.
func (r Result) GetDataInt(key string) int {
	if v, ok := r.GetData(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// JSON renders the result for the chat/UI layer: a success flag, an error
// message on failure, and any operation payload.
func (r Result) JSON() []byte {
	out := []byte(`{}`)
	out, _ = sjson.SetBytes(out, "success", !r.IsError())
	if r.Err != nil {
		out, _ = sjson.SetBytes(out, "error", r.Err.Error())
	}
	if r.Message != "" {
		out, _ = sjson.SetBytes(out, "message", r.Message)
	}
	for k, v := range r.Data {
		out, _ = sjson.SetBytes(out, k, v)
	}
	return out
}
