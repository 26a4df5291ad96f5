package logging

import (
	"strings"
	"time"
)

// LogField creates a Field from a key-value pair.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// CaseField names a case by its group path and name, joined
// the way reports print full names.
func CaseField(path []string, name string) Field {
	if len(path) == 0 {
		return Field{Key: "case", Value: name}
	}
	return Field{
		Key:   "case",
		Value: strings.Join(path, " ") + " " + name,
	}
}

// RunIDField tags entries with the id of the run they belong
// to.
func RunIDField(id string) Field {
	return Field{Key: "run_id", Value: id}
}

// DurationField records d in milliseconds under key+"_ms".
func DurationField(key string, d time.Duration) Field {
	return Field{Key: key + "_ms", Value: d.Milliseconds()}
}

// ErrorField creates a Field for an error value. If err is nil,
// the value is set to the string "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}
