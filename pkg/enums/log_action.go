package enums

import "fmt"

// LogAction identifies the kind of product mutation recorded in the audit log.
type LogAction string

const (
	LogActionCreate LogAction = "CREATE"
	LogActionUpdate LogAction = "UPDATE"
	LogActionDelete LogAction = "DELETE"
)

var validLogActions = []LogAction{
	LogActionCreate,
	LogActionUpdate,
	LogActionDelete,
}

// String implements fmt.Stringer.
func (a LogAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known LogAction.
func (a LogAction) IsValid() bool {
	for _, candidate := range validLogActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseLogAction converts a raw string into a LogAction or errors on unknown values.
func ParseLogAction(value string) (LogAction, error) {
	action := LogAction(value)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid log action %q", value)
	}
	return action, nil
}
