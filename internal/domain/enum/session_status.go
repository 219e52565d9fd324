package enum

import (
	"database/sql/driver"
	"fmt"
)

// SessionStatus is the lifecycle state of a cash session.
// Closed is terminal; there is no reopen transition.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// ParseSessionStatus validates a raw tag against the known vocabulary.
func ParseSessionStatus(raw string) (SessionStatus, error) {
	s := SessionStatus(raw)
	switch s {
	case SessionOpen, SessionClosed:
		return s, nil
	}
	return "", fmt.Errorf("unknown session status %q", raw)
}

func (s SessionStatus) String() string {
	return string(s)
}

func (s SessionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SessionStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = SessionStatus(v)
	case []byte:
		*s = SessionStatus(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("cannot scan %T into SessionStatus", value)
	}
	return nil
}
