//go:generate enumer -type=status -transform=upper

package tcp

import (
	"fmt"
	"strings"
)

type response struct {
	status status
	reason string
}

func (r response) String() string {
	return fmt.Sprintf("RESPONSE|%s|%s", r.status, capitalizeFirst(r.reason))
}

type status int

const (
	Accepted status = iota
	Rejected
)

func accepted(format string, args ...any) response {
	return response{status: Accepted, reason: fmt.Sprintf(format, args...)}
}

func rejected(err error) response {
	return response{status: Rejected, reason: err.Error()}
}

func capitalizeFirst(s string) string {
	if len(s) == 0 {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
