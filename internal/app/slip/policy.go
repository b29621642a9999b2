package slip

import (
	"fmt"
	"strings"
)

// Policy selects how the amount is located inside a slip code.
type Policy int

const (
	// ZeroRun reads the amount right after the first run of six, or else five, zeros.
	ZeroRun Policy = iota
	// FixedLength requires a 44 or 47 digit code and reads the last 10 digits as cents.
	FixedLength
)

var policyNames = map[Policy]string{
	ZeroRun:     "zero-run",
	FixedLength: "fixed-length",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy returns the policy with the given name.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Set parses s into p. It lets a Policy be filled from environment variables and command line flags.
func (p *Policy) Set(s string) error {
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Type names the flag value type.
func (p *Policy) Type() string {
	return "policy"
}
