package service

import (
	"fmt"
	"strings"
)

// Policy decides whether Update refreshes the production store.
type Policy int

const (
	// PolicySkip never updates.
	PolicySkip Policy = iota
	// PolicyAuto updates when the cache is older than the repository.
	PolicyAuto
	// PolicyForce always replaces the production catalog.
	PolicyForce
)

var policyNames = [...]string{"skip", "auto", "force"}

func (p Policy) String() string {
	if p < PolicySkip || p > PolicyForce {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy accepts skip, auto or force, ignoring case.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown update policy %q", s)
}

func (p Policy) MarshalText() ([]byte, error) {
	if p < PolicySkip || p > PolicyForce {
		return nil, fmt.Errorf("unknown update policy %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
