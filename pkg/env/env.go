// Package env enumerates the isolated execution contexts a catalog can live in.
package env

import (
	"errors"
	"fmt"
	"strings"
)

// Env identifies one isolated execution context. Its ordinal indexes path lookup tables.
type Env int

const (
	Prod Env = iota
	Test1
	Test2
	Test3
	Test4
	Test5
)

// Count is the number of environments.
const Count = int(Test5) + 1

// ErrUnknownEnv is returned when a name does not match any environment.
var ErrUnknownEnv = errors.New("unknown environment")

var labels = [Count]string{"Master", "Test1", "Test2", "Test3", "Test4", "Test5"}

var relativePaths = [Count]string{"prod", "test1", "test2", "test3", "test4", "test5"}

// String returns the human-readable label.
func (e Env) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Env(%d)", int(e))
	}
	return labels[e]
}

// RelativePath returns the directory name used under per-environment roots.
func (e Env) RelativePath() string {
	if !e.Valid() {
		return ""
	}
	return relativePaths[e]
}

// IsTest reports whether e is one of the numbered test environments.
func (e Env) IsTest() bool {
	return e >= Test1 && e <= Test5
}

// Valid reports whether e is a defined environment.
func (e Env) Valid() bool {
	return e >= Prod && e <= Test5
}

// All returns every environment in ordinal order.
func All() []Env {
	envs := make([]Env, 0, Count)
	for e := Prod; e <= Test5; e++ {
		envs = append(envs, e)
	}
	return envs
}

// TestEnvs returns the test environments in ordinal order.
func TestEnvs() []Env {
	return All()[1:]
}

// Parse accepts either the label or the relative path of an environment, ignoring case.
func Parse(s string) (Env, error) {
	needle := strings.TrimSpace(s)
	for e := Prod; e <= Test5; e++ {
		if strings.EqualFold(needle, labels[e]) || strings.EqualFold(needle, relativePaths[e]) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEnv, s)
}

// MarshalText renders the relative path so configuration and JSON use the short form.
func (e Env) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEnv, int(e))
	}
	return []byte(relativePaths[e]), nil
}

// UnmarshalText is the inverse of MarshalText and also accepts labels.
func (e *Env) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
