// Package edition gates a module's declared edition against the
// checker's configured supported range, the way a package manager
// gates a dependency's declared version against a consumer's
// constraint.
package edition

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Current is the edition a module declares when it omits an explicit
// one.
var Current = semver.MustParse("1.0.0")

// Check reports whether moduleEdition (a concrete semver version, e.g.
// "1.0.0") satisfies constraint (the checker's configured supported
// range, e.g. ">=1.0.0, <2.0.0"). An empty moduleEdition defaults to
// Current; an empty constraint always admits.
func Check(moduleEdition, constraint string) (bool, error) {
	version := Current

	if trimmed := strings.TrimSpace(moduleEdition); trimmed != "" {
		v, err := semver.NewVersion(trimmed)
		if err != nil {
			return false, fmt.Errorf("edition: invalid module edition %q: %w", moduleEdition, err)
		}

		version = v
	}

	if strings.TrimSpace(constraint) == "" {
		return true, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("edition: invalid constraint %q: %w", constraint, err)
	}

	return c.Check(version), nil
}
