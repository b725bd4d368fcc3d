// Package breaking decides whether breaking changes are in effect for a version and whether a default version may
// move across them. Everything here is pure; callers supply the breaking changes of a single definition.
package breaking

import (
	"log/slog"

	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/semver"
	"github.com/rmorlok/connlifecycle/internal/util"
)

type Change = database.ActorDefinitionBreakingChange

// FilterApplicable keeps the changes at or below the reference version. A change ahead of the reference is not in
// effect for it, which also covers defaults that were rolled back past a change.
func FilterApplicable(changes []Change, reference semver.Version) []Change {
	return util.Filter(changes, func(c Change) bool {
		return c.Version.LessThanOrEqual(reference)
	})
}

// LastApplicable returns the highest-versioned applicable change, or nil if none apply.
func LastApplicable(changes []Change, reference semver.Version) *Change {
	var last *Change
	for _, c := range FilterApplicable(changes, reference) {
		if last == nil || c.Version.GreaterThan(last.Version) {
			cpy := c
			last = &cpy
		}
	}
	return last
}

// Crossed returns the changes in the half-open range (current, target].
func Crossed(changes []Change, current, target semver.Version) []Change {
	return util.Filter(changes, func(c Change) bool {
		return c.Version.GreaterThan(current) && c.Version.LessThanOrEqual(target)
	})
}

// CanAdvanceDefault reports whether a definition's default may move from currentTag to targetTag. Moving is
// allowed when the definition has no breaking changes, when the move is a downgrade or no-op, or when no breaking
// change lies in (current, target]. A tag that does not parse returns a *semver.ParseError.
func CanAdvanceDefault(currentTag, targetTag string, changes []Change) (bool, error) {
	if len(changes) == 0 {
		return true, nil
	}

	current, err := semver.Parse(currentTag)
	if err != nil {
		return false, err
	}

	target, err := semver.Parse(targetTag)
	if err != nil {
		return false, err
	}

	if target.LessThanOrEqual(current) {
		return true, nil
	}

	return len(Crossed(changes, current, target)) == 0, nil
}

// ShouldAdvanceDefault is CanAdvanceDefault for callers that cannot handle an error. Tags that cannot be compared
// are logged and treated as "do not advance".
func ShouldAdvanceDefault(logger *slog.Logger, currentTag, targetTag string, changes []Change) bool {
	ok, err := CanAdvanceDefault(currentTag, targetTag, changes)
	if err != nil {
		logger.Warn("cannot evaluate breaking changes for version move; not advancing",
			"current_tag", currentTag,
			"target_tag", targetTag,
			"error", err,
		)
		return false
	}
	return ok
}
