// Package semver parses docker image tags into ordered major.minor.patch versions.
//
// Tags are parsed once at the boundary (registry input, database scan) into a Version value and are
// only compared through its ordering methods afterward.
package semver

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	xsemver "golang.org/x/mod/semver"
)

// ParseError is returned when a tag cannot be interpreted as a major.minor.patch version. Locally built
// images (e.g. "dev") produce this error routinely.
type ParseError struct {
	Tag    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version tag '%s': %s", e.Tag, e.Reason)
}

// Version is a parsed image tag.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string

	raw string
}

// Parse converts a tag such as "1.2.3", "v1.2.3" or "1.2.3-rc.1" into a Version. Build metadata is
// accepted and ignored for ordering.
func Parse(tag string) (Version, error) {
	raw := strings.TrimSpace(tag)
	if raw == "" {
		return Version{}, &ParseError{Tag: tag, Reason: "empty tag"}
	}

	v := raw
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	if !xsemver.IsValid(v) {
		return Version{}, &ParseError{Tag: tag, Reason: "not a semantic version"}
	}

	prerelease := xsemver.Prerelease(v)
	core := strings.TrimSuffix(strings.TrimSuffix(v, xsemver.Build(v)), prerelease)
	parts := strings.Split(strings.TrimPrefix(core, "v"), ".")
	if len(parts) != 3 {
		return Version{}, &ParseError{Tag: tag, Reason: "expected major.minor.patch"}
	}

	nums := [3]uint64{}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, &ParseError{Tag: tag, Reason: fmt.Sprintf("component '%s' is not numeric", p)}
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: strings.TrimPrefix(prerelease, "-"),
		raw:        raw,
	}, nil
}

// MustParse is Parse that panics on error. Intended for constants and tests.
func MustParse(tag string) Version {
	v, err := Parse(tag)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the tag the version was parsed from.
func (v Version) String() string {
	if v.raw != "" {
		return v.raw
	}

	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// IsZero is true for the zero value, which is never produced by a successful Parse of a real tag other
// than "0.0.0".
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Prerelease == "" && v.raw == ""
}

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater than o. Only the numeric triple is
// ordered; versions differing only in prerelease or build metadata compare equal.
func (v Version) Compare(o Version) int {
	if c := cmpUint(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpUint(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmpUint(v.Patch, o.Patch)
}

func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

func (v Version) LessThan(o Version) bool {
	return v.Compare(o) < 0
}

func (v Version) LessThanOrEqual(o Version) bool {
	return v.Compare(o) <= 0
}

func (v Version) GreaterThan(o Version) bool {
	return v.Compare(o) > 0
}

// IsPatchBumpOf is true when v is newer than previous but shares its major and minor components.
func (v Version) IsPatchBumpOf(previous Version) bool {
	return v.Major == previous.Major && v.Minor == previous.Minor && v.GreaterThan(previous)
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler so versions serialize as their tag.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Value implements the driver.Valuer interface for Version
func (v Version) Value() (driver.Value, error) {
	return v.String(), nil
}

// Scan implements the sql.Scanner interface for Version
func (v *Version) Scan(value interface{}) error {
	switch val := value.(type) {
	case string:
		return v.UnmarshalText([]byte(val))
	case []byte:
		return v.UnmarshalText(val)
	default:
		return fmt.Errorf("cannot convert %T to Version", value)
	}
}
