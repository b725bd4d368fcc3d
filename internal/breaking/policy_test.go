package breaking

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/aplog/mock"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defId = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")

func change(version, deadline string) Change {
	return Change{
		ActorDefinitionId: defId,
		Version:           semver.MustParse(version),
		UpgradeDeadline:   database.MustParseDate(deadline),
	}
}

func versions(changes []Change) []string {
	var result []string
	for _, c := range changes {
		result = append(result, c.Version.String())
	}
	return result
}

func TestFilterApplicable(t *testing.T) {
	changes := []Change{
		change("1.0.0", "2023-01-01"),
		change("2.0.0", "2023-06-01"),
		change("3.0.0", "2024-01-01"),
	}

	assert.Equal(t, []string{"1.0.0", "2.0.0"}, versions(FilterApplicable(changes, semver.MustParse("2.5.0"))))
	assert.Equal(t, []string{"1.0.0", "2.0.0", "3.0.0"}, versions(FilterApplicable(changes, semver.MustParse("3.0.0"))))
	assert.Empty(t, FilterApplicable(changes, semver.MustParse("0.9.0")))
	assert.Empty(t, FilterApplicable(nil, semver.MustParse("1.0.0")))
	assert.Equal(t, []string{"1.0.0", "2.0.0"}, versions(FilterApplicable(changes, semver.MustParse("2.0.0-rc.1"))))
}

func TestLastApplicable(t *testing.T) {
	changes := []Change{
		change("3.0.0", "2024-01-01"),
		change("1.0.0", "2023-01-01"),
		change("2.0.0", "2023-06-01"),
	}

	last := LastApplicable(changes, semver.MustParse("2.9.9"))
	require.NotNil(t, last)
	assert.Equal(t, "2.0.0", last.Version.String())
	assert.Equal(t, database.NewDate(2023, 6, 1), last.UpgradeDeadline)

	assert.Nil(t, LastApplicable(changes, semver.MustParse("0.1.0")))
}

func TestCanAdvanceDefault(t *testing.T) {
	bc := []Change{change("2.0.0", "2024-01-01")}

	tests := []struct {
		name    string
		current string
		target  string
		changes []Change
		want    bool
	}{
		{name: "no breaking changes", current: "1.0.0", target: "9.0.0", changes: nil, want: true},
		{name: "lands on boundary", current: "1.9.0", target: "2.0.0", changes: bc, want: false},
		{name: "jumps over boundary", current: "1.9.0", target: "2.1.0", changes: bc, want: false},
		{name: "already past boundary", current: "2.0.0", target: "2.0.1", changes: bc, want: true},
		{name: "below boundary", current: "1.0.0", target: "1.9.9", changes: bc, want: true},
		{name: "no-op", current: "1.9.0", target: "1.9.0", changes: bc, want: true},
		{name: "downgrade across boundary", current: "2.1.0", target: "1.0.0", changes: bc, want: true},
		{name: "v prefixed", current: "v1.9.0", target: "v2.0.0", changes: bc, want: false},
		{name: "prerelease of the boundary", current: "2.0.0-rc.1", target: "2.0.0", changes: bc, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanAdvanceDefault(tt.current, tt.target, tt.changes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed tag", func(t *testing.T) {
		_, err := CanAdvanceDefault("dev", "2.0.0", bc)
		var pe *semver.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "dev", pe.Tag)

		_, err = CanAdvanceDefault("1.0.0", "latest", bc)
		require.Error(t, err)
	})

	t.Run("malformed tag without breaking changes", func(t *testing.T) {
		ok, err := CanAdvanceDefault("dev", "latest", nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestDowngradesAlwaysAllowed(t *testing.T) {
	changes := []Change{
		change("1.0.0", "2023-01-01"),
		change("1.5.0", "2023-02-01"),
		change("2.0.0", "2023-03-01"),
		change("3.0.0", "2023-04-01"),
	}

	tags := []string{"0.1.0", "0.9.9", "1.0.0", "1.4.0", "1.5.0", "1.9.0", "2.0.0", "2.0.1", "3.0.0", "3.2.1"}
	for _, current := range tags {
		for _, target := range tags {
			if semver.MustParse(target).GreaterThan(semver.MustParse(current)) {
				continue
			}

			ok, err := CanAdvanceDefault(current, target, changes)
			require.NoError(t, err)
			assert.True(t, ok, "%s -> %s", current, target)
		}
	}
}

func TestShouldAdvanceDefault(t *testing.T) {
	logger, handler := mock.NewTestLogger(t)
	bc := []Change{change("2.0.0", "2024-01-01")}

	assert.True(t, ShouldAdvanceDefault(logger, "2.0.0", "2.0.1", bc))
	assert.False(t, ShouldAdvanceDefault(logger, "1.9.0", "2.0.0", bc))
	assert.Empty(t, handler.Messages(slog.LevelWarn))

	assert.False(t, ShouldAdvanceDefault(logger, "dev", "2.0.0", bc))
	assert.Len(t, handler.Messages(slog.LevelWarn), 1)
}

func TestCrossed(t *testing.T) {
	changes := []Change{
		change("1.0.0", "2023-01-01"),
		change("2.0.0", "2023-03-01"),
		change("3.0.0", "2023-04-01"),
	}

	assert.Equal(t, []string{"2.0.0", "3.0.0"}, versions(Crossed(changes, semver.MustParse("1.0.0"), semver.MustParse("3.0.0"))))
	assert.Empty(t, Crossed(changes, semver.MustParse("3.0.0"), semver.MustParse("1.0.0")))
}
