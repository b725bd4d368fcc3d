package semver

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tag        string
		major      uint64
		minor      uint64
		patch      uint64
		prerelease string
		expectErr  bool
	}{
		{name: "plain", tag: "1.2.3", major: 1, minor: 2, patch: 3},
		{name: "v prefix", tag: "v0.10.21", major: 0, minor: 10, patch: 21},
		{name: "whitespace", tag: "  2.0.0\n", major: 2, minor: 0, patch: 0},
		{name: "prerelease", tag: "1.0.0-rc.1", major: 1, minor: 0, patch: 0, prerelease: "rc.1"},
		{name: "build metadata", tag: "1.0.0+abc", major: 1, minor: 0, patch: 0},
		{name: "dev", tag: "dev", expectErr: true},
		{name: "latest", tag: "latest", expectErr: true},
		{name: "empty", tag: "", expectErr: true},
		{name: "two components", tag: "1.2", expectErr: true},
		{name: "one component", tag: "1", expectErr: true},
		{name: "four components", tag: "1.2.3.4", expectErr: true},
		{name: "non numeric", tag: "1.x.3", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.tag)
			if tt.expectErr {
				require.Error(t, err)
				var pe *ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, tt.tag, pe.Tag)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.major, v.Major)
			assert.Equal(t, tt.minor, v.Minor)
			assert.Equal(t, tt.patch, v.Patch)
			assert.Equal(t, tt.prerelease, v.Prerelease)
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "v1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.0.10", "1.0.9", 1},
		{"1.10.0", "1.9.9", 1},
		{"2.0.0", "10.0.0", -1},
		{"1.0.0-rc.1", "1.0.0", 0},
		{"1.0.0-alpha", "1.0.0-beta", 0},
		{"1.0.0-rc.1", "1.0.1", -1},
		{"1.0.0+build1", "1.0.0+build2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got, err := CompareTags(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			reverse, err := CompareTags(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, -tt.want, reverse)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := CompareTags("dev", "1.0.0")
		require.Error(t, err)
		_, err = CompareTags("1.0.0", "dev")
		require.Error(t, err)
	})
}

func TestIsPatchBumpOf(t *testing.T) {
	t.Parallel()

	assert.True(t, MustParse("1.2.4").IsPatchBumpOf(MustParse("1.2.3")))
	assert.False(t, MustParse("1.2.3").IsPatchBumpOf(MustParse("1.2.3")))
	assert.False(t, MustParse("1.2.2").IsPatchBumpOf(MustParse("1.2.3")))
	assert.False(t, MustParse("1.3.0").IsPatchBumpOf(MustParse("1.2.3")))
	assert.False(t, MustParse("2.2.4").IsPatchBumpOf(MustParse("1.2.3")))
}

func TestIsNewer(t *testing.T) {
	t.Parallel()

	newer, err := IsNewer("1.0.0", "1.0.1")
	require.NoError(t, err)
	assert.True(t, newer)

	newer, err = IsNewer("1.0.1", "1.0.1")
	require.NoError(t, err)
	assert.False(t, newer)

	newer, err = IsNewer("dev", "1.0.1")
	require.Error(t, err)
	assert.False(t, newer)
}

func TestVersionSerialization(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		type wrapper struct {
			Version Version `json:"version"`
		}

		var w wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"version":"v2.1.0"}`), &w))
		assert.Equal(t, uint64(2), w.Version.Major)

		out, err := json.Marshal(w)
		require.NoError(t, err)
		assert.JSONEq(t, `{"version":"v2.1.0"}`, string(out))

		require.Error(t, json.Unmarshal([]byte(`{"version":"dev"}`), &w))
	})

	t.Run("sql", func(t *testing.T) {
		var v Version
		require.NoError(t, v.Scan("3.0.0"))
		assert.Equal(t, "3.0.0", v.String())

		require.NoError(t, v.Scan([]byte("3.1.0")))
		assert.Equal(t, uint64(1), v.Minor)

		val, err := v.Value()
		require.NoError(t, err)
		assert.Equal(t, "3.1.0", val)

		require.Error(t, v.Scan(12))
	})

	t.Run("string without raw", func(t *testing.T) {
		assert.Equal(t, "1.2.3-rc.1", Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1"}.String())
	})
}
