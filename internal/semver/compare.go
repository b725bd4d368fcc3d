package semver

// CompareTags parses both tags and compares them. Either tag failing to parse returns a *ParseError.
func CompareTags(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}

	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}

	return va.Compare(vb), nil
}

// IsNewer reports whether latest is strictly newer than current.
func IsNewer(current, latest string) (bool, error) {
	c, err := CompareTags(current, latest)
	if err != nil {
		return false, err
	}

	return c < 0, nil
}
