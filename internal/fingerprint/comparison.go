package fingerprint

import (
	"fmt"
)

// Compare returns an error if the two fingerprints differ
func Compare(expected, actual *Fingerprint) error {
	if expected.Hash == actual.Hash {
		return nil
	}

	expectedPreview := expected.Hash
	if len(expectedPreview) > 16 {
		expectedPreview = expectedPreview[:16]
	}

	actualPreview := actual.Hash
	if len(actualPreview) > 16 {
		actualPreview = actualPreview[:16]
	}

	return fmt.Errorf("fingerprint mismatch - expected: %s, actual: %s",
		expectedPreview, actualPreview)
}
