package record

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// IdentifierDigits is the length of generated identifiers.
const IdentifierDigits = 6

const identifierSpace = 1_000_000

// NewIdentifier draws a random six-digit identifier (leading zeros kept)
// that is not in existing. The chosen value is added to existing so repeated
// calls never return duplicates. It fails once the space is exhausted.
func NewIdentifier(rng *rand.Rand, existing map[string]struct{}) (string, error) {
	if existing == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "identifier set is nil")
	}
	if len(existing) >= identifierSpace {
		return "", errors.New(errors.ErrCodeInvalidInput, "all %d identifiers are in use", identifierSpace)
	}
	for {
		id := fmt.Sprintf("%0*d", IdentifierDigits, rng.IntN(identifierSpace))
		if _, taken := existing[id]; taken {
			continue
		}
		existing[id] = struct{}{}
		return id, nil
	}
}

// IdentifierSet builds the collision set for NewIdentifier from records.
func IdentifierSet(recs []Record) map[string]struct{} {
	set := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		set[r.Identifier] = struct{}{}
	}
	return set
}
