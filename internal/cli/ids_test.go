package cli

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/record"
)

func TestWriteIdentifiers(t *testing.T) {
	used := map[string]struct{}{"000001": {}, "000002": {}}
	var buf bytes.Buffer
	if err := writeIdentifiers(&buf, rand.New(rand.NewPCG(1, 2)), used, 50); err != nil {
		t.Fatalf("writeIdentifiers() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d identifiers, want 50", len(lines))
	}
	seen := map[string]bool{}
	for _, id := range lines {
		if len(id) != record.IdentifierDigits {
			t.Errorf("identifier %q has %d digits", id, len(id))
		}
		if id == "000001" || id == "000002" || seen[id] {
			t.Errorf("identifier %q reused", id)
		}
		seen[id] = true
	}
	if len(used) != 52 {
		t.Errorf("used set has %d entries, want 52", len(used))
	}
}

func TestIDsCommand(t *testing.T) {
	existing := writeFile(t, "plants.csv", plantsCSV)

	first, err := runCLI(t, "ids", "-n", "3", "--seed", "7", "--existing", existing)
	if err != nil {
		t.Fatalf("ids error: %v", err)
	}
	second, err := runCLI(t, "ids", "-n", "3", "--seed", "7", "--existing", existing)
	if err != nil {
		t.Fatalf("ids error: %v", err)
	}
	if first != second {
		t.Errorf("seeded runs differ:\n%s\n%s", first, second)
	}
	if n := len(strings.Fields(first)); n != 3 {
		t.Errorf("got %d identifiers, want 3", n)
	}
	for _, id := range strings.Fields(first) {
		if id == "000001" || id == "000002" || id == "000004" {
			t.Errorf("identifier %s collides with an existing record", id)
		}
	}

	if _, err := runCLI(t, "ids", "-n", "0"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ids -n 0 error = %v, want INVALID_INPUT", err)
	}
}
