package facts

import "testing"

func TestRandomReturnsKnownFact(t *testing.T) {
	known := make(map[string]bool, len(hydrationFacts))
	for _, f := range hydrationFacts {
		known[f] = true
	}

	for i := 0; i < 50; i++ {
		if fact := Random(); !known[fact] {
			t.Fatalf("Random returned unknown fact: %q", fact)
		}
	}
}
