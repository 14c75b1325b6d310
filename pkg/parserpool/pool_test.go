package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/nhmuk/bgap/pkg/parserpool"
)

// TestNewPool verifies pool creation with default and custom sizes.
func TestNewPool(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
	}{
		{
			name:     "default size (0 = NumCPU)",
			poolSize: 0,
		},
		{
			name:     "custom size 4",
			poolSize: 4,
		},
		{
			name:     "custom size 1",
			poolSize: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := parserpool.NewPool(tt.poolSize)
			if pool == nil {
				t.Fatal("NewPool returned nil")
			}
			defer pool.Close()

			// Verify pool works by parsing a simple name
			_, err := pool.Parse("Homo sapiens", nomcode.Zoological)
			if err != nil {
				t.Errorf("Parse failed: %v", err)
			}
		})
	}
}

// TestNewPool_ExplicitCodes verifies a pool restricted to one code.
func TestNewPool_ExplicitCodes(t *testing.T) {
	pool := parserpool.NewPool(1, nomcode.Zoological)
	defer pool.Close()

	result, err := pool.Parse("Apis mellifera Linnaeus, 1758", nomcode.Zoological)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !result.Parsed {
		t.Error("Expected name to parse")
	}

	// Botanical pool was never created for this instance
	_, err = pool.Parse("Plantago major", nomcode.Botanical)
	if err == nil {
		t.Error("Expected error for code without a pool, got nil")
	}
}

// TestParse_BotanicalCode verifies botanical name parsing.
func TestParse_BotanicalCode(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		name       string
		nameString string
		wantParsed bool
	}{
		{
			name:       "simple botanical name",
			nameString: "Plantago major",
			wantParsed: true,
		},
		{
			name:       "botanical name with author",
			nameString: "Plantago major L.",
			wantParsed: true,
		},
		{
			name:       "botanical trinomial",
			nameString: "Rosa acicularis var. acicularis",
			wantParsed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := pool.Parse(tt.nameString, nomcode.Botanical)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if result.Parsed != tt.wantParsed {
				t.Errorf("Parse result.Parsed = %v, want %v", result.Parsed, tt.wantParsed)
			}

			if tt.wantParsed && result.Canonical.Simple == "" {
				t.Errorf("Expected non-empty canonical for parsed name")
			}
		})
	}
}

// TestParse_ZoologicalCode verifies zoological name parsing.
func TestParse_ZoologicalCode(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		name       string
		nameString string
		wantParsed bool
	}{
		{
			name:       "simple zoological name",
			nameString: "Vanessa atalanta",
			wantParsed: true,
		},
		{
			name:       "zoological name with author",
			nameString: "Apis mellifera Linnaeus, 1758",
			wantParsed: true,
		},
		{
			name:       "zoological trinomial",
			nameString: "Passer domesticus domesticus",
			wantParsed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := pool.Parse(tt.nameString, nomcode.Zoological)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if result.Parsed != tt.wantParsed {
				t.Errorf("Parse result.Parsed = %v, want %v", result.Parsed, tt.wantParsed)
			}

			if tt.wantParsed && result.Canonical.Simple == "" {
				t.Errorf("Expected non-empty canonical for parsed name")
			}
		})
	}
}

// TestParse_UnsupportedCode verifies error handling for codes without pools.
func TestParse_UnsupportedCode(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	_, err := pool.Parse("Plantago major", nomcode.Bacterial)
	if err == nil {
		t.Error("Expected error for unsupported nomenclatural code, got nil")
	}
}

// TestParse_CodeDifference verifies botanical vs zoological parsing differences.
// The name "Aus (Bus)" is parsed differently depending on nomenclatural code:
// - Zoological: Canonical.Simple = "Bus" (subgenus in parentheses is primary)
// - Botanical: Canonical.Simple = "Aus" (genus is primary, parenthetical is ignored)
func TestParse_CodeDifference(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	nameString := "Aus (Bus)"

	// Parse with zoological code
	zooResult, err := pool.Parse(nameString, nomcode.Zoological)
	if err != nil {
		t.Fatalf("Zoological parse failed: %v", err)
	}

	// Parse with botanical code
	botResult, err := pool.Parse(nameString, nomcode.Botanical)
	if err != nil {
		t.Fatalf("Botanical parse failed: %v", err)
	}

	// Verify different interpretations
	if zooResult.Canonical.Simple != "Bus" {
		t.Errorf("Zoological parse: got Canonical.Simple = %q, want %q",
			zooResult.Canonical.Simple, "Bus")
	}

	if botResult.Canonical.Simple != "Aus" {
		t.Errorf("Botanical parse: got Canonical.Simple = %q, want %q",
			botResult.Canonical.Simple, "Aus")
	}
}

// TestParse_Concurrent verifies thread-safety with multiple goroutines.
func TestParse_Concurrent(t *testing.T) {
	poolSize := 4
	pool := parserpool.NewPool(poolSize)
	defer pool.Close()

	numGoroutines := 20
	namesPerGoroutine := 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			// Alternate between botanical and zoological codes
			code := nomcode.Botanical
			nameString := "Plantago major"
			if id%2 == 0 {
				code = nomcode.Zoological
				nameString = "Apis mellifera"
			}

			for j := 0; j < namesPerGoroutine; j++ {
				result, err := pool.Parse(nameString, code)
				if err != nil {
					t.Errorf("Goroutine %d: Parse failed: %v", id, err)
					return
				}

				if !result.Parsed {
					t.Errorf("Goroutine %d: Name not parsed: %s", id, nameString)
				}
			}
		}(i)
	}

	wg.Wait()
}

// TestClose verifies proper cleanup of resources.
func TestClose(t *testing.T) {
	pool := parserpool.NewPool(2)

	// Parse a name before closing
	_, err := pool.Parse("Plantago major", nomcode.Botanical)
	if err != nil {
		t.Fatalf("Parse before close failed: %v", err)
	}

	// Close should not panic
	pool.Close()
}
