package catalog

import "testing"

func TestParseCpid_Truncation(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		cpidx string
		cpid  string
	}{
		{"empty", "", "", ""},
		{"bare dash is a valid minimal cpid", "-", "-", "-"},
		{"exactly four segments", "us-acme-gc-001", "us-acme-gc-001", "us-acme-gc-001"},
		{"extra segments truncated", "us-acme-gc-001-25usd-en", "us-acme-gc-001-25usd-en", "us-acme-gc-001"},
		{"three segments pass through", "us-acme-gc", "us-acme-gc", "us-acme-gc"},
		{"single segment passes through", "malformed", "malformed", "malformed"},
		{"two segments pass through", "a-b", "a-b", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCpid(tt.raw)
			if got.Cpidx != tt.cpidx {
				t.Errorf("cpidx = %q, want %q", got.Cpidx, tt.cpidx)
			}
			if got.Cpid != tt.cpid {
				t.Errorf("cpid = %q, want %q", got.Cpid, tt.cpid)
			}
		})
	}
}

func TestParseCpid_Idempotent(t *testing.T) {
	inputs := []string{
		"us-acme-gc-001-25usd-en",
		"us-acme-gc-001",
		"a-b-c",
		"-",
		"",
	}
	for _, raw := range inputs {
		once := ParseCpid(raw).Cpid
		twice := ParseCpid(once).Cpid
		if once != twice {
			t.Errorf("ParseCpid not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
