package catalog

import (
	"strings"

	"github.com/poyntloop/rewards-admin-service/internal/logging"
	"github.com/poyntloop/rewards-admin-service/internal/metrics"
)

// cpidSegments is how many dash-segments form the canonical grouping key.
const cpidSegments = 4

// Cpid carries both forms of a composite reward identifier: Cpidx is the
// full string as stored, Cpid is the canonical 4-segment prefix used for
// grouping.
type Cpid struct {
	Cpidx string `json:"cpidx"`
	Cpid  string `json:"cpid"`
}

// ParseCpid truncates a raw CPID to its canonical prefix. A bare "-" is a
// valid minimal CPID. Anything else with fewer than 4 segments is malformed
// and passes through unchanged so the original value is never corrupted.
func ParseCpid(raw string) Cpid {
	if raw == "" {
		return Cpid{}
	}
	if raw == "-" {
		return Cpid{Cpidx: "-", Cpid: "-"}
	}

	parts := strings.Split(raw, "-")
	if len(parts) < cpidSegments {
		logging.Warn("malformed cpid", map[string]interface{}{"cpid": raw, "segments": len(parts)})
		metrics.RecordMalformedCpid()
		return Cpid{Cpidx: raw, Cpid: raw}
	}

	return Cpid{Cpidx: raw, Cpid: strings.Join(parts[:cpidSegments], "-")}
}
