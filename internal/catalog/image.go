package catalog

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/poyntloop/rewards-admin-service/internal/logging"
)

// ImageParseMode selects how aggressively raw image payloads are sanitized
// before JSON parsing.
type ImageParseMode int

const (
	// ImageParseSimple parses the payload as-is.
	ImageParseSimple ImageParseMode = iota
	// ImageParseClean strips control characters and collapses newlines and
	// tabs first, for providers known to emit malformed JSON.
	ImageParseClean
)

// preferredImageKey is the size variant served to the dashboard.
const preferredImageKey = "300w-326ppi"

// typedImage covers the array-of-images and single-object payload shapes.
type typedImage struct {
	Src  string `json:"src"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

func (t typedImage) href() string {
	if t.Src != "" {
		return t.Src
	}
	return t.URL
}

// ParseImageURL resolves the image field of a redemption item to a plain
// URL. Direct URLs pass through unchanged. JSON payloads are matched
// against the known historical shapes: a size-keyed map ("<width>w-<dpi>ppi"
// keys), an array of typed images, or a single image object. Unrecognized
// or unparseable payloads return ("", false), never an error.
func ParseImageURL(raw string, mode ImageParseMode) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "http") || strings.HasPrefix(s, "/") || strings.HasPrefix(s, "data:image") {
		return raw, true
	}
	if s[0] == '{' || s[0] == '[' {
		if mode == ImageParseClean {
			s = cleanImageJSON(s)
		}
		return parseImageJSON(s)
	}
	// Anything else is treated as a bare URL.
	return raw, true
}

func parseImageJSON(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	switch s[0] {
	case '[':
		var imgs []typedImage
		if err := json.Unmarshal([]byte(s), &imgs); err != nil {
			logging.Warn("unparseable image array", map[string]interface{}{"error": err.Error()})
			return "", false
		}
		// Prefer the card-face image, else the first entry with a URL.
		for _, img := range imgs {
			if img.Type == "card" && img.href() != "" {
				return img.href(), true
			}
		}
		for _, img := range imgs {
			if img.href() != "" {
				return img.href(), true
			}
		}
		return "", false
	case '{':
		var sized map[string]string
		if err := json.Unmarshal([]byte(s), &sized); err == nil {
			return pickSizedImage(sized)
		}
		var single typedImage
		if err := json.Unmarshal([]byte(s), &single); err == nil && single.href() != "" {
			return single.href(), true
		}
		logging.Warn("unrecognized image object shape", nil)
		return "", false
	default:
		return "", false
	}
}

// pickSizedImage resolves a size-keyed image map. The preferred variant
// wins, else the numerically largest width, else a single-object shape,
// else the value under the lexicographically first key.
func pickSizedImage(m map[string]string) (string, bool) {
	if u := m[preferredImageKey]; u != "" {
		return u, true
	}

	best, bestWidth := "", -1
	for k, v := range m {
		if w, ok := imageKeyWidth(k); ok && v != "" && w > bestWidth {
			bestWidth, best = w, v
		}
	}
	if best != "" {
		return best, true
	}

	if u := m["src"]; u != "" {
		return u, true
	}
	if u := m["url"]; u != "" {
		return u, true
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		if m[k] != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	return m[keys[0]], true
}

// imageKeyWidth parses the width out of a "<width>w-<dpi>ppi" key.
func imageKeyWidth(k string) (int, bool) {
	head, _, ok := strings.Cut(k, "w-")
	if !ok {
		return 0, false
	}
	w, err := strconv.Atoi(head)
	if err != nil || w < 0 {
		return 0, false
	}
	return w, true
}

// cleanImageJSON drops control characters and collapses newlines and tabs
// into single spaces so historically malformed payloads still parse.
func cleanImageJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7f:
			// drop
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
