package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Components is the full structured attribute set reported by a device.
// The stable subset feeds the hash; the volatile fields are retained for
// display and audit only.
type Components struct {
	UserAgent           string   `json:"userAgent"`
	Platform            string   `json:"platform"`
	Language            string   `json:"language"`
	ScreenResolution    string   `json:"screenResolution"`
	ColorDepth          int      `json:"colorDepth"`
	Timezone            string   `json:"timezone"`
	HardwareConcurrency int      `json:"hardwareConcurrency"`
	DeviceMemory        int      `json:"deviceMemory"`
	WebGLVendor         string   `json:"webglVendor"`
	WebGLRenderer       string   `json:"webglRenderer"`
	Fonts               []string `json:"fonts"`
	LocalStorage        bool     `json:"localStorage"`
	SessionStorage      bool     `json:"sessionStorage"`
	IndexedDB           bool     `json:"indexedDB"`
	AudioContext        bool     `json:"audioContext"`

	// Volatile: never hashed.
	IPAddresses    []string `json:"ipAddresses,omitempty"`
	NetworkQuality string   `json:"networkQuality,omitempty"`
}

// Fingerprint binds the stable hash to the component set it was derived
// from and the moment of capture.
type Fingerprint struct {
	Hash       string     `json:"fingerprint"`
	Components Components `json:"components"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Collector supplies device attributes from whatever execution context is
// available. Collect reports false when no signals can be gathered (for
// example, outside a browser-backed channel).
type Collector interface {
	Collect() (Components, bool)
}

// New derives a [Fingerprint] from the given components at the given time.
// Only the stable attribute subset contributes to the hash.
func New(c Components, at time.Time) Fingerprint {
	return Fingerprint{
		Hash:       hashComponents(c),
		Components: c,
		Timestamp:  at,
	}
}

// Generate collects attributes through c and derives a fingerprint.
// It returns nil, not an error, when no collector is available or the
// collector has no signals: fingerprinting is advisory and its absence must
// never fail a request.
func Generate(c Collector) *Fingerprint {
	if c == nil {
		return nil
	}

	components, ok := c.Collect()
	if !ok {
		return nil
	}

	fp := New(components, time.Now())
	return &fp
}

// fieldSep cannot appear in any attribute value that browsers report, which
// keeps the canonical concatenation unambiguous.
const fieldSep = "\x1f"

func hashComponents(c Components) string {
	var b strings.Builder
	b.Grow(512)

	b.WriteString(c.UserAgent)
	b.WriteString(fieldSep)
	b.WriteString(c.Platform)
	b.WriteString(fieldSep)
	b.WriteString(c.Language)
	b.WriteString(fieldSep)
	b.WriteString(c.ScreenResolution)
	b.WriteString(fieldSep)
	b.WriteString(strconv.Itoa(c.ColorDepth))
	b.WriteString(fieldSep)
	b.WriteString(c.Timezone)
	b.WriteString(fieldSep)
	b.WriteString(strconv.Itoa(c.HardwareConcurrency))
	b.WriteString(fieldSep)
	b.WriteString(strconv.Itoa(c.DeviceMemory))
	b.WriteString(fieldSep)
	b.WriteString(c.WebGLVendor)
	b.WriteString(fieldSep)
	b.WriteString(c.WebGLRenderer)
	b.WriteString(fieldSep)
	b.WriteString(strings.Join(c.Fonts, ","))
	b.WriteString(fieldSep)
	b.WriteString(boolFlag(c.LocalStorage))
	b.WriteString(boolFlag(c.SessionStorage))
	b.WriteString(boolFlag(c.IndexedDB))
	b.WriteString(boolFlag(c.AudioContext))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
