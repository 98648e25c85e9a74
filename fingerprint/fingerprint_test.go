package fingerprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComponents() Components {
	return Components{
		UserAgent:           "Mozilla/5.0 (X11; Linux x86_64)",
		Platform:            "Linux x86_64",
		Language:            "en-US",
		ScreenResolution:    "1920x1080",
		ColorDepth:          24,
		Timezone:            "Europe/Berlin",
		HardwareConcurrency: 8,
		DeviceMemory:        16,
		WebGLVendor:         "Mesa",
		WebGLRenderer:       "llvmpipe",
		Fonts:               []string{"Arial", "Helvetica"},
		LocalStorage:        true,
		SessionStorage:      true,
		IndexedDB:           true,
		AudioContext:        true,
		IPAddresses:         []string{"203.0.113.7"},
		NetworkQuality:      "4g",
	}
}

func TestHashIsStable(t *testing.T) {
	c := testComponents()

	first := New(c, time.Now())
	second := New(c, time.Now().Add(time.Hour))

	require.NotEmpty(t, first.Hash)
	assert.Equal(t, first.Hash, second.Hash, "same environment must produce the same hash")
	assert.Len(t, first.Hash, 64)
}

func TestHashIgnoresVolatileFields(t *testing.T) {
	base := New(testComponents(), time.Now())

	moved := testComponents()
	moved.IPAddresses = []string{"198.51.100.23"}
	moved.NetworkQuality = "3g"

	assert.Equal(t, base.Hash, New(moved, time.Now()).Hash,
		"changing only volatile fields must not change the hash")
}

func TestHashTracksStableFields(t *testing.T) {
	base := New(testComponents(), time.Now())

	cases := map[string]func(*Components){
		"timezone":  func(c *Components) { c.Timezone = "America/New_York" },
		"userAgent": func(c *Components) { c.UserAgent = "other" },
		"screen":    func(c *Components) { c.ScreenResolution = "2560x1440" },
		"fonts":     func(c *Components) { c.Fonts = []string{"Arial"} },
		"audio":     func(c *Components) { c.AudioContext = false },
		"memory":    func(c *Components) { c.DeviceMemory = 8 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := testComponents()
			mutate(&c)
			assert.NotEqual(t, base.Hash, New(c, time.Now()).Hash)
		})
	}
}

type staticCollector struct {
	components Components
	ok         bool
}

func (s staticCollector) Collect() (Components, bool) {
	return s.components, s.ok
}

func TestGenerate(t *testing.T) {
	fp := Generate(staticCollector{components: testComponents(), ok: true})
	require.NotNil(t, fp)
	assert.Equal(t, New(testComponents(), fp.Timestamp).Hash, fp.Hash)
	assert.False(t, fp.Timestamp.IsZero())
}

func TestGenerateWithoutSignalsReturnsNil(t *testing.T) {
	assert.Nil(t, Generate(nil))
	assert.Nil(t, Generate(staticCollector{ok: false}))
}
