package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xef, 0xbb, 0xbf, '<', 'S', 'C', 'L', '>'}
	assert.Equal(t, []byte("<SCL>"), RemoveBOM(withBOM))

	plain := []byte("<SCL>")
	assert.Equal(t, plain, RemoveBOM(plain))

	short := []byte{0xef, 0xbb}
	assert.Equal(t, short, RemoveBOM(short))
}

func TestReadRequiredFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "device.icd")
	content := append([]byte{0xef, 0xbb, 0xbf}, []byte("<SCL/>")...)
	require.NoError(t, os.WriteFile(name, content, 0o660))

	abs, raw, err := ReadRequiredFile(name)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
	assert.Equal(t, []byte("<SCL/>"), raw)

	_, _, err = ReadRequiredFile(filepath.Join(dir, "missing.icd"))
	assert.Error(t, err)

	_, _, err = ReadRequiredFile(dir)
	assert.ErrorContains(t, err, "not a file")
}

func TestAtomicWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, AtomicWriteFile(name, []byte("one"), 0o664))
	require.NoError(t, AtomicWriteFile(name, []byte("two"), 0o664))

	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "two", string(raw))
}

func TestSanitizeStorageName(t *testing.T) {
	ts := map[string]string{
		"device.icd":              "device.icd",
		"My Device (v2).icd":      "My_Device_(v2).icd",
		`a<b>c:d"e/f\g|h?i*j`:     "a_b_c_d_e_f_g_h_i_j",
		"  spaced out  ":          "spaced_out",
		"___":                     "unknown",
		"":                        "unknown",
		strings.Repeat("x", 120):  strings.Repeat("x", 50),
		"trail_" + strings.Repeat("y", 49): "trail_" + strings.Repeat("y", 44),
	}
	for in, exp := range ts {
		assert.Equal(t, exp, SanitizeStorageName(in), "sanitizing %q", in)
	}
}

func TestSanitizeStorageNameProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		b := make([]byte, rnd.Intn(80))
		for j := range b {
			b[j] = byte(rnd.Intn(128))
		}
		s := SanitizeStorageName(string(b))

		assert.NotEmpty(t, s)
		assert.LessOrEqual(t, len(s), 50)
		assert.NotContains(t, s, string(filepath.Separator))
		for _, c := range `<>:"/\|?*` {
			assert.NotContains(t, s, string(c), "input %q", string(b))
		}
		assert.False(t, strings.HasPrefix(s, "_"))
		assert.False(t, strings.HasSuffix(s, "_"))
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	p, err := ExpandHome("~/catalog")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "catalog"), p)

	p, err = ExpandHome("/var/lib/catalog")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/catalog", p)
}

func TestToTrimmedLower(t *testing.T) {
	assert.Equal(t, "device.icd", ToTrimmedLower("  Device.ICD "))
}

func ExampleSanitizeStorageName() {
	fmt.Println(SanitizeStorageName("My Device (v2).icd"))
	// Output: My_Device_(v2).icd
}
