package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultLoader_Load(t *testing.T) {
	path := writeEnv(t, `# Comment
TEST_FOO=bar
TEST_BAZ="quoted value"
export TEST_EXPORTED=yes
TEST_EMPTY=
TEST_SINGLE='single'
OTHER=ignored
not a pair
`)

	l := NewLoader("TEST_")
	require.NoError(t, l.Load(path))
	assert.True(t, l.Loaded())
	assert.Equal(t, "TEST_", l.Prefix())
	assert.Equal(t, "bar", l.Get("FOO"))
	assert.Equal(t, "quoted value", l.Get("BAZ"))
	assert.Equal(t, "yes", l.Get("EXPORTED"))
	assert.Equal(t, "single", l.Get("SINGLE"))

	v, ok := l.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	assert.Equal(t, map[string]string{
		"FOO": "bar", "BAZ": "quoted value", "EXPORTED": "yes",
		"EMPTY": "", "SINGLE": "single",
	}, l.All())
}

func TestDefaultLoader_Load_FileNotFound(t *testing.T) {
	l := NewLoader("TEST_")
	err := l.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open env file")
	assert.False(t, l.Loaded())
}

func TestDefaultLoader_OSEnvTakesPrecedence(t *testing.T) {
	t.Setenv("TEST_FOO", "from-os")
	l := NewLoader("TEST_")
	require.NoError(t, l.Load(writeEnv(t, "TEST_FOO=from-file\n")))
	assert.Equal(t, "from-os", l.Get("FOO"))
}

func TestDefaultLoader_Required(t *testing.T) {
	l := NewLoader("TEST_")
	_, err := l.GetRequired("MISSING_KEY")
	assert.EqualError(t, err,
		"required environment variable TEST_MISSING_KEY is not set")

	t.Setenv("TEST_PRESENT", "here")
	v, err := l.GetRequired("PRESENT")
	require.NoError(t, err)
	assert.Equal(t, "here", v)

	assert.Equal(t, "fallback", l.GetWithDefault("MISSING_KEY", "fallback"))
	assert.Equal(t, "here", l.GetWithDefault("PRESENT", "fallback"))
}

func TestDefaultLoader_TypedGetters(t *testing.T) {
	l := NewLoader("TEST_")
	require.NoError(t, l.Load(writeEnv(t, `TEST_N=4
TEST_B=true
TEST_D=250ms
TEST_BAD=x
`)))

	n, ok, err := l.GetInt("N")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	b, ok, err := l.GetBool("B")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)

	d, ok, err := l.GetDuration("D")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, d)

	_, ok, err = l.GetInt("UNSET")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = l.GetInt("BAD")
	assert.ErrorContains(t, err, "TEST_BAD")
	_, _, err = l.GetBool("BAD")
	assert.Error(t, err)
	_, _, err = l.GetDuration("BAD")
	assert.Error(t, err)
}

func TestDefaultLoader_Set(t *testing.T) {
	l := NewLoader("TEST_SET_")
	t.Cleanup(func() { os.Unsetenv("TEST_SET_KEY") })

	require.NoError(t, l.Set("KEY", "value"))
	assert.Equal(t, "value", os.Getenv("TEST_SET_KEY"))
	assert.Equal(t, "value", l.Get("KEY"))
}

func TestDefaultLoader_ImplementsInterface(t *testing.T) {
	var _ Loader = NewLoader("")
}
