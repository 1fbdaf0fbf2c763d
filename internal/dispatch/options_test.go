package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convertly/convertly/internal/registry"
)

func fp(v float64) *float64 { return &v }

func TestNormalizeNumberOptions(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "width", Type: registry.OptionNumber, Required: true, Min: fp(1), Max: fp(100)},
		{Name: "height", Type: registry.OptionNumber, Default: 0},
	}

	opts, err := normalizeOptions("tool", specs, map[string]string{"width": "42"})
	require.Nil(t, err)
	assert.Equal(t, 42, opts.Int("width"))
	assert.Equal(t, 0, opts.Int("height"))
}

func TestNormalizeUnparseableNumberFallsBack(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "count", Type: registry.OptionNumber, Default: 5},
	}

	opts, err := normalizeOptions("tool", specs, map[string]string{"count": "banana"})
	require.Nil(t, err)
	assert.Equal(t, 5, opts.Int("count"))
}

func TestNormalizeRequiredNumberMissing(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "width", Type: registry.OptionNumber, Required: true},
	}

	_, err := normalizeOptions("tool", specs, map[string]string{})
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidOption, err.Kind)
}

func TestNormalizeNumberRangeViolation(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "size", Type: registry.OptionNumber, Default: 256, Min: fp(64), Max: fp(1024)},
	}

	_, err := normalizeOptions("tool", specs, map[string]string{"size": "4096"})
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidOption, err.Kind)
	assert.Contains(t, err.Message, "at most")

	_, err = normalizeOptions("tool", specs, map[string]string{"size": "10"})
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "at least")
}

func TestNormalizeCheckbox(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "flag", Type: registry.OptionCheckbox, Default: false},
	}

	for raw, want := range map[string]bool{
		"true": true, "false": false, "on": true, "1": true, "0": false, "TRUE": true,
	} {
		opts, err := normalizeOptions("tool", specs, map[string]string{"flag": raw})
		require.Nil(t, err, "raw %q", raw)
		assert.Equal(t, want, opts.Bool("flag"), "raw %q", raw)
	}

	// absent falls back to default
	opts, err := normalizeOptions("tool", specs, map[string]string{})
	require.Nil(t, err)
	assert.False(t, opts.Bool("flag"))
}

func TestNormalizeSelect(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "level", Type: registry.OptionSelect, Options: []string{"light", "medium", "heavy"}, Default: "medium"},
	}

	opts, err := normalizeOptions("tool", specs, map[string]string{"level": "heavy"})
	require.Nil(t, err)
	assert.Equal(t, "heavy", opts.String("level"))

	// absent selects the default branch
	opts, err = normalizeOptions("tool", specs, map[string]string{})
	require.Nil(t, err)
	assert.Equal(t, "medium", opts.String("level"))

	// a value outside the closed set is rejected
	_, err = normalizeOptions("tool", specs, map[string]string{"level": "extreme"})
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidOption, err.Kind)
}

func TestNormalizeTextRequired(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "text", Type: registry.OptionTextarea, Required: true},
	}

	_, err := normalizeOptions("tool", specs, map[string]string{"text": "   "})
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidOption, err.Kind)

	opts, err := normalizeOptions("tool", specs, map[string]string{"text": "hello"})
	require.Nil(t, err)
	assert.Equal(t, "hello", opts.String("text"))
}

func TestNormalizeDropsUndeclaredKeys(t *testing.T) {
	specs := []registry.OptionSpec{
		{Name: "known", Type: registry.OptionText},
	}

	opts, err := normalizeOptions("tool", specs, map[string]string{"known": "a", "sneaky": "b"})
	require.Nil(t, err)
	assert.True(t, opts.Has("known"))
	assert.False(t, opts.Has("sneaky"))
}
