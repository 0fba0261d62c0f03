package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestEnhanceChanceBands(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		level int
		want  float64
	}{
		{0, 1.00},
		{1, 0.95},
		{9, 0.95},
		{10, 0.90},
		{19, 0.90},
		{20, 0.70},
		{29, 0.70},
		{30, 0.50},
		{39, 0.50},
		{40, 0.40},
		{47, 0.40},
		{48, 0.30},
		{50, 0.30},
	}
	for _, tc := range cases {
		got := e.EnhanceChance(EnhanceContext{Level: tc.level})
		assert.InDelta(t, tc.want, got, 1e-9, "level %d", tc.level)
	}
}

func TestEnhanceChanceBonusAdded(t *testing.T) {
	e := newTestEngine(t)
	got := e.EnhanceChance(EnhanceContext{Level: 10, BonusRate: 0.05})
	assert.InDelta(t, 0.95, got, 1e-9)
}

func TestEnhanceChanceClampedToOne(t *testing.T) {
	e := newTestEngine(t)
	got := e.EnhanceChance(EnhanceContext{Level: 5, BonusRate: 0.5})
	assert.Equal(t, 1.0, got)
}

func TestScriptsDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "override.lua", `
function calc_enhance_chance(ctx)
  return { chance = 0.42 }
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	got := e.EnhanceChance(EnhanceContext{Level: 0})
	assert.InDelta(t, 0.42, got, 1e-9)
}

func TestMissingScriptsDirIgnored(t *testing.T) {
	e, err := NewEngine("does/not/exist", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.InDelta(t, 1.0, e.EnhanceChance(EnhanceContext{Level: 0}), 1e-9)
}
