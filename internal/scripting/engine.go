// Package scripting wraps a gopher-lua VM holding tunable game formulas.
// Default scripts are embedded; an on-disk scripts directory, when
// configured, overrides them after the embedded defaults load.
package scripting

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/*.lua
var defaultScripts embed.FS

// Engine wraps a single Lua VM. Callers must serialize access per engine;
// every action transaction runs its formula calls synchronously.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the embedded default scripts loaded.
// scriptsDir, when non-empty, is loaded on top as an override.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	entries, err := defaultScripts.ReadDir("scripts")
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("read embedded scripts: %w", err)
	}
	for _, entry := range entries {
		src, err := defaultScripts.ReadFile("scripts/" + entry.Name())
		if err != nil {
			vm.Close()
			return nil, fmt.Errorf("read embedded %s: %w", entry.Name(), err)
		}
		if err := vm.DoString(string(src)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load embedded %s: %w", entry.Name(), err)
		}
	}

	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts dir: %w", err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory. Missing directories are skipped.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// EnhanceContext holds pre-packed data for an enhancement chance lookup.
type EnhanceContext struct {
	Level     int     // current enhancement level (0-50)
	BonusRate float64 // character's accumulated failure bonus
}

// EnhanceChance calls the Lua calc_enhance_chance function and returns the
// success probability clamped to [0, 1].
func (e *Engine) EnhanceChance(ctx EnhanceContext) float64 {
	fn := e.vm.GetGlobal("calc_enhance_chance")
	if fn == lua.LNil {
		e.log.Error("lua function calc_enhance_chance not found")
		return 0
	}

	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("bonus_rate", lua.LNumber(ctx.BonusRate))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_enhance_chance error", zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_enhance_chance returned non-table")
		return 0
	}

	chance := float64(lua.LVAsNumber(rt.RawGetString("chance")))
	if chance < 0 {
		return 0
	}
	if chance > 1 {
		return 1
	}
	return chance
}
