// Package script authors world graphs from sandboxed Lua files. A Source is a
// directory of .lua scripts; building it runs the scripts in a fresh VM and
// hands back a live world graph whose behavior closures call back into that
// VM. Re-running the same source yields the identical id sequence, so a built
// graph pairs cleanly against a loaded save.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/wayfarer/world"
)

// Source is a validated script directory.
type Source struct {
	dir   string
	files []string
}

// Load discovers the .lua files under dir and runs one trial build so that
// authoring errors surface here rather than mid-session.
func Load(dir string) (*Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading script directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sortScriptFiles(files)

	src := &Source{dir: dir, files: files}
	if _, err := src.Build(); err != nil {
		return nil, err
	}
	return src, nil
}

// Build runs the scripts in a fresh sandboxed VM and returns the authored
// graph. The VM stays alive behind the graph's behavior closures.
func (s *Source) Build() (*world.Game, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range s.files {
		if err := L.DoFile(filepath.Join(s.dir, f)); err != nil {
			L.Close()
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	g, err := compile(L, coll)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("compiling %s: %w", s.dir, err)
	}
	return g, nil
}

// Factory adapts the source to the engine's world constructor. Load already
// proved the scripts build, so a later failure means the files changed on
// disk underneath a running session.
func (s *Source) Factory() func() *world.Game {
	return func() *world.Game {
		g, err := s.Build()
		if err != nil {
			panic(fmt.Sprintf("script: rebuilding %s: %v", s.dir, err))
		}
		return g
	}
}

// sortScriptFiles orders game.lua first, the rest alphabetically, so every
// build executes the files in the same order.
func sortScriptFiles(files []string) {
	sort.Slice(files, func(i, j int) bool {
		if files[i] == "game.lua" {
			return true
		}
		if files[j] == "game.lua" {
			return false
		}
		return files[i] < files[j]
	})
}

// openSafeLibs opens only the safe subset of the Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox strips the globals that reach outside the VM.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
