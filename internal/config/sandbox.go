package config

import (
	lua "github.com/yuin/gopher-lua"
)

// blockedGlobals are removed from every config VM. Configs may compute
// values with string, table and math, but cannot run commands, touch files,
// load code or reach past the read-only platform table.
var blockedGlobals = []string{
	// system and filesystem access
	"os",
	"io",
	"debug",

	// code loading
	"require",
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",

	// raw table and metatable access
	"rawset",
	"setmetatable",
	"getfenv",
	"setfenv",

	"collectgarbage",
}

// sandboxLuaVM removes blockedGlobals from L.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}

// newSandboxedVM creates a new Lua VM with sandboxing applied.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
