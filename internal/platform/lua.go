package platform

import (
	lua "github.com/yuin/gopher-lua"
)

// InjectPlatformTable exposes p to Lua as the global "platform". The table
// is read-only; configs use it to pick per-OS values such as the browser
// command. It must run before the config chunk is executed.
func InjectPlatformTable(L *lua.LState, p Profile) error {
	fields := L.NewTable()

	strs := map[string]string{
		"kind":        string(p.Kind),
		"arch":        p.Arch,
		"cache_dir":   p.CacheDir,
		"archive":     p.Archive,
		"driver_name": p.DriverName(),
	}
	for name, value := range strs {
		fields.RawSetString(name, lua.LString(value))
	}

	flags := map[string]bool{
		"is_linux":   p.IsLinux(),
		"is_macos":   p.IsMacOS(),
		"is_windows": p.IsWindows(),
		"is_amd64":   p.IsAMD64(),
		"is_arm64":   p.IsARM64(),
	}
	for name, value := range flags {
		fields.RawSetString(name, lua.LBool(value))
	}

	argv := L.CreateTable(len(p.VersionCommand), 0)
	for _, arg := range p.VersionCommand {
		argv.Append(lua.LString(arg))
	}
	fields.RawSetString("version_command", argv)

	// when(cond, value) yields value if cond holds, else nil.
	fields.RawSetString("when", L.NewFunction(luaWhen))

	L.SetGlobal("platform", readOnlyProxy(L, fields))
	return nil
}

func luaWhen(L *lua.LState) int {
	if L.CheckBool(1) {
		L.Push(L.Get(2))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// readOnlyProxy returns an empty table whose metatable forwards reads to
// backing and rejects writes. getmetatable on the proxy yields a marker
// string instead of the metatable.
func readOnlyProxy(L *lua.LState, backing *lua.LTable) *lua.LTable {
	meta := L.NewTable()
	meta.RawSetString("__index", backing)
	meta.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("platform is read-only")
		return 0
	}))
	meta.RawSetString("__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, meta)
	return proxy
}
