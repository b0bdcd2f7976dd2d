package formula

import (
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// injectOnTable installs the read-only `on` global. Each helper takes an
// artifact table, stamps the OS predicate on it and returns it:
//
//	on.linux { url = "...", sha256 = "..." }
//	on.default { url = "...", sha256 = "..." }
func injectOnTable(L *lua.LState) {
	on := L.NewTable()

	L.SetField(on, string(platform.OSLinux), osHelper(L, platform.OSLinux))
	L.SetField(on, string(platform.OSDarwin), osHelper(L, platform.OSDarwin))
	L.SetField(on, "macos", osHelper(L, platform.OSDarwin))
	L.SetField(on, string(platform.OSOther), osHelper(L, platform.OSOther))
	L.SetField(on, "default", L.NewFunction(func(L *lua.LState) int {
		t := L.CheckTable(1)
		if t.RawGetString(fieldOS) != lua.LNil {
			L.ArgError(1, "on.default artifact must not declare os")
		}
		L.Push(t)
		return 1
	}))

	L.SetGlobal(luaGlobalOn, makeReadOnly(L, on))
}

func osHelper(L *lua.LState, family platform.OSFamily) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		t := L.CheckTable(1)
		if existing := t.RawGetString(fieldOS); existing != lua.LNil && existing.String() != string(family) {
			L.ArgError(1, "artifact already declares os = "+existing.String())
		}
		t.RawSetString(fieldOS, lua.LString(family))
		L.Push(t)
		return 1
	})
}

// makeReadOnly returns a proxy that reads through to table and rejects writes.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("'on' table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)
	return proxy
}
