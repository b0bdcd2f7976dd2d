package formula

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM configures a Lua VM to run in a restricted sandbox.
// Formulas are declarative: they cannot execute commands, touch the
// filesystem, or load other code. string, table and math stay available.
func sandboxLuaVM(L *lua.LState) {
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)

	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("module", lua.LNil)
	L.SetGlobal("package", lua.LNil)

	L.SetGlobal("debug", lua.LNil)
	L.SetGlobal("collectgarbage", lua.LNil)
}

// newSandboxedVM creates a new Lua VM with sandboxing applied.
func newSandboxedVM() *lua.LState {
	L := lua.NewState(lua.Options{
		CallStackSize: 256,
		RegistrySize:  1024 * 8,
	})
	sandboxLuaVM(L)
	return L
}
