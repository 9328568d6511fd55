package rules

import lua "github.com/yuin/gopher-lua"

// openSafeLibraries opens only the Lua standard libraries a rules script
// needs. io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes the escape hatches the base library ships with.
// Rules compute a direction from a path string; nothing they do should be
// able to load code from disk or reach the host.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	// package is not opened above, but clear the load paths in case a
	// future library pulls it in.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}
}
