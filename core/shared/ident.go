package shared

// HostID maps a foreign attribute name onto the Go identifier it is declared
// under. A remap wins and is used verbatim. Otherwise the name is exported by
// upper-casing its first rune, unless preserveCase is set. The result is not
// checked for legality; use remaps to fix it.
func HostID(name string, remaps map[string]string, preserveCase bool) string {
	if id, ok := remaps[name]; ok {
		return id
	}
	if preserveCase {
		return name
	}
	return ToTitle(name)
}

// DefaultExclusions returns Go's short predeclared identifiers a generated
// package may redeclare. The slice is a fresh copy.
func DefaultExclusions() []string {
	return []string{
		"any", "append", "cap", "clear", "close", "complex", "copy",
		"delete", "error", "imag", "len", "make", "max", "min", "new",
		"panic", "print", "println", "real", "recover",
	}
}
