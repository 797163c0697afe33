package layout

import "strings"

// XacroExtension is appended to layout identifiers to name generated files.
const XacroExtension = ".xacro"

// RetargetExtension derives the xacro output name for a layout identifier:
// the file name is cut at its first '.' and XacroExtension appended. Leading
// directories are kept as written, so dots in directory names are ignored.
//
//	RetargetExtension("thrusters.yaml")      // "thrusters.xacro"
//	RetargetExtension("a.b.yaml")            // "a.xacro"
//	RetargetExtension("cfg.d/layout.yaml")   // "cfg.d/layout.xacro"
func RetargetExtension(identifier string) (string, error) {
	dir, base := splitDir(identifier)

	idx := strings.Index(base, ".")
	if idx < 0 {
		return "", &ConfigurationError{
			Kind:   KindMalformedIdentifier,
			Source: identifier,
			Detail: "identifier has no extension",
		}
	}
	if idx == 0 {
		return "", &ConfigurationError{
			Kind:   KindMalformedIdentifier,
			Source: identifier,
			Detail: "identifier has an empty file name",
		}
	}
	return dir + base[:idx] + XacroExtension, nil
}

func splitDir(path string) (string, string) {
	idx := strings.LastIndexAny(path, `/\`)
	if idx < 0 {
		return "", path
	}
	return path[:idx+1], path[idx+1:]
}
