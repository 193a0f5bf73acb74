// Package safety holds the precondition checks that run before any mutation.
// A failed root check is the only error in the system that aborts a merge
// outright.
package safety

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// protectedExact are directories a merge must never target directly, but
// whose subdirectories are legitimate project locations: /home/dev/app and
// /opt/myapp are fine, /home and /opt themselves are not.
var protectedExact = []string{
	"/", "/var", "/opt", "/tmp", "/home", "/root", "/srv",
	"/Applications", "/Users",
	`C:\`, `C:\Users`,
}

// protectedSubtrees are system directories where nothing under them is a
// valid merge target either.
var protectedSubtrees = []string{
	"/etc", "/usr", "/bin", "/sbin", "/lib", "/boot",
	"/proc", "/sys", "/dev",
	"/System", "/Library",
	`C:\Windows`, `C:\Program Files`, `C:\Program Files (x86)`,
}

// CheckRoot validates that path is a safe merge target. It fails when the
// path resolves to a filesystem root, a well-known system directory or
// anything inside one, and when the path exists but is not a directory.
func CheckRoot(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve merge root: %w", err)
	}
	abs = filepath.Clean(abs)

	for _, p := range protectedExact {
		if samePath(abs, p) {
			return fmt.Errorf("refusing to merge into protected path %s", abs)
		}
	}
	for _, p := range protectedSubtrees {
		if insideTree(abs, p) {
			return fmt.Errorf("refusing to merge into protected path %s", abs)
		}
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return fmt.Errorf("refusing to merge into filesystem root %s", abs)
	}

	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return fmt.Errorf("merge root %s is not a directory", abs)
	}
	return nil
}

// insideTree reports whether p equals root or sits anywhere below it.
func insideTree(p, root string) bool {
	if runtime.GOOS == "windows" {
		p, root = strings.ToLower(p), strings.ToLower(root)
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// ValidateSegment checks that a node name is a single path segment: no
// separators, no "." or "..", no characters the common filesystems reject.
func ValidateSegment(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q contains a path separator", name)
	}
	if strings.ContainsAny(name, "<>:\"|?*\x00") {
		return fmt.Errorf("name %q contains illegal characters", name)
	}
	return nil
}

// Join joins root and parts and verifies the result stays inside root.
func Join(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(p))
	if err != nil {
		return "", err
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", fmt.Errorf("path %s escapes merge root", p)
	}
	return filepath.Clean(p), nil
}
