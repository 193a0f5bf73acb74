package policy

import (
	"fmt"
	"sort"
	"strings"
)

// Convention maps a set of top-level folder names onto a canonical parent
// directory for one framework layout. The adjuster applies it only when the
// canonical parent already exists on disk — conventions are followed, never
// invented.
type Convention struct {
	// CanonicalParent is the project-relative directory the matched folders
	// belong under, e.g. "src".
	CanonicalParent string

	// Folders are the top-level folder names the convention claims.
	Folders []string
}

// supportedFrameworks is the closed set of framework tags the adjuster
// understands. A context carrying any other tag gets no remapping.
var supportedFrameworks = map[string]Convention{
	"react": {
		CanonicalParent: "src",
		Folders: []string{
			"components", "hooks", "utils", "pages", "styles",
			"assets", "context", "services", "store", "types",
		},
	},
	"vue": {
		CanonicalParent: "src",
		Folders: []string{
			"components", "composables", "views", "router",
			"store", "assets", "utils",
		},
	},
	"nextjs": {
		CanonicalParent: "src",
		Folders: []string{
			"components", "hooks", "utils", "styles", "lib", "types",
		},
	},
	"node-layered": {
		CanonicalParent: "src",
		Folders: []string{
			"controllers", "models", "routes", "middleware",
			"services", "utils",
		},
	},
}

// ConventionFor returns the layout convention for a framework tag, if the
// tag is in the supported set.
func ConventionFor(framework string) (Convention, bool) {
	c, ok := supportedFrameworks[framework]
	return c, ok
}

// SupportedFrameworks returns the closed tag set, sorted, for validation
// and help output.
func SupportedFrameworks() []string {
	tags := make([]string, 0, len(supportedFrameworks))
	for tag := range supportedFrameworks {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ValidateTables sanity-checks the convention tables once at startup: every
// convention needs a canonical parent and at least one folder, and no folder
// may be claimed from the sensitive set.
func ValidateTables() error {
	for tag, c := range supportedFrameworks {
		if c.CanonicalParent == "" {
			return fmt.Errorf("framework %q: empty canonical parent", tag)
		}
		if len(c.Folders) == 0 {
			return fmt.Errorf("framework %q: no folders claimed", tag)
		}
		for _, f := range c.Folders {
			if IsSensitiveFolder(f) {
				return fmt.Errorf("framework %q claims sensitive folder %q", tag, f)
			}
		}
	}
	return nil
}

// AddCriticalFiles extends the universal critical set at runtime, used by
// the config layer for user-supplied names.
func AddCriticalFiles(names []string) {
	for _, n := range names {
		if n != "" {
			universalCritical[strings.ToLower(n)] = true
		}
	}
}

// AddSensitiveFolders extends the sensitive folder set at runtime.
func AddSensitiveFolders(names []string) {
	for _, n := range names {
		if n != "" {
			sensitiveFolders[strings.ToLower(n)] = true
		}
	}
}
