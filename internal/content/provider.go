package content

import (
	"fmt"
	"path"
	"strings"

	"mvdan.cc/gofumpt/format"
)

// Provider supplies boilerplate for a file that is being created or
// repopulated. Implementations must be pure functions of the file name and
// may return "" for unknown extensions; the executor then writes an empty
// file.
type Provider interface {
	DefaultContent(fileName string) string
}

// DefaultProvider is the built-in Provider: boilerplate keyed by extension
// with a few basename-keyword overrides.
type DefaultProvider struct{}

func NewDefaultProvider() DefaultProvider { return DefaultProvider{} }

const defaultStylesheet = `* {
  margin: 0;
  padding: 0;
  box-sizing: border-box;
}

body {
  font-family: system-ui, -apple-system, sans-serif;
  line-height: 1.5;
}
`

const defaultHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>App</title>
</head>
<body>
  <div id="root"></div>
</body>
</html>
`

// DefaultContent returns boilerplate for fileName, or "" when the extension
// is unknown. Pure and side-effect free.
func (DefaultProvider) DefaultContent(fileName string) string {
	base := strings.ToLower(path.Base(fileName))
	stem := strings.TrimSuffix(base, path.Ext(base))

	// Basename keywords take precedence over plain extension mapping.
	switch {
	case base == "readme.md":
		return "# Project\n\nDescribe the project here.\n"
	case base == ".gitignore":
		return "node_modules/\ndist/\n.env\n"
	case strings.HasPrefix(base, ".env"):
		return "# Environment variables\n"
	case stem == "index" && strings.HasSuffix(base, ".html"):
		return defaultHTML
	}

	switch path.Ext(base) {
	case ".js", ".mjs":
		return jsModule(stem)
	case ".jsx", ".tsx":
		return reactComponent(stem)
	case ".ts":
		return "export {};\n"
	case ".css", ".scss":
		return defaultStylesheet
	case ".html":
		return defaultHTML
	case ".json":
		return "{}\n"
	case ".md":
		return fmt.Sprintf("# %s\n", titleCase(stem))
	case ".go":
		return goStub(stem)
	case ".py":
		return fmt.Sprintf("\"\"\"%s module.\"\"\"\n", stem)
	case ".yaml", ".yml":
		return "# " + base + "\n"
	case ".sh":
		return "#!/usr/bin/env bash\nset -euo pipefail\n"
	default:
		return ""
	}
}

func jsModule(stem string) string {
	return fmt.Sprintf("// %s\nexport {};\n", stem)
}

func reactComponent(stem string) string {
	name := componentName(stem)
	return fmt.Sprintf(`export default function %s() {
  return null;
}
`, name)
}

// goStub returns a minimal Go file, formatted in-memory with gofumpt. When
// formatting fails the raw template is returned instead of nothing.
func goStub(stem string) string {
	pkg := strings.ToLower(strings.Map(keepAlnum, stem))
	if pkg == "" || pkg == "main" {
		pkg = "main"
	}
	src := fmt.Sprintf("package %s\n", pkg)
	formatted, err := format.Source([]byte(src), format.Options{})
	if err != nil {
		return src
	}
	return string(formatted)
}

func keepAlnum(r rune) rune {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return r
	}
	return -1
}

func componentName(stem string) string {
	parts := strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' || r == '.' })
	if len(parts) == 0 {
		return "Component"
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titleCase(p))
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
