package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultContent_KnownExtensions(t *testing.T) {
	p := NewDefaultProvider()

	assert.Contains(t, p.DefaultContent("index.css"), "box-sizing")
	assert.Contains(t, p.DefaultContent("index.html"), "<!DOCTYPE html>")
	assert.Equal(t, "{}\n", p.DefaultContent("data.json"))
	assert.Contains(t, p.DefaultContent("app.js"), "export {}")
	assert.Contains(t, p.DefaultContent("Button.jsx"), "export default function Button")
	assert.Contains(t, p.DefaultContent("nav-bar.tsx"), "NavBar")
	assert.Contains(t, p.DefaultContent("setup.sh"), "#!/usr/bin/env bash")
}

func TestDefaultContent_BasenameKeywords(t *testing.T) {
	p := NewDefaultProvider()

	assert.True(t, strings.HasPrefix(p.DefaultContent("README.md"), "# Project"))
	assert.Contains(t, p.DefaultContent(".gitignore"), "node_modules/")
	assert.Contains(t, p.DefaultContent(".env.local"), "Environment")
}

func TestDefaultContent_GoIsFormatted(t *testing.T) {
	p := NewDefaultProvider()
	got := p.DefaultContent("server.go")
	assert.Equal(t, "package server\n", got)
}

func TestDefaultContent_UnknownExtensionIsEmpty(t *testing.T) {
	p := NewDefaultProvider()
	assert.Equal(t, "", p.DefaultContent("photo.png"))
	assert.Equal(t, "", p.DefaultContent("data.bin"))
}

func TestDefaultContent_Pure(t *testing.T) {
	p := NewDefaultProvider()
	first := p.DefaultContent("app.js")
	assert.Equal(t, first, p.DefaultContent("app.js"))
}

func TestDefaultContent_PathPrefixIgnored(t *testing.T) {
	p := NewDefaultProvider()
	assert.Equal(t, p.DefaultContent("style.css"), p.DefaultContent("src/styles/style.css"))
}
