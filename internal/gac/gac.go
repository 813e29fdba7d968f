// Package gac answers where a binary reference's file lives relative to the
// platform's shared-assembly-cache roots and framework reference-assembly
// directory. Containment checks are syntactic prefix tests on cleaned paths.
package gac

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Authority knows the shared-assembly-cache roots and the framework
// reference-assembly directory for the current platform. Zero values fall
// back to platform defaults at construction.
type Authority struct {
	cacheRoots   []string
	frameworkDir string
}

// New creates an Authority. Empty cacheRoots or frameworkDir select platform
// defaults.
func New(cacheRoots []string, frameworkDir string) *Authority {
	if len(cacheRoots) == 0 {
		cacheRoots = defaultCacheRoots()
	}
	if frameworkDir == "" {
		frameworkDir = defaultFrameworkDir()
	}
	cleaned := make([]string, 0, len(cacheRoots))
	for _, r := range cacheRoots {
		if r != "" {
			cleaned = append(cleaned, filepath.Clean(r))
		}
	}
	return &Authority{cacheRoots: cleaned, frameworkDir: filepath.Clean(frameworkDir)}
}

// CacheRoots returns the shared-assembly-cache roots in effect.
func (a *Authority) CacheRoots() []string { return a.cacheRoots }

// FrameworkDir returns the framework reference-assembly directory in effect.
func (a *Authority) FrameworkDir() string { return a.frameworkDir }

// InAssemblyCache reports whether the file at path resides under one of the
// shared-assembly-cache roots.
func (a *Authority) InAssemblyCache(path string) bool {
	for _, root := range a.cacheRoots {
		if underDir(path, root) {
			return true
		}
	}
	return false
}

// InFrameworkDir reports whether the file at path resides under the
// framework reference-assembly directory.
func (a *Authority) InFrameworkDir(path string) bool {
	return underDir(path, a.frameworkDir)
}

func underDir(path, dir string) bool {
	if dir == "" || dir == "." {
		return false
	}
	return strings.HasPrefix(filepath.Clean(path), dir+string(filepath.Separator))
}

func defaultCacheRoots() []string {
	if runtime.GOOS == "windows" {
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		return []string{
			filepath.Join(windir, "Microsoft.NET", "assembly"),
			filepath.Join(windir, "assembly"),
		}
	}
	return []string{"/usr/lib/mono/gac"}
}

func defaultFrameworkDir() string {
	if runtime.GOOS == "windows" {
		pf := os.Getenv("ProgramFiles(x86)")
		if pf == "" {
			pf = `C:\Program Files (x86)`
		}
		return filepath.Join(pf, "Reference Assemblies")
	}
	return "/usr/lib/mono/4.5-api"
}
