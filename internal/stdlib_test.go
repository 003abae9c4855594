package stdlib_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/comalice/gearbox"

// TestStdlibOnlyCore checks that the transmission model itself (the root
// package and internal/primitives) imports nothing outside the standard
// library and its own module. Logging, metrics and configuration belong to
// the outer packages.
func TestStdlibOnlyCore(t *testing.T) {
	patterns := []string{
		filepath.Join("..", "*.go"),
		filepath.Join("primitives", "*.go"),
	}

	checked := 0
	for _, pattern := range patterns {
		files, err := filepath.Glob(pattern)
		if err != nil {
			t.Fatalf("Bad pattern %s: %v", pattern, err)
		}
		for _, file := range files {
			if strings.HasSuffix(file, "_test.go") {
				continue
			}
			checked++

			f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("Failed to parse %s: %v", file, err)
			}
			for _, imp := range f.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err != nil {
					t.Fatalf("Bad import in %s: %v", file, err)
				}
				if strings.HasPrefix(path, modulePath+"/") {
					continue
				}
				first, _, _ := strings.Cut(path, "/")
				if strings.Contains(first, ".") {
					t.Errorf("Non-stdlib import %q in %s", path, file)
				}
			}
		}
	}

	if checked == 0 {
		t.Fatal("No core source files found")
	}
}
