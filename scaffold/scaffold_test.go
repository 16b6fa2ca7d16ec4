package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "myblog")
	var created []string
	data := Data{ProjectName: "myblog", ModuleName: "github.com/acme/myblog", SiteName: "Myblog"}
	if err := Generate(dir, data, func(p string) { created = append(created, p) }); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, rel := range []string{
		"go.mod",
		"main.go",
		"brand.yaml",
		".env.example",
		filepath.Join("content", "posts", "welcome.md"),
		filepath.Join("public", "styles.css"),
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if len(created) != 6 {
		t.Errorf("created %d files, want 6: %v", len(created), created)
	}

	gomod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(gomod), "module github.com/acme/myblog\n") {
		t.Errorf("go.mod = %q", gomod)
	}
	for _, leftover := range []string{"{{", ".tmpl"} {
		for _, p := range created {
			if strings.Contains(p, leftover) {
				t.Errorf("output path %s contains %q", p, leftover)
			}
		}
	}
}

func TestGenerateExistingDir(t *testing.T) {
	if err := Generate(t.TempDir(), Data{}, nil); err == nil {
		t.Error("Generate into an existing directory succeeded")
	}
}

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		"main.go.tmpl": filepath.Join("out", "main.go"),
		"dotenv.tmpl":  filepath.Join("out", ".env.example"),
		filepath.Join("content", "posts", "welcome.md.tmpl"): filepath.Join("out", "content", "posts", "welcome.md"),
	}
	for in, want := range tests {
		if got := outputPath("out", in); got != want {
			t.Errorf("outputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
