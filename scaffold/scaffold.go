// Package scaffold generates a new blogshell consumer project from embedded
// templates.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

const root = "templates"

// Data holds the template variables passed to every scaffold template.
type Data struct {
	ProjectName string
	ModuleName  string
	SiteName    string
}

// Generate renders every template into dir, which must not exist yet.
// created, when non-nil, is called with the path of each written file.
func Generate(dir string, data Data, created func(path string)) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}
	return fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out := outputPath(dir, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}
		if err := write(path, out, data); err != nil {
			return err
		}
		if created != nil {
			created(out)
		}
		return nil
	})
}

// outputPath maps a template path to its destination. "dotenv" becomes
// ".env.example" so the embedded tree carries no dotfiles.
func outputPath(dir, rel string) string {
	out := strings.TrimSuffix(filepath.Join(dir, rel), ".tmpl")
	if filepath.Base(out) == "dotenv" {
		out = filepath.Join(filepath.Dir(out), ".env.example")
	}
	return out
}

func write(src, dst string, data Data) error {
	content, err := Templates.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	tmpl, err := template.New(filepath.Base(src)).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute template %s: %w", src, err)
	}
	return nil
}
