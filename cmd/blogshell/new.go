package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/blogshell"
	"github.com/eringen/blogshell/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <module-path>",
	Short: "Create a new blogshell project",
	Example: `  blogshell new myblog
  blogshell new github.com/user/myblog`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(args[0])
	},
}

func runNew(name string) error {
	// The project directory is the last path segment.
	dirName := name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		dirName = name[idx+1:]
	}

	data := scaffold.Data{
		ProjectName: dirName,
		ModuleName:  name,
		SiteName:    blogshell.HumanizeSlug(dirName),
	}

	fmt.Printf("Creating new blogshell project: %s\n\n", dirName)
	err := scaffold.Generate(dirName, data, func(path string) {
		fmt.Printf("  created %s\n", path)
	})
	if err != nil {
		return err
	}

	fmt.Println("\nResolving Go dependencies...")
	tidy := exec.Command("go", "mod", "tidy")
	tidy.Dir = dirName
	tidy.Stdout = os.Stdout
	tidy.Stderr = os.Stderr
	if err := tidy.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "\nWarning: go mod tidy failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'cd %s && go mod tidy' manually after fixing.\n", dirName)
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", dirName)
	fmt.Println("  go run .")
	fmt.Println()
	fmt.Println("Edit brand.yaml to rebrand the site and add posts under content/posts/.")
	return nil
}
