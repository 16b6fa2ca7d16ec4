package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/blogshell/markdown"
)

var renderBlocks bool

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a markdown file to HTML",
	Long:  `Render reads markdown from file, or from stdin when no file is given, and writes HTML to stdout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			src []byte
			err error
		)
		if len(args) == 1 {
			src, err = os.ReadFile(args[0])
		} else {
			src, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !renderBlocks {
			if err := markdown.Render(out, markdown.Parse(string(src))); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out)
			return err
		}
		for b := range markdown.Parse(string(src)) {
			fmt.Fprintf(out, "%-10s %s\n", b.Kind, describe(b))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderBlocks, "blocks", false, "list parsed blocks instead of HTML")
}

func describe(b markdown.Block) string {
	switch b.Kind {
	case markdown.Heading:
		return fmt.Sprintf("h%d #%s %q", b.Level, b.ID, b.Text)
	case markdown.CodeBlock:
		return fmt.Sprintf("%s (%d bytes)", b.Language, len(b.Code))
	case markdown.Blockquote:
		return fmt.Sprintf("%d lines", len(b.Lines))
	case markdown.ListItem:
		if b.Ordered {
			return "ordered " + b.HTML
		}
		return b.HTML
	}
	return b.HTML
}
