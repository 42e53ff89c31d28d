package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/hugo/focustrack/internal/category"
)

// newCategoryPrompter returns the resolution strategy for unmapped apps:
// a huh input form when stdin is a terminal, a plain line read otherwise
// (pipes, tests, editors driving the CLI).
func newCategoryPrompter(in *os.File, out io.Writer) category.PromptFunc {
	interactive := isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())
	reader := bufio.NewReader(in)

	return func(app string, existing []string) (string, error) {
		if interactive {
			return promptForm(app, existing)
		}
		return promptPlain(reader, out, app, existing)
	}
}

func promptForm(app string, existing []string) (string, error) {
	var answer string

	input := huh.NewInput().
		Title(fmt.Sprintf("Category for %q", app)).
		Value(&answer)
	if len(existing) > 0 {
		input = input.Description("Existing: " + strings.Join(existing, ", "))
	}

	form := huh.NewForm(huh.NewGroup(input)).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func promptPlain(reader *bufio.Reader, out io.Writer, app string, existing []string) (string, error) {
	if len(existing) > 0 {
		fmt.Fprintf(out, "Existing categories: %s\n", strings.Join(existing, ", "))
	}
	fmt.Fprintf(out, "Enter category for %q: ", app)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
