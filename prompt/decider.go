package prompt

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Console asks the operator on a terminal.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole creates a Console reading answers from in and writing questions to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) RedoLinks(path string) bool {
	return c.yesNo("Delete and update the previous txt file? 'Y/N'")
}

// ChooseFilename offers to rename the link file, asking again until the name
// is valid. The directory of current is kept.
func (c *Console) ChooseFilename(current string) string {
	fmt.Fprintf(c.out, "\nDefault file name: %s\n", current)
	if !c.yesNo("Change file name: 'Y/N'") {
		return current
	}

	for {
		answer, ok := c.ask("Please enter filename:")
		if !ok {
			return current
		}
		name, err := ValidateFilename(answer, ".txt")
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		name = filepath.Join(filepath.Dir(current), name)
		fmt.Fprintf(c.out, "filename updated to: %s\n", name)
		return name
	}
}

func (c *Console) ConfirmRestart(resumeIndex int) bool {
	fmt.Fprintf(c.out, "Information extraction will continue from link number: %d\n\n", resumeIndex)
	return c.yesNo("Would you like to DELETE saved CSV data and RESTART the cafe information extraction? 'Y/N'")
}

func (c *Console) ConfirmRedoAll(total int) bool {
	fmt.Fprintf(c.out, "All %d cafes already extracted.\n", total)
	return c.yesNo("Would you like to delete and restart the cafe information extraction? 'Y/N'")
}

// AskVerbose asks whether every extracted field should be printed.
func (c *Console) AskVerbose() bool {
	return c.yesNo("Display individual link extracted information?: 'Y/N'")
}

func (c *Console) yesNo(question string) bool {
	answer, ok := c.ask(question)
	return ok && strings.EqualFold(answer, "y")
}

// ask returns false once input is exhausted.
func (c *Console) ask(question string) (string, bool) {
	fmt.Fprintln(c.out, question)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// Fixed gives the same answer to every yes/no question and keeps filenames.
// It backs the non-interactive --yes / --no flags.
type Fixed struct {
	Answer bool
}

func (f Fixed) RedoLinks(string) bool { return f.Answer }
func (f Fixed) ChooseFilename(current string) string { return current }
func (f Fixed) ConfirmRestart(int) bool { return f.Answer }
func (f Fixed) ConfirmRedoAll(int) bool { return f.Answer }
