// internal/cli/prompt.go
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter wraps the interactive prompt loop: print a label, read a line,
// re-prompt until the answer parses. Bad input is never fatal.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

func (p *Prompter) readLine() string {
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func (p *Prompter) Ask(label string) string {
	p.Printf("%s: ", label)
	return p.readLine()
}

func (p *Prompter) AskDefault(label, defaultValue string) string {
	p.Printf("%s [%s]: ", label, defaultValue)
	if answer := p.readLine(); answer != "" {
		return answer
	}
	return defaultValue
}

func (p *Prompter) AskInt(label string) int {
	for {
		answer := p.Ask(label)
		value, err := strconv.Atoi(answer)
		if err != nil {
			p.Println("Valor inválido, digite um número inteiro.")
			continue
		}
		return value
	}
}

func (p *Prompter) AskFloat(label string) float64 {
	for {
		answer := p.Ask(label)
		value, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			p.Println("Valor inválido, digite um número.")
			continue
		}
		return value
	}
}

// AskChoice re-prompts until the answer is one of the choices.
func (p *Prompter) AskChoice(label string, choices ...string) string {
	for {
		answer := strings.ToLower(p.Ask(fmt.Sprintf("%s (%s)", label, strings.Join(choices, "/"))))
		for _, choice := range choices {
			if answer == choice {
				return answer
			}
		}
		p.Printf("Opção inválida, escolha entre: %s\n", strings.Join(choices, ", "))
	}
}
