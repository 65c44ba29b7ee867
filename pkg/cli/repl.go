package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/amalgam-lang/amalgam/internal/config"
	"github.com/amalgam-lang/amalgam/internal/engine"
	"github.com/amalgam-lang/amalgam/internal/parser"
)

// repl runs the interactive session. A line that parses as an incomplete
// form (open paren, open string) keeps the reader in continuation mode
// until the form closes or the user abandons it with Ctrl-C.
func repl(eng *engine.Engine) int {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: bad config, using defaults: %s\n", err)
		cfg = config.Default()
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := cfg.HistoryPath()
	if data, err := os.ReadFile(historyPath); err == nil {
		entries := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(entries) > cfg.HistoryLimit {
			entries = entries[len(entries)-cfg.HistoryLimit:]
		}
		line.ReadHistory(strings.NewReader(strings.Join(entries, "\n")))
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("Amalgam %s. Type (exit) to leave.\n", Version)

	var pending strings.Builder
	for {
		prompt := cfg.Prompt
		if pending.Len() > 0 {
			prompt = cfg.PromptCont
		}

		input, err := line.Prompt(prompt)
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			pending.Reset()
			continue
		case io.EOF:
			fmt.Println()
			return 0
		default:
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}

		if pending.Len() == 0 && strings.TrimSpace(input) == "" {
			continue
		}
		pending.WriteString(input)
		pending.WriteString("\n")

		src := pending.String()
		if _, perr := parser.Parse(src); parser.IsIncomplete(perr) {
			continue
		}
		pending.Reset()
		line.AppendHistory(strings.TrimSpace(strings.ReplaceAll(src, "\n", " ")))

		result, err := eng.ParseAndRun(src, "repl")
		if err != nil {
			fmt.Fprint(os.Stderr, err.Error())
			continue
		}
		if result != nil {
			fmt.Println(result)
		}
	}
}
