package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"unidiff/internal/app"
	"unidiff/internal/config"
	"unidiff/internal/diffview"
	"unidiff/internal/render"
	"unidiff/internal/unified"
)

// splitDivider separates the columns of --split output.
const splitDivider = " │ "

func writeOutput(w io.Writer, o *options, cfg config.AppConfig, doc unified.Document, name string) error {
	r := colorRenderer(w, cfg.Color)
	colored := r.ColorProfile() != termenv.Ascii

	switch {
	case o.view:
		return runPager(doc, r, name, o.split)
	case o.split:
		return writeSplit(w, doc, o.width)
	case colored:
		_, err := io.WriteString(w, render.New(r, name).Render(doc))
		return err
	default:
		_, err := doc.WriteTo(w)
		return err
	}
}

// colorRenderer returns a lipgloss renderer for w honouring the color mode.
// auto keeps whatever profile termenv detects for w.
func colorRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
	}
	return r
}

func writeSplit(w io.Writer, doc unified.Document, width int) error {
	rows, err := diffview.ParseUnifiedDiff([]byte(doc.String()))
	if err != nil {
		return fmt.Errorf("parse generated diff: %w", err)
	}
	column := max(1, (width-len([]rune(splitDivider)))/2)
	oldLines, newLines := diffview.RenderSplit(rows, column, column, -1)

	var b strings.Builder
	for i := range oldLines {
		b.WriteString(strings.TrimRight(oldLines[i]+splitDivider+newLines[i], " "))
		b.WriteByte('\n')
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func runPager(doc unified.Document, r *lipgloss.Renderer, name string, split bool) error {
	patch := doc.String()
	rows, err := diffview.ParseUnifiedDiff([]byte(patch))
	if err != nil {
		return fmt.Errorf("parse generated diff: %w", err)
	}

	model := app.NewModel(app.Options{
		Title:   filepath.Base(name),
		Patch:   patch,
		Display: render.New(r, name).Render(doc),
		Rows:    rows,
		Split:   split,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}
