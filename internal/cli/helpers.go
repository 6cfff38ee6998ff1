package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/faizmokh/gideon/internal/config"
	"github.com/faizmokh/gideon/internal/journal"
	"github.com/faizmokh/gideon/internal/render"
)

const renderWidth = 80

func resolveDate(dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		return journal.Today(), nil
	}
	return journal.ParseKey(dateFlag)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newColor returns a color that stays plain when w is not a terminal.
func newColor(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !isTerminal(w) {
		c.DisableColor()
	}
	return c
}

func renderStyle(w io.Writer, theme string) render.Style {
	if !isTerminal(w) {
		return render.StylePlain
	}
	if theme == config.ThemeDark {
		return render.StyleDark
	}
	return render.StyleLight
}

func printDateHeader(w io.Writer, date time.Time) {
	bold := newColor(w, color.Bold)
	fmt.Fprintf(w, "%s  %s\n\n", bold.Sprint(journal.Key(date)), date.Format("Monday")+", "+journal.HumanDate(date))
}

func printAbsent(w io.Writer, date time.Time) {
	faint := newColor(w, color.Faint)
	fmt.Fprintln(w, faint.Sprint(journal.AbsentMessage(date)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, journal.AbsentGlyph)
}

// displayEntry loads the entry for date and prints it.
func (a *app) displayEntry(ctx context.Context, cmd *cobra.Command, date time.Time, raw bool) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	log, err := a.logger(false)
	if err != nil {
		return err
	}
	defer log.Close()

	src, closeSource, err := a.openSource(log)
	if err != nil {
		return err
	}
	defer closeSource()

	entry, found, err := journal.Lookup(ctx, src, date)
	if err != nil {
		log.Errorw("fetch_entry_failed", "date", journal.Key(date), "err", err)
		return err
	}

	out := cmd.OutOrStdout()
	if raw {
		if found {
			fmt.Fprint(out, entry.Content)
		}
		return nil
	}

	printDateHeader(out, date)
	if !found {
		printAbsent(out, date)
		return nil
	}

	rendered, err := a.renderer.Markdown(entry.Content, renderStyle(out, cfg.Theme), renderWidth)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rendered)
	return nil
}
