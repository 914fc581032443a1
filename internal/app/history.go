package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agbru/fibbench/internal/cli"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/history"
)

// runHistory handles --clear-history, --history and --stats, in that order.
func (a *Application) runHistory(store *history.Store, out io.Writer) int {
	if a.Config.ClearHistory {
		if err := store.Clear(); err != nil {
			fmt.Fprintln(a.ErrWriter, "Error:", apperrors.WrapError(err, "clearing %s", a.Config.HistoryFile))
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintln(out, "History cleared.")
		}
	}

	if a.Config.JSONOutput {
		return a.writeHistoryJSON(store, out)
	}
	if a.Config.ShowHistory {
		cli.DisplayHistory(store.Entries(), out)
	}
	if a.Config.ShowStats {
		if a.Config.ShowHistory {
			fmt.Fprintln(out)
		}
		cli.DisplayStats(store.Stats(), out)
	}
	return apperrors.ExitSuccess
}

func (a *Application) writeHistoryJSON(store *history.Store, out io.Writer) int {
	var v any
	switch {
	case a.Config.ShowHistory:
		v = store.Entries()
	case a.Config.ShowStats:
		v = store.Stats()
	default:
		return apperrors.ExitSuccess
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(a.ErrWriter, "Error:", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
