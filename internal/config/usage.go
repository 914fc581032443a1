package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/fibbench/internal/ui"
)

func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// The theme is not initialized yet when flags fail to parse.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()
		fmt.Fprintf(out, "\n%sfibbench%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Compute and compare Fibonacci algorithms through a single background worker.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set with %sNAME (for example %sN=500, %sALGO=matrix).\n\n", EnvPrefix, EnvPrefix, EnvPrefix)
	}
}
