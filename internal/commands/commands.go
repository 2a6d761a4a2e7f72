// Package commands is the cobra command tree behind the journey
// binary. Commands stay thin: they parse input, confirm destructive
// actions, call into the domain packages, and print.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ravenerp/journey-sync/internal/config"
	"github.com/ravenerp/journey-sync/internal/erp"
	"github.com/ravenerp/journey-sync/internal/places"
	"github.com/ravenerp/journey-sync/internal/store"
)

// Env carries the wired dependencies every command shares. Out and In
// default to the process streams; tests swap them for buffers.
type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *store.Store
	API      erp.API
	Searcher *places.Searcher
	Out      io.Writer
	In       io.Reader
	Now      func() time.Time

	input *bufio.Reader
}

func (e *Env) defaults() {
	if e.Out == nil {
		e.Out = os.Stdout
	}

	if e.In == nil {
		e.In = os.Stdin
	}

	if e.Now == nil {
		e.Now = time.Now
	}

	if e.Logger == nil {
		e.Logger = slog.Default()
	}

	e.input = bufio.NewReader(e.In)
}

// New builds the root command with every subcommand attached.
func New(env *Env) *cobra.Command {
	env.defaults()

	cmd := &cobra.Command{
		Use:           "journey",
		Short:         "Plan field trips and push them to the Raven ERP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd, env)

	return cmd
}

// AddCommands attaches every subcommand to topLevel.
func AddCommands(topLevel *cobra.Command, env *Env) {
	addTrips(topLevel, env)
	addTrip(topLevel, env)
	addStop(topLevel, env)
	addSync(topLevel, env)
	addImport(topLevel, env)
	addRefresh(topLevel, env)
	addCategories(topLevel, env)
	addProfile(topLevel, env)
	addServer(topLevel, env)
	addPlaces(topLevel, env)
	addWipe(topLevel, env)
}

// confirm asks a yes/no question and returns whether the user typed
// an explicit yes. Anything else, including EOF, counts as no.
func confirm(env *Env, prompt string) bool {
	fmt.Fprintf(env.Out, "%s [y/N]: ", prompt)

	line, err := env.input.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si", "sí":
		return true
	default:
		return false
	}
}
