// Package cli implements scenicctl, a command-line front end over the auth
// store and booking workflow. The session persists between invocations
// through the configured storage backend.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cx-tal-miterani/scenic-airways/internal/auth"
	"github.com/cx-tal-miterani/scenic-airways/internal/booking"
	"github.com/cx-tal-miterani/scenic-airways/internal/catalog"
	"github.com/spf13/cobra"
)

// Session is what each command works against
type Session struct {
	Auth     *auth.Store
	Workflow *booking.Workflow
	Catalog  catalog.Source
}

// Opener builds a Session and returns a function that releases it
type Opener func(ctx context.Context) (*Session, func(), error)

type state struct {
	open       Opener
	session    *Session
	close      func()
	jsonOutput bool
}

// NewRootCommand builds scenicctl. The session is opened and restored
// before any subcommand runs; Execute releases it afterwards.
func NewRootCommand(open Opener) *cobra.Command {
	root, _ := newRoot(open)
	return root
}

func newRoot(open Opener) (*cobra.Command, *state) {
	st := &state{open: open}

	root := &cobra.Command{
		Use:   "scenicctl",
		Short: "Search and book Scenic Airways flights",
		Long: `scenicctl searches flights, books seats and shows booking history.

Environment Variables:
  STORAGE_BACKEND  Where the session is kept (default: file)
  STORAGE_PATH     Session file for the file backend (default: .scenic/session.json)
  CATALOG_BACKEND  memory or postgres (default: memory)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := st.open(cmd.Context())
			if err != nil {
				return err
			}
			st.session, st.close = s, closeFn
			if _, err := s.Auth.Restore(cmd.Context()); err != nil {
				return fmt.Errorf("failed to restore session: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&st.jsonOutput, "json", false, "Output JSON instead of human-readable text")

	root.AddCommand(
		newLoginCommand(st),
		newRegisterCommand(st),
		newLogoutCommand(st),
		newWhoamiCommand(st),
		newSearchCommand(st),
		newBookCommand(st),
		newBookingsCommand(st),
	)
	return root, st
}

// Execute runs scenicctl with ctx and releases the session when done
func Execute(ctx context.Context, open Opener) error {
	root, st := newRoot(open)
	defer st.release()
	return root.ExecuteContext(ctx)
}

func (st *state) release() {
	if st.close != nil {
		st.close()
		st.close = nil
	}
}

func (st *state) printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
