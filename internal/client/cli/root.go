package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt prefix: the signed-in email and the
// connectivity mode, e.g. "(jane@example.com online)".
func (a *App) getStatus() string {
	s := ""
	if st := a.session.State(); st.IsAuthenticated && st.User != nil {
		s = st.User.Email + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the stored session, starts the connectivity watcher and
// runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to gophfood (type 'help' for commands)")

	a.session.Start(ctx)
	if st := a.session.State(); st.IsAuthenticated {
		if st.User != nil && st.User.Email != "" {
			fmt.Fprintf(a.out, "Signed in as %s\n", st.User.Email)
		} else {
			fmt.Fprintln(a.out, "Signed in")
		}
	}

	_ = a.probe(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
