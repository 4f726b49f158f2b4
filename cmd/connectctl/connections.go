package main

import (
	"github.com/careerconnect/connect-client/internal/connection"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/state"
	"github.com/spf13/cobra"
)

func (a *app) connectionsCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:     "connections",
		Aliases: []string{"conn"},
		Short:   "Find people, send and answer connection requests",
	})

	cmd.AddCommand(
		a.exploreCmd(),
		a.sendRequestCmd(),
		a.requestsCmd(),
		a.decideCmd("accept", models.ActionAccept),
		a.decideCmd("reject", models.ActionReject),
		a.listConnectionsCmd(),
		a.disconnectCmd(),
	)
	return cmd
}

func (a *app) exploreCmd() *cobra.Command {
	var term, tab string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "List people you can connect with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := a.store.Get()
			users, err := a.scoped(sess.Token).ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			sent := state.NewSentSet(a.file, sess.UserID).List()
			parsed := connection.ParseTab(tab)
			return render(a.out, models.ExploreView{
				Tab:   parsed,
				Term:  term,
				Users: connection.Explore(users, sess.UserID, sent, term, parsed),
			})
		},
	}
	cmd.Flags().StringVar(&term, "search", "", "Case-insensitive name filter")
	cmd.Flags().StringVar(&tab, "tab", string(models.TabAll), "all, mentors or students")
	return cmd
}

func (a *app) sendRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <userId>",
		Short: "Send a connection request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			receiverID, err := argID(args, 0, "userId")
			if err != nil {
				return err
			}
			if err := a.workflow().Send(cmd.Context(), a.store.Get().UserID, receiverID); err != nil {
				return err
			}
			say(a.out, "Connection request sent to user %d.", receiverID)
			return nil
		},
	}
}

func (a *app) requestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List pending requests sent to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			requests, err := a.workflow().ListIncoming(cmd.Context(), a.store.Get().UserID)
			if err != nil {
				return err
			}
			return render(a.out, models.RequestsView{Requests: requests})
		},
	}
}

// decideCmd answers one pending request and prints the requests that remain
func (a *app) decideCmd(use string, action models.DecisionAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <connectionId>",
		Short: "Answer a pending request with " + string(action),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			connectionID, err := argID(args, 0, "connectionId")
			if err != nil {
				return err
			}

			wf := a.workflow()
			if _, err := wf.ListIncoming(cmd.Context(), a.store.Get().UserID); err != nil {
				return err
			}
			if err := wf.Decide(cmd.Context(), connectionID, action); err != nil {
				return err
			}
			return render(a.out, models.RequestsView{Requests: wf.Pending()})
		},
	}
}

func (a *app) listConnectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your accepted connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connections, err := a.workflow().ListAccepted(cmd.Context(), a.store.Get().UserID)
			if err != nil {
				return err
			}
			return render(a.out, models.ConnectionsView{Connections: connections})
		},
	}
}

func (a *app) disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <connectionId>",
		Short: "Remove an accepted connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			connectionID, err := argID(args, 0, "connectionId")
			if err != nil {
				return err
			}

			wf := a.workflow()
			if err := wf.Disconnect(cmd.Context(), a.store.Get().UserID, connectionID); err != nil {
				return err
			}
			return render(a.out, models.ConnectionsView{Connections: wf.Accepted()})
		},
	}
}
