package main

import (
	"io"
	"strings"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) messagesCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:     "messages",
		Aliases: []string{"chat"},
		Short:   "Chat with your connections",
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List the people you can message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connections, err := a.workflow().ListAccepted(cmd.Context(), a.store.Get().UserID)
			if err != nil {
				return err
			}
			return render(a.out, models.ConnectionsView{Connections: connections})
		},
	}

	var follow bool
	show := &cobra.Command{
		Use:   "show <peerId>",
		Short: "Print the conversation with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peerID, err := argID(args, 0, "peerId")
			if err != nil {
				return err
			}
			sess := a.store.Get()
			svc := a.messagingService()

			thread, err := svc.Thread(cmd.Context(), sess, peerID)
			if err != nil {
				return err
			}
			printed := printMessages(a.out, sess.UserID, thread.Messages, 0)
			if !follow {
				return nil
			}

			poller := svc.Open(sess, peerID)
			if err := poller.Start(cmd.Context()); err != nil {
				return err
			}
			defer poller.Stop()

			updates, failures := poller.Updates(), poller.Failures()
			for {
				select {
				case messages, open := <-updates:
					if !open {
						return nil
					}
					printed = printMessages(a.out, sess.UserID, services.SanitizeMessages(messages), printed)
				case err, open := <-failures:
					if !open {
						return nil
					}
					say(cmd.ErrOrStderr(), "%s", apperrors.UserMessage(err))
				}
			}
		},
	}
	show.Flags().BoolVarP(&follow, "follow", "f", false, "Keep polling and print new messages until interrupted")

	send := &cobra.Command{
		Use:   "send <peerId> <message...>",
		Short: "Send a message to a peer",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			peerID, err := argID(args, 0, "peerId")
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")
			if err := a.messagingService().Send(cmd.Context(), a.store.Get(), peerID, content); err != nil {
				return err
			}
			say(a.out, "Message sent.")
			return nil
		},
	}

	cmd.AddCommand(list, show, send)
	return cmd
}

// printMessages writes one line per message starting at index from and
// returns the new cursor. Threads come back whole and in server order, so
// the cursor is the number of messages already printed.
func printMessages(w io.Writer, self int, messages []models.Message, from int) int {
	if from > len(messages) {
		from = len(messages)
	}
	for _, m := range messages[from:] {
		who := "them"
		if m.SenderID == self {
			who = "you"
		}
		stamp := ""
		if !m.CreatedAt.IsZero() {
			stamp = m.CreatedAt.Local().Format("2006-01-02 15:04") + " "
		}
		say(w, "%s%s: %s", stamp, who, m.Content)
	}
	return len(messages)
}
