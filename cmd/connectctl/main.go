// Command connectctl is the terminal client of CareerConnect. One process is
// one client instance; its session and sent-request marks live in a YAML
// state file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/careerconnect/connect-client/config"
	"github.com/careerconnect/connect-client/internal/connection"
	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/messaging"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/internal/state"
	"github.com/careerconnect/connect-client/pkg/backend"
	"github.com/careerconnect/connect-client/pkg/httpclient"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "connectctl"

// app is everything a command needs. It is filled in by the root command's
// PersistentPreRunE so that flags and environment are already parsed.
type app struct {
	out      io.Writer
	logLevel string

	cfg   *config.Config
	file  *state.File
	store *session.Manager
	api   *backend.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "CareerConnect terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			return a.authorize(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logger.Sync()
		},
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")

	cmd.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.profileCmd(),
		a.connectionsCmd(),
		a.messagesCmd(),
		a.skillsCmd(),
		a.storiesCmd(),
		a.resourcesCmd(),
		a.jobsCmd(),
	)

	return cmd
}

func (a *app) setup() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if err := logger.Initialize(logger.Config{
		Level:       level,
		Environment: "development",
		ServiceName: appName,
		Output:      "stderr",
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.file = state.NewFile(cfg.CLI.StateFile)
	a.store = session.NewManager(session.NewFilePersister(a.file), cfg.SessionTTL())
	a.api = backend.NewClient(backend.Config{
		BaseURL:               cfg.Backend.BaseURL,
		DisableCircuitBreaker: cfg.Backend.DisableCircuitBreaker,
	}, httpclient.NewStandardClient(cfg.BackendTimeout()))

	logger.Debug("Client ready",
		zap.String("state_file", a.file.Path()),
		zap.String("backend", cfg.Backend.BaseURL))
	return nil
}

func (a *app) scoped(token string) *backend.Client {
	return a.api.WithToken(token)
}

// workflow builds the connection workflow of the logged-in user. The sent
// marks are kept in the state file so they survive between runs.
func (a *app) workflow() *connection.Workflow {
	sess := a.store.Get()
	return connection.NewWorkflow(a.scoped(sess.Token), state.NewSentSet(a.file, sess.UserID))
}

func (a *app) authService() *services.AuthService {
	return services.NewAuthService(a.api)
}

func (a *app) profileService() *services.ProfileService {
	return services.NewProfileService(func(token string) services.ProfileBackend { return a.scoped(token) })
}

func (a *app) messagingService() *services.MessagingService {
	return services.NewMessagingService(func(token string) messaging.Transport { return a.scoped(token) }, a.cfg.PollInterval())
}

func (a *app) skillService() *services.SkillService {
	return services.NewSkillService(func(token string) crud.Backend { return a.scoped(token) })
}

func (a *app) storyService() *services.StoryService {
	return services.NewStoryService(func(token string) services.StoryBackend { return a.scoped(token) })
}

func (a *app) resourceService() *services.ResourceService {
	return services.NewResourceService(func(token string) services.ResourceBackend { return a.scoped(token) })
}

func (a *app) jobService() *services.JobService {
	return services.NewJobService(func(token string) crud.Backend { return a.scoped(token) })
}
