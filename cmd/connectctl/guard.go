package main

import (
	"fmt"
	"strings"

	"github.com/careerconnect/connect-client/internal/guard"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rolesAnnotation marks a command as protected. The value is a comma
// separated role list, or "*" for any logged-in role.
const rolesAnnotation = "connectctl.roles"

// protect marks cmd, and every subcommand below it, as requiring a session
// with one of roles. No roles means any logged-in role.
func protect(cmd *cobra.Command, roles ...models.Role) *cobra.Command {
	value := "*"
	if len(roles) > 0 {
		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = string(role)
		}
		value = strings.Join(names, ",")
	}

	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[rolesAnnotation] = value
	return cmd
}

// ruleFor returns the rule of the nearest protected command
func ruleFor(cmd *cobra.Command) (guard.Rule, bool) {
	for c := cmd; c != nil; c = c.Parent() {
		value, ok := c.Annotations[rolesAnnotation]
		if !ok {
			continue
		}
		if value == "*" {
			return guard.Authenticated(cmd.CommandPath()), true
		}
		var roles []models.Role
		for _, name := range strings.Split(value, ",") {
			roles = append(roles, models.Role(name))
		}
		return guard.RoleOnly(cmd.CommandPath(), roles...), true
	}
	return guard.Rule{}, false
}

// RedirectError tells the user where to go instead of the refused command
type RedirectError struct {
	Command string
	To      string
	Reason  string
}

func (e *RedirectError) Error() string {
	if e.Reason == guard.ReasonAnonymous {
		return fmt.Sprintf("%s requires a session: run `%s login` first", e.Command, appName)
	}
	return fmt.Sprintf("%s is not available to your role; your dashboard is %s (`%s dashboard`)", e.Command, e.To, appName)
}

// authorize runs the access rule of cmd, if any, before it touches the backend
func (a *app) authorize(cmd *cobra.Command) error {
	rule, ok := ruleFor(cmd)
	if !ok {
		return nil
	}

	decision := guard.Evaluate(a.store.Get(), rule)
	if decision.Allowed {
		return nil
	}

	metrics.GuardRedirects.WithLabelValues(decision.Reason).Inc()
	logger.Debug("Command refused",
		zap.String("command", rule.Path),
		zap.String("reason", decision.Reason),
		zap.String("redirect_to", decision.RedirectTo))

	return &RedirectError{Command: rule.Path, To: decision.RedirectTo, Reason: decision.Reason}
}
