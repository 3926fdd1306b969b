package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasklogger/internal/agent"
	"tasklogger/internal/api/v1"
)

func (a *app) agentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agent <message>",
		Short: "Ask the Gemini task logger agent to log an update",
		Long: `Send a message to the task logger agent. The agent chooses between the
natural language and the structured logging tool.

Requires GEMINI_API_KEY (or GOOGLE_API_KEY, or agent.api_key in config.toml).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Agent.APIKey == "" {
				return errors.New("agent requires an api key: set GEMINI_API_KEY or agent.api_key")
			}

			sess, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			ag, err := agent.NewGemini(cmd.Context(), a.cfg.Agent.APIKey, a.cfg.Agent.Model, sess.dispatcher, a.log)
			if err != nil {
				return err
			}
			return runAgent(cmd, ag, strings.Join(args, " "))
		},
	}
}

// runAgent prints each tool result, then the final answer.
func runAgent(cmd *cobra.Command, runner v1.AgentRunner, message string) error {
	out := cmd.OutOrStdout()
	reply, err := runner.Run(cmd.Context(), message)
	for _, call := range reply.Calls {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(call.Name), call.Result.Message())
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, reply.Text)
	return nil
}
