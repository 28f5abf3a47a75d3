package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
)

const plannerInstructions = `You are a planner. Break the user's task into a
short numbered list of concrete steps. Output only the list.`

const workerInstructions = `You are a worker. You receive a task and a plan for
it. Carry out the plan and present the finished result, not the plan.`

var teamCmd = &cobra.Command{
	Use:   "team [task]",
	Short: "Two agents: a planner feeding a worker",
	Long: `Runs the task through two agents sharing one provider: a planner agent
produces a step list, then a worker agent receives the task plus the plan and
produces the final result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTeamLab,
}

func init() {
	rootCmd.AddCommand(teamCmd)
}

func runTeamLab(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	task := strings.Join(args, " ")

	planner := agent.New("planner", plannerInstructions, client)
	worker := agent.New("worker", workerInstructions, client)

	plan, err := planner.Run(cmd.Context(), task)
	if err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	fmt.Fprintf(ioOut, "--- %s ---\n%s\n\n", planner.Name(), plan.Output)

	handoff := fmt.Sprintf("Task: %s\n\nPlan:\n%s", task, plan.Output)
	result, err := worker.Run(cmd.Context(), handoff)
	if err != nil {
		return fmt.Errorf("worker: %w", err)
	}

	fmt.Fprintf(ioOut, "--- %s ---\n%s\n", worker.Name(), result.Output)
	return nil
}
