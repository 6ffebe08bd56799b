package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Print the work the node hands out for your account",
	RunE:  jobRun,
}

func init() {
	rootCmd.AddCommand(jobCmd)
}

func jobRun(cmd *cobra.Command, args []string) error {
	id, err := getAccountID()
	if err != nil {
		return err
	}

	job, err := newClient().RequestJob(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Seed: %s\nHeight: %d\nDifficulty: %d\nThreshold: %d\nReward: %v\n",
		job.Seed, job.Height, job.Difficulty, job.Threshold, job.Reward)
	return nil
}
