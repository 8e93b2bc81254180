package main

import (
	"fmt"
	"strconv"

	"github.com/aparna-bhatt/nodedetails"
	"github.com/spf13/cobra"
)

func parseNodeID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid node id %q", arg)
	}
	return id, nil
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <node-id>",
		Short: "Show the status, runtime and command of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			node, err := a.source.GetNode(ctx, id)
			if err != nil {
				return err
			}
			detail, err := a.loader.Load(ctx, node)
			if err != nil {
				// Plugin data is unavailable; the command is left empty.
				detail = nodedetails.NewDetail(node, nil)
			}
			a.formatter.PrintDetail(detail)
			return nil
		},
	}
}

func newCommandCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "command <node-id>",
		Short: "Print the docker command that reproduces a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			node, err := a.source.GetNode(ctx, id)
			if err != nil {
				return err
			}
			detail, err := a.loader.Load(ctx, node)
			if err != nil {
				return fmt.Errorf("command for node %d is not available: %w", id, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), detail.Command)
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the nodes of the feed, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			nodes, err := a.source.ListNodes(ctx)
			if err != nil {
				return err
			}
			a.formatter.PrintSummaries(nodedetails.SummarizeAll(nodes))
			return nil
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <node-id>",
		Short: "Show the recorded details of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			if a.config.LogDir == "" {
				return fmt.Errorf("history requires --log-dir")
			}
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			entries, err := a.renderLogger.GetRenderHistory(ctx, id)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), entries, a.config.JSON)
			return nil
		},
	}
}
