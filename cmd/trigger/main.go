package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	relayrun "github.com/evanxd/discord-agent-trigger/internal/cmd/relay"
	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/relay"
	"github.com/evanxd/discord-agent-trigger/internal/stream"
	"github.com/evanxd/discord-agent-trigger/pkg/id"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trigger",
		Short: "Discord task relay",
		Long:  "Relays Discord messages into a durable request stream and delivers worker results back to the originating channel.",
	}

	// run
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if err := relayrun.Run(context.Background(), relayrun.Options{ConfigPath: configPath}); err != nil {
				return fmt.Errorf("relay error: %w", err)
			}
			return nil
		},
	}
	runCmd.Flags().String("config", "", "Path to JSON config file (env vars overlay it)")
	rootCmd.AddCommand(runCmd)

	// submit: append a request directly, bypassing the gateway.
	// Useful for smoke-testing a worker deployment.
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Append a request record to the request stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			channelID, _ := cmd.Flags().GetString("channel")
			messageID, _ := cmd.Flags().GetString("message")
			sender, _ := cmd.Flags().GetString("sender")
			instruction, _ := cmd.Flags().GetString("instruction")
			if channelID == "" || instruction == "" {
				return fmt.Errorf("--channel and --instruction are required")
			}
			if messageID == "" {
				messageID = id.NewGenerator().Next()
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger := relayrun.NewLogger(cfg.Log)
			ctx := cmd.Context()
			store, err := stream.Connect(ctx, cfg.Redis, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			producer := relay.NewProducer(store, cfg.Streams, logger)
			msg := relay.Message{
				ID:          messageID,
				ChannelID:   channelID,
				Content:     instruction,
				Sender:      sender,
				Event:       "cli",
				TextChannel: true,
			}
			if err := producer.Submit(ctx, msg, ""); err != nil {
				return err
			}
			fmt.Println("request submitted")
			return nil
		},
	}
	submitCmd.Flags().String("config", "", "Path to JSON config file")
	submitCmd.Flags().String("channel", "", "Destination channel id")
	submitCmd.Flags().String("message", "", "Originating message id (generated if empty)")
	submitCmd.Flags().String("sender", "cli", "Sender display name")
	submitCmd.Flags().String("instruction", "", "Instruction text for the worker")
	rootCmd.AddCommand(submitCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
