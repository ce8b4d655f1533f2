package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var getOutput string
var listJSON bool

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key> <file>",
	Short: "Upload a local file under key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, file := args[0], args[1]

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		_, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		stored, err := client.PutObject(cmd.Context(), key, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stored)
		return nil
	},
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print an object, or save it with --out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		data, err := client.GetObject(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if getOutput != "" {
			if err := os.WriteFile(getOutput, data, 0644); err != nil {
				return fmt.Errorf("failed to save %s: %w", getOutput, err)
			}
			logg.Info("Object saved", zap.String("file", getOutput), zap.Int("size", len(data)))
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		deleted, err := client.DeleteObject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted=%t\n", deleted)
		return nil
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every key in the bucket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		keys, err := client.ListKeys(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(keys)
		}
		for _, k := range keys {
			fmt.Fprintln(out, k)
		}
		return nil
	},
}

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <key> <dir>",
	Short: "Stream an object into a local directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		path, err := client.DownloadFile(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(putCmd, getCmd, deleteCmd, listCmd, downloadCmd)

	getCmd.Flags().StringVarP(&getOutput, "out", "o", "", "Write the object to this file instead of stdout")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print keys as a JSON array")
}
