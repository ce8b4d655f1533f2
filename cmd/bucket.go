package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bucketCmd groups the bucket subcommands
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Create or delete the configured bucket",
}

var bucketCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the configured bucket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := client.CreateBucket(cmd.Context()); err != nil {
			return err
		}
		logg.Info("Bucket ready", zap.String("bucket", client.BucketName()))
		return nil
	},
}

var bucketDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the configured bucket (must be empty)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		return client.DeleteBucket(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(bucketCmd)
	bucketCmd.AddCommand(bucketCreateCmd, bucketDeleteCmd)
}
