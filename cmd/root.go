package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "foodstory",
	Short: "Drives restaurant dish stories from the command line",
	Long: `foodstory runs the dish story feed headless: restaurants are swiped vertically,
dishes play as timed stories with tappable ingredient hotspots, and customized
dishes go to a persisted cart. The simulate command replays a random viewer
against the feed and streams the resulting interaction events.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")
	rootCmd.PersistentFlags().String("storage-backend", "memory", "Persistence backend: memory, file, postgres or s3")
	rootCmd.PersistentFlags().String("storage-path", "", "Directory for the file storage backend")

	rootCmd.AddCommand(simulateCmd, seedCmd, cartCmd)
}

// bindFlags maps command flags onto config keys. Binding happens when the
// command runs so commands sharing a key do not overwrite each other.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

var storageFlags = map[string]string{
	"storage-backend": "storage_backend",
	"storage-path":    "storage_path",
}

func mergeFlags(sets ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
