package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/infodump/pkg/infodump/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "infodump",
		Short: "Print a host diagnostic report",
		Long: `Infodump collects and prints host diagnostics in one pass: system
identity, network reachability, memory, disk usage, the largest files
under a path, the top CPU-consuming processes, and hardware
temperature readings.

Examples:
  infodump                         # Full report, largest files under $HOME
  infodump --path /var --largest 5 # Five largest files under /var
  infodump --cpu 10 --no-temp      # Ten busiest processes, skip sensors
  infodump --no-color              # Plain output for piping`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/infodump/config.yaml)")
	rootCmd.Flags().StringP("path", "p", "", "root directory for the largest-files scan (default: home directory)")
	rootCmd.Flags().IntP("largest", "l", config.DefaultLargest, "number of largest files to display")
	rootCmd.Flags().IntP("cpu", "c", config.DefaultCPU, "number of top CPU processes to display")
	rootCmd.Flags().StringSlice("exclude", nil, "glob patterns to skip during the file scan")
	rootCmd.Flags().String("ping-target", config.DefaultPingTarget, "address for the outbound connectivity probe")
	rootCmd.Flags().Bool("no-color", false, "disable styled output")
	rootCmd.Flags().Bool("no-temp", false, "disable the temperature section")
	rootCmd.Flags().Bool("no-nvidia", false, "disable the NVIDIA GPU section")
	rootCmd.Flags().BoolP("verbose", "v", false, "echo debug logs to stderr")

	_ = viper.BindPFlag("path", rootCmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("largest", rootCmd.Flags().Lookup("largest"))
	_ = viper.BindPFlag("cpu", rootCmd.Flags().Lookup("cpu"))
	_ = viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("ping_target", rootCmd.Flags().Lookup("ping-target"))
	_ = viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))
	_ = viper.BindPFlag("no_temp", rootCmd.Flags().Lookup("no-temp"))
	_ = viper.BindPFlag("no_nvidia", rootCmd.Flags().Lookup("no-nvidia"))
	_ = viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "infodump"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "infodump"))
		}
	}

	viper.SetEnvPrefix("INFODUMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// Missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
