package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	fuelCmd "github.com/raceiq/raceiq-engine/pkg/cmd/fuel"
	migrateCmd "github.com/raceiq/raceiq-engine/pkg/cmd/migrate"
	pitCmd "github.com/raceiq/raceiq-engine/pkg/cmd/pit"
	sessionCmd "github.com/raceiq/raceiq-engine/pkg/cmd/session"
	strategyCmd "github.com/raceiq/raceiq-engine/pkg/cmd/strategy"
	telemetryCmd "github.com/raceiq/raceiq-engine/pkg/cmd/telemetry"
	tiresCmd "github.com/raceiq/raceiq-engine/pkg/cmd/tires"
	tracksCmd "github.com/raceiq/raceiq-engine/pkg/cmd/tracks"
	"github.com/raceiq/raceiq-engine/pkg/config"
	"github.com/raceiq/raceiq-engine/version"
)

const envPrefix = "RIQ"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "riq",
	Short:   "Racing telemetry and tire/fuel degradation engine",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cmdutil.Setup(cmd.Context()); err != nil {
			return err
		}
		cmd.SetContext(log.AddToContext(cmd.Context(), log.Default().Named(cmd.Name())))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Teardown()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.riq.yml)")

	rootCmd.PersistentFlags().StringVar(&config.Store, "store",
		config.StoreBolt,
		"session store backend (bolt, postgres, memory)")
	rootCmd.PersistentFlags().StringVar(&config.BoltFile, "bolt-file",
		defaultBoltFile(),
		"file used by the bolt session store")
	rootCmd.PersistentFlags().StringVar(&config.DB, "db",
		"postgresql://DB_USERNAME:DB_USER_PASSWORD@DB_HOST:5432/raceiq",
		"Connection string for the database")
	rootCmd.PersistentFlags().StringVar(&config.WaitForServices,
		"wait-for-services",
		"15s",
		"Duration to wait for other services to be ready")
	rootCmd.PersistentFlags().StringVar(&config.TrackFile, "track-file", "",
		"YAML file with additional tracks")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"info",
		"controls the log level for sql methods")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (json, text)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules, e.g. \"-debug:broadcast*\"")
	rootCmd.PersistentFlags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	rootCmd.PersistentFlags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data (\"stdout\" prints locally)")

	// add commands here
	rootCmd.AddCommand(tracksCmd.NewTracksCmd())
	rootCmd.AddCommand(telemetryCmd.NewTelemetryCmd())
	rootCmd.AddCommand(tiresCmd.NewTiresCmd())
	rootCmd.AddCommand(fuelCmd.NewFuelCmd())
	rootCmd.AddCommand(pitCmd.NewPitCmd())
	rootCmd.AddCommand(strategyCmd.NewStrategyCmd())
	rootCmd.AddCommand(sessionCmd.NewSessionCmd())
	rootCmd.AddCommand(migrateCmd.NewMigrateCmd())
}

func defaultBoltFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".riq.db"
	}
	return filepath.Join(home, ".riq.db")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".riq" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".riq")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	visitCommands(rootCmd, func(cmd *cobra.Command) {
		bindFlags(cmd, viper.GetViper())
	})
}

func visitCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	for _, c := range cmd.Commands() {
		fn(c)
		visitCommands(c, fn)
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to RIQ_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
