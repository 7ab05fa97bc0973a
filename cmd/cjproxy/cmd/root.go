// Package cmd implements the CLI commands for the CJ dropshipping proxy.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cjproxy",
	Short: "REST proxy for the CJDropshipping API",
	Long: "cjproxy exposes a stable REST API in front of CJDropshipping,\n" +
		"managing the vendor token lifecycle (persist, refresh, re-login)\n" +
		"so clients never handle CJ credentials or tokens themselves.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "config.yaml", "config file path")

	cobra.CheckErr(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))

	rootCmd.AddCommand(versionCommand())
}

func initConfig() {
	viper.SetEnvPrefix("CJPROXY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// configPath resolves the config file path, letting CJPROXY_CONFIG override
// the flag default.
func configPath() string {
	return viper.GetString("config")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
