// Command interviewd runs the interview sessions API.
//
//	@title						Interview Sessions API
//	@version					1.0
//	@description				Live pair-programming interview sessions backed by a video/chat provider.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const serviceName = "interviewd"

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Interview sessions API",
	Long:          "interviewd serves the REST API for live mock-interview sessions: session lifecycle, video/chat provisioning and identity provider user sync.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
