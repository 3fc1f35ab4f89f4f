package main

import (
	"fmt"
	"time"

	"github.com/indigo-web/lite/client"
	"github.com/indigo-web/lite/config"
	"github.com/spf13/cobra"
)

var (
	fetchRetries        int
	fetchTimeout        time.Duration
	fetchFallbackBuffer int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Perform a GET request and print the response",
	Long: `Perform a GET request with retries and print the status code, the headers and
the body.

A request that failed after all the attempts results in status 500 with the
error message as a body.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	defaults := config.Default().Client
	fetchCmd.Flags().IntVarP(&fetchRetries, "retries", "r", defaults.Retries, "Number of attempts")
	fetchCmd.Flags().DurationVarP(&fetchTimeout, "timeout", "t", defaults.Timeout, "Timeout of a single attempt")
	fetchCmd.Flags().IntVar(&fetchFallbackBuffer, "fallback-buffer", defaults.FallbackBufferSize,
		"Body limit when neither chunked encoding nor Content-Length is set (0 means unlimited)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.Client.Retries = fetchRetries
	cfg.Client.Timeout = fetchTimeout
	cfg.Client.FallbackBufferSize = fetchFallbackBuffer

	c := client.New(cfg, client.WithLogger(newLogger()))
	resp := c.Perform(cmd.Context(), args[0])

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d\n", resp.Code)
	for key, value := range resp.Headers.Iter() {
		fmt.Fprintf(out, "%s: %s\n", key, value)
	}

	fmt.Fprintf(out, "\n%s\n", resp.Text())
	return nil
}
