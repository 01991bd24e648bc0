package cmd

import (
	"context"
	"fmt"
	u "net/url"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanq16/woofget/internal/config"
	woofhttp "github.com/tanq16/woofget/internal/downloaders/http"
	"github.com/tanq16/woofget/internal/output"
	"github.com/tanq16/woofget/internal/scheduler"
	"github.com/tanq16/woofget/internal/utils"
)

var WoofgetVersion = "dev"

type rootFlags struct {
	apiURL        string
	outputDir     string
	timeout       time.Duration
	kaTimeout     time.Duration
	userAgent     string
	proxyURL      string
	proxyUsername string
	proxyPassword string
	headers       []string
	strictTLS     bool
	configFile    string
	debug         bool
}

func newRootCmd() (*cobra.Command, *rootFlags) {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "woofget",
		Short:         "woofget fetches a random resource from a metadata API and downloads it",
		Version:       WoofgetVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &flags)
			if err != nil {
				return err
			}
			utils.InitLogger(cfg.Debug)
			job := utils.WoofJob{
				APIURL:           cfg.API,
				OutputDir:        cfg.OutputDir,
				HTTPClientConfig: httpClientConfig(cfg, &flags),
				StrictTLS:        cfg.StrictTLS,
			}
			downloader := &woofhttp.HTTPDownloader{Status: output.NewStatusLine(cmd.OutOrStdout())}
			return scheduler.Run(cmd.Context(), job, downloader)
		},
	}

	cmd.Flags().StringVarP(&flags.apiURL, "api", "u", utils.DefaultAPIURL, "Metadata endpoint returning {url, fileSizeBytes}")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", ".", "Directory to write the downloaded file to")
	cmd.Flags().DurationVarP(&flags.timeout, "timeout", "t", time.Minute, "Metadata request timeout (eg. 5s, 10m)")
	cmd.Flags().DurationVarP(&flags.kaTimeout, "keep-alive-timeout", "k", 90*time.Second, "Keep-alive timeout for client (eg. 10s, 1m, 80s)")
	cmd.Flags().StringVarP(&flags.userAgent, "user-agent", "a", utils.ToolUserAgent, "User agent")
	cmd.Flags().StringVarP(&flags.proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL (e.g., proxy.example.com:8080)")
	cmd.Flags().StringVar(&flags.proxyUsername, "proxy-username", "", "Proxy username (if not provided in proxy URL)")
	cmd.Flags().StringVar(&flags.proxyPassword, "proxy-password", "", "Proxy password (if not provided in proxy URL)")
	cmd.Flags().StringArrayVarP(&flags.headers, "header", "H", []string{}, "Custom headers (like 'Authorization: Basic dXNlcjpwYXNz'); can be specified multiple times")
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "Path to a YAML config file")

	// flags without shorthand
	cmd.Flags().BoolVar(&flags.strictTLS, "strict-tls", false, "Verify the metadata endpoint's TLS certificate")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	return cmd, &flags
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd, _ := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.PrintError(err.Error())
		if !utils.IsDownloadError(err) {
			output.PrintWarning("Run 'woofget --help' for usage")
		}
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers defaults, the optional config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		var err error
		if cfg, err = config.Load(flags.configFile); err != nil {
			return cfg, err
		}
	}
	set := cmd.Flags()
	if set.Changed("api") {
		cfg.API = flags.apiURL
	}
	if set.Changed("output-dir") {
		cfg.OutputDir = flags.outputDir
	}
	if set.Changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if set.Changed("keep-alive-timeout") {
		cfg.KATimeout = flags.kaTimeout
	}
	if set.Changed("user-agent") {
		cfg.UserAgent = flags.userAgent
	}
	if set.Changed("proxy") {
		cfg.Proxy = flags.proxyURL
	}
	if set.Changed("strict-tls") {
		cfg.StrictTLS = flags.strictTLS
	}
	if set.Changed("debug") {
		cfg.Debug = flags.debug
	}
	for k, v := range utils.ParseHeaderArgs(flags.headers) {
		cfg.Headers[k] = v
	}
	if _, err := u.Parse(cfg.API); err != nil {
		return cfg, fmt.Errorf("invalid API URL format: %w", err)
	}
	return cfg, nil
}

func httpClientConfig(cfg config.Config, flags *rootFlags) utils.HTTPClientConfig {
	hc := cfg.HTTPClientConfig()
	hc.ProxyUsername = flags.proxyUsername
	hc.ProxyPassword = flags.proxyPassword
	// Check if proxy URL contains auth
	parsedProxy, err := u.Parse(hc.ProxyURL)
	if err == nil && hc.ProxyURL != "" && parsedProxy.User != nil && hc.ProxyUsername == "" {
		hc.ProxyUsername = parsedProxy.User.Username()
		if password, set := parsedProxy.User.Password(); set {
			hc.ProxyPassword = password
		}
		// Remove auth from URL to send in clientConfig
		parsedProxy.User = nil
		hc.ProxyURL = parsedProxy.String()
	}
	return hc
}
