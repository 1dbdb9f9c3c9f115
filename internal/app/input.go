package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pouriyajamshidi/tcprobe"
)

var (
	// ErrHelpRequested indicates the help text was printed
	ErrHelpRequested = errors.New("help requested")

	// ErrVersionRequested indicates version display was requested
	ErrVersionRequested = errors.New("version requested")

	// ErrUpdateCheckRequested indicates update check was requested
	ErrUpdateCheckRequested = errors.New("update check requested")
)

// ProberConfig contains all configuration needed to create and run a prober.
type ProberConfig struct {
	Targets []string

	// Network options
	UseIPv4 bool
	UseIPv6 bool

	// Probe control
	Timeout     time.Duration
	Retries     uint
	Concurrency int

	// Output options
	PrinterConfig tcprobe.PrinterConfig

	// Runtime options
	Verbose      bool
	OTLPEndpoint string
}

func newRootCmd(config *ProberConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tcprobe [flags] <host:port>...",
		Short: "Check that TCP endpoints accept connections",
		Long: "tcprobe connects to every target once, retrying failures with a linear backoff,\n" +
			"and exits non-zero unless every target accepted a connection.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildConfig(cmd, args)
			if err != nil {
				return err
			}
			*config = c
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("timeout", "t", "5s", `connect timeout per attempt: "<n>ms", "<n>s" or whole seconds`)
	flags.UintP("retries", "r", 0, "extra attempts for a target that fails")
	flags.IntP("concurrency", "c", tcprobe.DefaultConcurrency, "maximum number of targets probed at the same time")
	flags.StringP("file", "f", "", "read additional targets from a file, one per line")
	flags.String("config", "", "read defaults from a YAML configuration file")

	flags.BoolP("ipv4", "4", false, "only use IPv4 addresses")
	flags.BoolP("ipv6", "6", false, "only use IPv6 addresses")

	flags.Bool("json", false, "output the summary as a single line of JSON. Add --pretty for indented output")
	flags.Bool("pretty", false, "indent the JSON output. Requires --json")
	flags.Bool("no-color", false, "do not colorize output")
	flags.String("csv", "", "path and file name to store results to a CSV file. The stats will be saved with the same name and a _stats suffix")
	flags.String("db", "", "path and file name to store results to a sqlite3 database")
	flags.Bool("show-failures-only", false, "only show unhealthy targets")
	flags.Bool("show-attempts", false, "list every failed attempt of unhealthy targets")

	flags.String("otlp-endpoint", "", "export traces to this OTLP/HTTP endpoint, e.g. http://localhost:4318")
	flags.BoolP("verbose", "v", false, "log every attempt to stderr")
	flags.Bool("version", false, "show version and exit")
	flags.Bool("check-update", false, "check for updates and exit")

	cmd.MarkFlagsMutuallyExclusive("ipv4", "ipv6")
	cmd.MarkFlagsMutuallyExclusive("json", "csv", "db")

	return cmd
}

// buildConfig merges, lowest precedence first, the defaults, the YAML
// configuration file and the flags set on the command line.
func buildConfig(cmd *cobra.Command, args []string) (ProberConfig, error) {
	flags := cmd.Flags()

	if v, _ := flags.GetBool("version"); v {
		return ProberConfig{}, ErrVersionRequested
	}

	if u, _ := flags.GetBool("check-update"); u {
		return ProberConfig{}, ErrUpdateCheckRequested
	}

	configPath, _ := flags.GetString("config")
	fileConfig, err := LoadConfig(configPath)
	if err != nil {
		return ProberConfig{}, err
	}

	timeout := fileConfig.Timeout
	if flags.Changed("timeout") {
		timeout, _ = flags.GetString("timeout")
	}

	retries := fileConfig.Retries
	if flags.Changed("retries") {
		retries, _ = flags.GetUint("retries")
	}

	concurrency := fileConfig.Concurrency
	if flags.Changed("concurrency") {
		concurrency, _ = flags.GetInt("concurrency")
	}
	if concurrency < 1 {
		return ProberConfig{}, fmt.Errorf("%w, got %d", ErrInvalidConcurrency, concurrency)
	}

	targetFile := fileConfig.File
	if flags.Changed("file") {
		targetFile, _ = flags.GetString("file")
	}

	targets, err := mergeTargets(fileConfig.Targets, args, targetFile)
	if err != nil {
		return ProberConfig{}, err
	}

	useIPv4, _ := flags.GetBool("ipv4")
	useIPv6, _ := flags.GetBool("ipv6")
	outputJSON, _ := flags.GetBool("json")
	prettyJSON, _ := flags.GetBool("pretty")
	noColor, _ := flags.GetBool("no-color")
	csvPath, _ := flags.GetString("csv")
	dbPath, _ := flags.GetString("db")
	failuresOnly, _ := flags.GetBool("show-failures-only")
	showAttempts, _ := flags.GetBool("show-attempts")
	otlpEndpoint, _ := flags.GetString("otlp-endpoint")
	verbose, _ := flags.GetBool("verbose")

	return ProberConfig{
		Targets:     targets,
		UseIPv4:     useIPv4,
		UseIPv6:     useIPv6,
		Timeout:     ParseDuration(timeout),
		Retries:     retries,
		Concurrency: concurrency,
		PrinterConfig: tcprobe.PrinterConfig{
			OutputJSON:       outputJSON,
			PrettyJSON:       prettyJSON,
			NoColor:          noColor,
			ShowFailuresOnly: failuresOnly,
			ShowAttempts:     showAttempts,
			OutputCSVPath:    csvPath,
			OutputDBPath:     dbPath,
		},
		Verbose:      verbose,
		OTLPEndpoint: otlpEndpoint,
	}, nil
}

// ProcessUserInput parses command-line arguments. Returns ErrHelpRequested,
// ErrVersionRequested, or ErrUpdateCheckRequested for special control flow.
func ProcessUserInput(args []string) (ProberConfig, error) {
	var config ProberConfig

	cmd := newRootCmd(&config)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return ProberConfig{}, err
	}

	// cobra prints the help text itself and skips RunE
	if config.Targets == nil {
		return ProberConfig{}, ErrHelpRequested
	}

	return config, nil
}
