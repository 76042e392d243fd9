package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"points_checker/internal/app/port"
	"points_checker/internal/app/provider"
	"points_checker/internal/app/service"
	"points_checker/internal/client"
	"points_checker/internal/domain/entity"
	"points_checker/internal/infrastructure/configloader"
	"points_checker/internal/infrastructure/walletloader"
	"points_checker/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrInterrupted is returned when the run was stopped before every address was checked.
var ErrInterrupted = errors.New("check interrupted, results are partial")

type checkOptions struct {
	*rootOptions
	file    string
	asJSON  bool
	baseURL string
	timeout time.Duration
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "check [addresses...]",
		Short: "Check the points of one or more wallets",
		Long: `Check the points of one or more wallets.

Addresses come from the arguments and from --file. When neither is given they
are read from stdin. Commas, spaces and newlines all separate addresses; in
files, lines starting with '#' are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read addresses from this file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "override the points API base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "override the per-request timeout (e.g. 10s)")
	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	logrusLevel, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logrus.SetOutput(stderr)
	logrus.SetLevel(logrusLevel)

	cfg, err := configloader.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.baseURL != "" {
		cfg.Points.BaseURL = opts.baseURL
	}
	if opts.timeout > 0 {
		cfg.Points.RequestTimeoutMillis = opts.timeout.Milliseconds()
	}

	zapLogger, err := logger.NewZapLogger(opts.logLevel, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.InitSlog(zapLogger)
	appLogger := logger.NewSlogAdapter()

	wallets, err := collectWallets(cmd, opts, args, appLogger)
	if errors.Is(err, provider.ErrNoWallets) {
		fmt.Fprintln(stderr, "No addresses to check.")
		return nil
	}
	if err != nil {
		return err
	}

	pointsClient := client.NewPointsClient(cfg.Points.BaseURL, cfg.RequestTimeout(), zapLogger)
	pointsService := service.NewPointsService(pointsClient, appLogger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batch := entity.NewBatch(uuid.NewString(), wallets)
	progress := newProgressPrinter(stderr, wallets)
	outcome := pointsService.Run(ctx, entity.NewSession("cli"), batch, progress.observe)

	snap := batch.Snapshot()
	if opts.asJSON {
		if err := writeJSON(stdout, snap, outcome); err != nil {
			return err
		}
	} else {
		if err := writeTable(stdout, snap.Results); err != nil {
			return err
		}
	}

	if outcome.ModalTriggered {
		// JSON output stays machine readable, the notice goes to stderr.
		noticeOut := stdout
		if opts.asJSON {
			noticeOut = stderr
		}
		writeNotice(noticeOut)
	}

	if outcome.Cancelled {
		return ErrInterrupted
	}
	return nil
}

// collectWallets gathers addresses from args and --file, falling back to stdin.
func collectWallets(cmd *cobra.Command, opts *checkOptions, args []string, l port.Logger) ([]entity.Wallet, error) {
	var sources []port.WalletProvider
	if len(args) > 0 {
		sources = append(sources, provider.StaticWallets(walletloader.ParseAddresses(strings.Join(args, " "))))
	}
	if opts.file != "" {
		sources = append(sources, walletloader.NewWalletFileLoader(opts.file, l.Debug))
	}
	if len(sources) == 0 {
		sources = append(sources, walletloader.NewWalletReaderLoader("stdin", cmd.InOrStdin(), l.Debug))
	}
	return provider.NewWalletProvider(l, sources...).GetWallets()
}
