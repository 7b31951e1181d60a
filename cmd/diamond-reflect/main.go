package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ironsheep/diamond-reflect/internal/config"
	"github.com/ironsheep/diamond-reflect/internal/imaging"
	"github.com/ironsheep/diamond-reflect/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before touching the environment
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("diamond-reflect %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "apply":
			if err := runApply(os.Args[2:], os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "diamond-reflect apply: %v\n", err)
				os.Exit(1)
			}
			return
		case "serve":
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Diamond Reflect v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     Version,
		}); err != nil {
			log.Fatalf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Serving on %s", cfg.Addr())
	if err := server.New(cfg).Run(ctx); err != nil {
		log.Printf("Server error: %v", err)
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "diamond-reflect - diamond reflection effect service")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  diamond-reflect [serve]                      Run the HTTP API")
	fmt.Fprintln(w, "  diamond-reflect apply -in SRC -out DST [..]  Process one file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  HOST, PORT                   Listen address (default 0.0.0.0:5000)")
	fmt.Fprintln(w, "  DIAMOND_MAX_UPLOAD           Request body limit (default 32M)")
	fmt.Fprintln(w, "  DIAMOND_READ_TIMEOUT         Per-request read timeout (default 30s)")
	fmt.Fprintln(w, "  DIAMOND_WRITE_TIMEOUT        Per-request write timeout (default 60s)")
	fmt.Fprintln(w, "  DIAMOND_LOG_LEVEL=debug      Enable debug logging")
	fmt.Fprintln(w, "  SENTRY_DSN, ENV              Error reporting")
}

// runApply implements the apply subcommand: read -in, apply the effect and
// write -out, whose extension selects the output format.
func runApply(args []string, stderr io.Writer) error {
	defaults := imaging.DefaultParams()

	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input image path")
	out := fs.String("out", "", "output image path")
	size := fs.Float64("diamond-size", defaults.DiamondSize, "diamond half-diagonal as a fraction of the image")
	softness := fs.Float64("edge-softness", defaults.EdgeSoftness, "Gaussian sigma of the mask edge, in pixels")
	rotation := fs.Float64("rotation", defaults.Rotation, "mask rotation in degrees")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return errors.New("both -in and -out are required")
	}

	img, err := imaging.Open(*in)
	if err != nil {
		return err
	}

	result := imaging.DiamondReflection(img, imaging.Params{
		DiamondSize:  *size,
		EdgeSoftness: *softness,
		Rotation:     *rotation,
	})
	return imaging.Save(result, *out)
}
