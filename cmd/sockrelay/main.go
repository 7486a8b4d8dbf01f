package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexcesaro/log"
	"github.com/alexcesaro/log/golog"
	"github.com/dustin/go-humanize"
	flags "github.com/jessevdk/go-flags"

	"github.com/sockrelay/sockrelay"
	"github.com/sockrelay/sockrelay/config"
	"github.com/sockrelay/sockrelay/wsd"

	_ "net/http/pprof"
)

// Version of the binary, assigned during build.
var Version string = "dev"

// Options contains the flag options
type Options struct {
	Verbose []bool `short:"v" long:"verbose" description:"Show verbose logging."`
	Version bool   `long:"version" description:"Print version and exit."`
	Config  string `short:"c" long:"config" description:"Optional yaml config file."`
	Bind    string `long:"bind" description:"Host and port to listen on. Overrides config."`
	Status  string `long:"status" description:"Host and port for the status endpoint. Overrides config."`
	Pprof   int    `long:"pprof" description:"Enable pprof http server for profiling."`
}

var logLevels = []log.Level{
	log.Warning,
	log.Info,
	log.Debug,
}

func fail(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

func main() {
	options := Options{}
	parser := flags.NewParser(&options, flags.Default)
	p, err := parser.Parse()
	if err != nil {
		if p == nil {
			fmt.Print(err)
		}
		return
	}

	if options.Pprof != 0 {
		go func() {
			fmt.Println(http.ListenAndServe(fmt.Sprintf("localhost:%d", options.Pprof), nil))
		}()
	}

	if options.Version {
		fmt.Println(Version)
		return
	}

	// Figure out the log level
	numVerbose := len(options.Verbose)
	if numVerbose >= len(logLevels) {
		numVerbose = len(logLevels) - 1
	}

	logLevel := logLevels[numVerbose]
	logger := golog.New(os.Stderr, logLevel)
	sockrelay.SetLogger(logger)

	if logLevel == log.Debug {
		// Enable logging from submodules
		wsd.SetLogger(os.Stderr)
	}

	cfg, err := config.Load(options.Config)
	if err != nil {
		fail(2, "Failed to load config: %v\n", err)
	}
	if options.Bind != "" {
		cfg.Bind = options.Bind
	}
	if options.Status != "" {
		cfg.StatusBind = options.Status
	}

	l, err := wsd.ListenWS(cfg.Bind, wsd.Config{
		PingInterval:   cfg.PingInterval,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxMessageSize: cfg.MaxMessageSize,
		InboundBuffer:  cfg.InboundBuffer,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		fail(3, "Failed to listen on socket: %v\n", err)
	}
	defer l.Close()

	fmt.Printf("Listening for connections on %v\n", l.Addr().String())

	host := sockrelay.NewHost(l)
	host.Version = Version

	if cfg.StatusBind != "" {
		go serveStatus(cfg.StatusBind, host, time.Now())
	}

	go host.Serve()

	// Construct interrupt handler
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	<-sig // Wait for ^C signal
	fmt.Fprintln(os.Stderr, "Interrupt signal detected, shutting down.")
}

// serveStatus is the trivial health collaborator: it reads the active user
// count off the host and serves it as JSON. The relay core itself serves no
// HTTP.
func serveStatus(addr string, host *sockrelay.Host, started time.Time) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "ok",
			"version":     host.Version,
			"activeUsers": host.ActiveUserCount(),
			"started":     humanize.Time(started),
		})
	})
	if err := http.ListenAndServe(addr, mux); err != nil {
		fail(4, "Status server failed: %v\n", err)
	}
}
