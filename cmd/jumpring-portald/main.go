package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/rpc"
)

var log = logging.Logger("jumpring/portald")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	app := &cli.App{
		Name:      "jumpring-portald",
		Usage:     "reference portal and authority for jumpring",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Value: "127.0.0.1:7777", Usage: "gRPC listen address"},
			&cli.StringFlag{Name: "minimum-sapience", Value: "Medium", Usage: "lowest sapience level admitted"},
			&cli.BoolFlag{Name: "reject-notifications", Usage: "fail every authority notification"},
			&cli.IntFlag{Name: "arrivals-cache-size", Value: 1024, Usage: "destinations remembered in the arrivals log"},
			&cli.StringFlag{Name: "metrics-listen", Usage: "serve /metrics on this address when set"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Action:         serve,
		ExitErrHandler: func(*cli.Context, error) {},
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, append([]string{"jumpring-portald"}, args...)); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}

func serve(cctx *cli.Context) error {
	if err := logging.SetLogLevelRegex("jumpring/.*", cctx.String("log-level")); err != nil {
		return err
	}
	minimum, err := model.ParseSapienceLevel(cctx.String("minimum-sapience"))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	r, err := newRing(minimum, cctx.Bool("reject-notifications"), cctx.Int("arrivals-cache-size"), reg)
	if err != nil {
		return fmt.Errorf("could not create ring: %w", err)
	}

	if addr := cctx.String("metrics-listen"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		msrv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := msrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("metrics server stopped", "error", err)
			}
		}()
		defer msrv.Shutdown(context.Background())
	}

	lis, err := net.Listen("tcp", cctx.String("listen"))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	defer lis.Close()

	s := grpc.NewServer()
	rpc.RegisterPortalServer(s, &rpc.PortalService{Backend: r})
	rpc.RegisterAuthorityServer(s, &rpc.AuthorityService{Backend: r})

	go func() {
		<-cctx.Context.Done()
		s.GracefulStop()
	}()

	log.Infow("listening", "addr", lis.Addr().String(), "minimum_sapience", minimum, "reject_notifications", r.rejectSnitch)
	return s.Serve(lis)
}
