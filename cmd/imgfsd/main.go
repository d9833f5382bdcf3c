// Command imgfsd serves an imgFS store over the line-oriented request
// protocol implemented by imgfsproto/imgfsserver.
//
// Usage:
//
//	imgfsd server <file> [port]
package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/behrlich/imgfs"
	"github.com/behrlich/imgfs/imgfsserver"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logf("%v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 || args[0] != "server" {
		return fmt.Errorf("usage: imgfsd server <file> [port]")
	}

	port := imgfsserver.DefaultPort
	if len(args) >= 3 {
		port = args[2]
	}

	store, err := imgfs.Open(args[1])
	if err != nil {
		return err
	}
	defer store.Close()

	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("listening on port %s: %w", port, err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logf("shutting down")
		ln.Close()
	}()

	logf("serving %s on port %s", args[1], port)
	d := imgfsserver.New(store)
	err = d.Serve(ln)
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, net.ErrClosed) {
		return nil
	}
	return err
}

func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "imgfsd: "+format+"\n", args...)
}
