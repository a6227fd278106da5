// Package profilers sets up profiling for the programs that play many matches.
//
// If linked, it installs the flags -prof (HTTP profiler port) and -cpu_profile (file).
package profilers

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"

	"k8s.io/klog/v2"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, runs the HTTP profiler at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "write cpu profile to `file`")

	cpuProfileFile *os.File
	httpServer     *http.Server
)

// Setup starts the HTTP (flag -prof) and CPU profilers (flag -cpu_profile), if they were configured.
// It should be followed by a deferred call to OnQuit.
func Setup(ctx context.Context) {
	if *flagProfiler >= 0 {
		startHTTPProfiler(ctx, *flagProfiler)
	}
	if *flagCPUProfile != "" {
		startCPUProfile(*flagCPUProfile)
	}
}

// OnQuit stops the profilers started by Setup.
func OnQuit() {
	if cpuProfileFile != nil {
		pprof.StopCPUProfile()
		if err := cpuProfileFile.Close(); err != nil {
			klog.Errorf("Failed to close CPU profile %q: %v", cpuProfileFile.Name(), err)
		}
		cpuProfileFile = nil
	}
	if httpServer != nil {
		_ = httpServer.Close()
		httpServer = nil
	}
}

func startCPUProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		klog.Exitf("Could not create CPU profile: %v", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		klog.Exitf("Could not start CPU profile: %v", err)
	}
	cpuProfileFile = f
}

func startHTTPProfiler(ctx context.Context, port int) {
	addr := fmt.Sprintf("localhost:%d", port)
	httpServer = &http.Server{
		Addr:        addr,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	fmt.Printf("Starting profiler on %s/debug/pprof\n", addr)
	fmt.Printf("- You can access it with: $ go tool pprof %s/debug/pprof/heap\n", addr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Profiler on %s failed: %v", addr, err)
		}
	}()
}
