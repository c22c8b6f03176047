// Command spos-term runs the SPOS kernel over a raw-mode terminal: the
// 2x16 LCD is redrawn as an ANSI box, W/S+Enter+Escape stand in for the
// four push buttons (Tab sends the Up+Down chord), and fatal errors print and block for acknowledgement
// without needing an audio device. Intended for headless hosts and CI
// smoke tests, grounded on terminal_host.go's raw-mode wiring.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/opencore/spos/internal/boot"
	"github.com/opencore/spos/internal/display"
	"github.com/opencore/spos/internal/fault"
	"github.com/opencore/spos/internal/input"
	"github.com/opencore/spos/internal/kernel"
	"github.com/opencore/spos/internal/luaprog"
	"github.com/opencore/spos/internal/taskmgr"
)

func demoPrograms(sched *kernel.Scheduler) []kernel.ProgramFunc {
	src := `poke(0, 0) while true do poke(0, peek(0) + 1) yield() end`
	p, err := luaprog.Compile(sched, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spos-term: compiling demo program: %v\n", err)
		os.Exit(1)
	}
	return []kernel.ProgramFunc{p}
}

func main() {
	strategy := flag.Int("strategy", kernel.StrategyEven, "initial scheduling strategy id (0-4)")
	flag.Parse()

	sched := kernel.NewScheduler()
	reg := &kernel.Registry{}
	for _, p := range demoPrograms(sched) {
		reg.Register(p)
	}
	kernel.InitScheduler(sched, reg)
	sched.SetStrategy(*strategy)

	disp := display.NewTerminal()
	in := input.NewTerminal()
	defer in.Stop()

	tone := fault.NewToner()
	sched.SetFaultHook(func(err *kernel.FatalError) {
		fault.Raise(sched, err, disp, in, tone)
	})

	rt := kernel.NewRuntime(sched)
	for pid := 0; pid < kernel.MaxProcesses; pid++ {
		if sched.GetSlot(pid).State != kernel.Unused {
			rt.Spawn(pid)
		}
	}

	src := boot.NewRealTimeTicks(0)
	boot.StartScheduler(sched, src)
	defer src.Stop()

	mgr := taskmgr.NewManager(sched, disp, in)

	ctx, stopSig := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSig()

	// errgroup runs the driver loop and the signal watcher side by side;
	// whichever returns first cancels ctx for the other, so Ctrl-C during
	// a blocked rt.Drive() still unwinds the process promptly.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return ctx.Err()
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if pid, exited := rt.Drive(); exited {
				sched.Kill(pid)
			}
			mgr.PollAndRun()
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, "spos-term:", err)
	}
}
