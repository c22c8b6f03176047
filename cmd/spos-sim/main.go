// Command spos-sim runs the SPOS kernel under an ebiten GUI: the 2x16
// LCD is rendered as a pixel grid, the four buttons are mapped to
// arrow/enter/escape keys, and fatal errors sound an oto-backed alert
// tone. Grounded on the teacher's own main.go wiring-then-run-loop shape
// (construct the backends, wire them into one struct, hand it to
// ebiten.RunGame).
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opencore/spos/internal/boot"
	"github.com/opencore/spos/internal/display"
	"github.com/opencore/spos/internal/fault"
	"github.com/opencore/spos/internal/input"
	"github.com/opencore/spos/internal/kernel"
	"github.com/opencore/spos/internal/luaprog"
	"github.com/opencore/spos/internal/taskmgr"
)

func demoPrograms(sched *kernel.Scheduler) []kernel.ProgramFunc {
	scripts := []string{
		`poke(0, 0) while true do poke(0, peek(0) + 1) yield() end`,
		`poke(1, 0) while true do poke(1, peek(1) + 1) yield() yield() end`,
	}
	var out []kernel.ProgramFunc
	for _, src := range scripts {
		p, err := luaprog.Compile(sched, src)
		if err != nil {
			log.Fatalf("spos-sim: compiling demo program: %v", err)
		}
		out = append(out, p)
	}
	return out
}

type game struct {
	disp *display.Ebiten
	in   *input.Ebiten
	mgr  *taskmgr.Manager
}

func (g *game) Update() error {
	g.in.PollKeys()
	g.mgr.PollAndRun()
	return g.disp.Update()
}

func (g *game) Draw(screen *ebiten.Image) { g.disp.Draw(screen) }
func (g *game) Layout(w, h int) (int, int) { return g.disp.Layout(w, h) }

func main() {
	sched := kernel.NewScheduler()
	reg := &kernel.Registry{}
	for _, p := range demoPrograms(sched) {
		reg.Register(p)
	}
	kernel.InitScheduler(sched, reg)

	disp := display.NewEbiten()
	in := input.NewEbiten()
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
	go func() {
		for {
			if pid, exited := rt.Drive(); exited {
				sched.Kill(pid)
			}
		}
	}()

	mgr := taskmgr.NewManager(sched, disp, in)
	ebiten.SetWindowTitle("SPOS simulator")
	if err := ebiten.RunGame(&game{disp: disp, in: in, mgr: mgr}); err != nil {
		log.Fatal(err)
	}
}
