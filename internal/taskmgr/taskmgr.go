// Package taskmgr implements a menu UI over the scheduler API: a
// scrollable process list with kill and strategy-cycle operations
// (spec.md §1 "menu/task-manager UI", out of the core's scope but named
// as an external collaborator the core exposes IsTaskmanagerOpen for).
package taskmgr

import (
	"fmt"

	"github.com/opencore/spos/internal/display"
	"github.com/opencore/spos/internal/input"
	"github.com/opencore/spos/internal/kernel"
)

// OpenChord is the button combination that opens and closes the task
// manager.
const OpenChord = input.Up | input.Down

// strategyNames mirrors spec.md §6's wire-stable strategy enumeration.
var strategyNames = [...]string{
	kernel.StrategyEven:            "Even",
	kernel.StrategyRandom:          "Random",
	kernel.StrategyRunToCompletion: "RunToComp",
	kernel.StrategyRoundRobin:      "RoundRobin",
	kernel.StrategyInactiveAging:   "InacAging",
}

// Manager polls in for OpenChord; while open it renders the process
// table to disp and dispatches Enter (kill the selected pid) and the
// strategy-cycle button. Grounded on CoprocessorManager's
// GetActiveWorkers/StopAll read-then-act methods, repurposed from
// listing coprocessor workers to listing process-table rows.
type Manager struct {
	sched    *kernel.Scheduler
	disp     display.Sink
	in       input.Source
	selected int
}

// NewManager returns a Manager wired to sched's process table.
func NewManager(sched *kernel.Scheduler, disp display.Sink, in input.Source) *Manager {
	return &Manager{sched: sched, disp: disp, in: in}
}

// PollAndRun checks for OpenChord and, if seen, opens the menu and
// blocks until the user closes it again. Call it once per scheduler
// tick (or once per UI frame) from the front end's main loop.
func (m *Manager) PollAndRun() {
	if m.in.Poll()&OpenChord != OpenChord {
		return
	}
	m.in.WaitForNoInput()
	m.run()
}

func (m *Manager) run() {
	m.sched.SetTaskmanagerOpen(true)
	defer m.sched.SetTaskmanagerOpen(false)

	for {
		m.render()
		b := m.in.WaitForInput()
		m.in.WaitForNoInput()

		switch {
		case b&OpenChord == OpenChord:
			return
		case b&input.Up != 0:
			if m.selected > 0 {
				m.selected--
			}
		case b&input.Down != 0:
			if m.selected < kernel.MaxProcesses-1 {
				m.selected++
			}
		case b&input.Enter != 0:
			if m.selected != 0 { // never allow killing idle from the menu
				m.sched.Kill(m.selected)
			}
		case b&input.Escape != 0:
			id := (m.sched.GetStrategy() + 1) % len(strategyNames)
			m.sched.SetStrategy(id)
		}
	}
}

func (m *Manager) render() {
	m.disp.Clear()
	p := m.sched.GetSlot(m.selected)
	m.disp.Goto(0, 0)
	m.disp.WriteString(fmt.Sprintf("P%d %-7s pr%-3d", m.selected, stateName(p.State), p.Priority))
	m.disp.Goto(1, 0)
	m.disp.WriteString(fmt.Sprintf("cs%-3d %s", m.sched.StackChecksum(m.selected), strategyNames[m.sched.GetStrategy()]))
}

func stateName(s kernel.State) string {
	return s.String()
}
