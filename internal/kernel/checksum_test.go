package kernel

import "testing"

func TestFoldChecksumEmpty(t *testing.T) {
	if got := foldChecksum(nil); got != 0 {
		t.Fatalf("fold of empty region: got %d want 0", got)
	}
}

func TestFoldChecksumSingleBitFlipDetected(t *testing.T) {
	region := make([]byte, 16)
	base := foldChecksum(region)
	for i := range region {
		for bit := 0; bit < 8; bit++ {
			flipped := append([]byte(nil), region...)
			flipped[i] ^= 1 << bit
			if foldChecksum(flipped) == base {
				t.Fatalf("single bit flip at byte %d bit %d was not detected", i, bit)
			}
		}
	}
}

// Documented collision class: flipping the same bit position in two
// bytes eight positions apart (one full rotation cycle) is permitted to
// go undetected.
func TestFoldChecksumSymmetricFlipMayCollide(t *testing.T) {
	region := make([]byte, 16)
	base := foldChecksum(region)
	flipped := append([]byte(nil), region...)
	flipped[0] ^= 1
	flipped[8] ^= 1
	if foldChecksum(flipped) != base {
		t.Fatalf("expected the documented 8-byte-apart collision, got a detected flip instead")
	}
}

// Scenario 6: stack-checksum single-bit flip detection via the
// scheduler's resume-time comparison.
func TestStackChecksumViolationOnResume(t *testing.T) {
	s := newTestScheduler()
	victim := s.Exec(noop, 1)
	if victim == InvalidPID {
		t.Fatal("exec failed")
	}

	slot := s.GetSlot(victim)
	// Flip a bit inside the live region [sp+1, bottom].
	idx := slot.SP + 5

	var raised *FatalError
	s.SetFaultHook(func(e *FatalError) { raised = e })

	slot.Stack[idx] ^= 1

	// Drive the scheduler until it selects victim.
	for i := 0; i < MaxProcesses*4 && raised == nil; i++ {
		s.Tick()
	}

	if raised == nil {
		t.Fatal("expected a StackChecksumViolation to be raised")
	}
	if raised.Kind != StackChecksumViolation {
		t.Fatalf("expected StackChecksumViolation, got %v", raised.Kind)
	}
	if raised.PID != victim {
		t.Fatalf("expected offending pid %d, got %d", victim, raised.PID)
	}
}

// A bit flip above the live region (between the top of the stack and
// sp, i.e. free space the process has not pushed into yet) must not
// raise a violation.
func TestStackChecksumIgnoresBitsAboveSP(t *testing.T) {
	s := newTestScheduler()
	victim := s.Exec(noop, 1)
	slot := s.GetSlot(victim)

	if slot.SP == 0 {
		t.Skip("no free space above sp to flip in this configuration")
	}

	raised := false
	s.SetFaultHook(func(e *FatalError) { raised = true })

	slot.Stack[0] ^= 1 // strictly above sp (index 0 < SP for any real frame)

	for i := 0; i < MaxProcesses*4; i++ {
		s.Tick()
	}

	if raised {
		t.Fatalf("flipping a bit above sp incorrectly raised a checksum violation")
	}
}
