package shared_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/rom-sync/internal/syncengine"
	"github.com/joe/rom-sync/internal/tui/shared"
)

// TestEventBridge_ImplementsEventEmitter verifies the bridge implements EventEmitter.
func TestEventBridge_ImplementsEventEmitter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	var emitter syncengine.EventEmitter = bridge
	g.Expect(emitter).ToNot(BeNil())
}

// TestEventBridge_EmitSendsToChan verifies events are sent to the channel.
func TestEventBridge_EmitSendsToChan(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	eventChan := bridge.Subscribe()

	bridge.Emit(syncengine.SystemScanned{DirName: "Game Boy (GB)", FileCount: 3})

	select {
	case msg := <-eventChan:
		eventMsg, ok := msg.(shared.EngineEventMsg)
		g.Expect(ok).To(BeTrue(), "Expected EngineEventMsg")

		scanned, ok := eventMsg.Event.(syncengine.SystemScanned)
		g.Expect(ok).To(BeTrue(), "Expected SystemScanned event")
		g.Expect(scanned.DirName).To(Equal("Game Boy (GB)"))
		g.Expect(scanned.FileCount).To(Equal(3))
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timed out waiting for event")
	}
}

// TestEventBridge_MultipleEvents verifies multiple events are received in order.
func TestEventBridge_MultipleEvents(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	bridge.Emit(syncengine.ScanStarted{})
	bridge.Emit(syncengine.SystemScanned{DirName: "Game Boy (GB)", FileCount: 1})
	bridge.Emit(syncengine.ScanComplete{Systems: 1, Files: 1})

	eventChan := bridge.Subscribe()

	first := (<-eventChan).(shared.EngineEventMsg)
	g.Expect(first.Event).To(BeAssignableToTypeOf(syncengine.ScanStarted{}))

	second := (<-eventChan).(shared.EngineEventMsg)
	g.Expect(second.Event).To(BeAssignableToTypeOf(syncengine.SystemScanned{}))

	third := (<-eventChan).(shared.EngineEventMsg)
	g.Expect(third.Event).To(BeAssignableToTypeOf(syncengine.ScanComplete{}))
}

// TestEventBridge_ListenCmdReturnsEvent verifies ListenCmd blocks until an event arrives.
func TestEventBridge_ListenCmdReturnsEvent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	bridge.Emit(syncengine.TransferStarted{Selected: 2})

	msg := bridge.ListenCmd()()
	eventMsg, ok := msg.(shared.EngineEventMsg)
	g.Expect(ok).To(BeTrue())
	g.Expect(eventMsg.Event).To(Equal(syncengine.TransferStarted{Selected: 2}))
}

// TestEventBridge_EmitAfterCloseIsNoop verifies Emit after Close does not panic.
func TestEventBridge_EmitAfterCloseIsNoop(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	bridge.Close()

	bridge.Emit(syncengine.ScanStarted{})

	_, ok := <-bridge.Subscribe()
	g.Expect(ok).To(BeFalse(), "Expected closed channel")
}

// TestEventBridge_FullChannelDropsEvent verifies Emit never blocks the engine.
func TestEventBridge_FullChannelDropsEvent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; i < 500; i++ {
			bridge.Emit(syncengine.SystemScanned{DirName: "Game Boy (GB)", FileCount: i})
		}
	}()

	select {
	case <-done:
		// Emit stayed non-blocking even with no consumer
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full channel")
	}

	g.Expect(len(bridge.Subscribe())).To(Equal(100))
}
