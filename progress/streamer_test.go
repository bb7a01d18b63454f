package progress_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/profila/progress"
)

func TestStreamer_AdvanceWithNoSubscribers(t *testing.T) {
	s := progress.NewStreamer("run-1")
	s.Advance(0, "build clusters")
	s.Advance(1, "verify clusters")
	time.Sleep(10 * time.Millisecond)
	s.Close()
}
