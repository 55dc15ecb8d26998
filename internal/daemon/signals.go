package daemon

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jmylchreest/glance/internal/config"
	"github.com/jmylchreest/glance/internal/history"
)

// SignalTriggers maps real-time signals (SIGRTMIN + offset) to triggers.
func SignalTriggers(cfg config.SignalConfig) map[os.Signal]history.Trigger {
	return map[os.Signal]history.Trigger{
		syscall.Signal(config.SigRTMin + cfg.MarkRead): history.TriggerMarkRead,
		syscall.Signal(config.SigRTMin + cfg.Previous): history.TriggerPrevious,
		syscall.Signal(config.SigRTMin + cfg.Next):     history.TriggerNext,
	}
}

// NotifySignals subscribes to every signal in triggers. The returned stop
// function unsubscribes.
func NotifySignals(triggers map[os.Signal]history.Trigger) (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, len(triggers))
	sigs := make([]os.Signal, 0, len(triggers))
	for sig := range triggers {
		sigs = append(sigs, sig)
	}
	signal.Notify(ch, sigs...)
	return ch, func() { signal.Stop(ch) }
}

// SignalHandler returns a Loop signal handler applying the mapped trigger.
// It runs on the loop goroutine and calls the Service directly.
func (s *Service) SignalHandler(triggers map[os.Signal]history.Trigger) func(os.Signal) {
	return func(sig os.Signal) {
		t, ok := triggers[sig]
		if !ok {
			s.logger.Debug("ignoring unmapped signal", "signal", sig)
			return
		}
		s.logger.Debug("signal received", "signal", sig, "trigger", t.String())
		s.Trigger(t)
	}
}
