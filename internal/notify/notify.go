// Package notify delivers the audible new-ticket alert. Delivery is best
// effort: a broken audio setup must never break polling, so failures are
// logged at debug level and otherwise swallowed.
package notify

import (
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/camaragestao/gestao/internal/logging"
)

// Notifier alerts the user that a new ticket arrived.
type Notifier interface {
	Alert()
}

// Options configures the default notifier.
type Options struct {
	// Enabled controls whether Alert does anything at all.
	Enabled bool
	// Chime plays the synthesized two-tone chime in addition to the
	// terminal bell.
	Chime  bool
	Logger *logging.Logger

	// out receives the terminal bell. Defaults to os.Stdout.
	out io.Writer
}

// New builds a Notifier from the configuration. With notifications
// disabled it returns a Nop.
func New(opts Options) Notifier {
	if !opts.Enabled {
		return Nop{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	out := opts.out
	if out == nil {
		out = os.Stdout
	}
	return &bell{out: out, chime: opts.Chime, log: log}
}

// bell rings the terminal bell and optionally plays the chime through a
// system audio player.
type bell struct {
	out   io.Writer
	chime bool
	log   *logging.Logger

	once      sync.Once
	chimePath string
}

func (b *bell) Alert() {
	if _, err := b.out.Write([]byte{'\a'}); err != nil {
		b.log.Debug("terminal bell failed", "error", err)
	}
	if b.chime {
		b.playChime()
	}
}

// playChime synthesizes the chime file on first use, then hands it to the
// platform audio player. The player starts in the background so the poll
// loop never waits on audio.
func (b *bell) playChime() {
	b.once.Do(func() {
		path, err := writeChimeFile()
		if err != nil {
			b.log.Debug("chime synthesis failed", "error", err)
			return
		}
		b.chimePath = path
	})
	if b.chimePath == "" {
		return
	}

	player, args := chimePlayer(b.chimePath)
	if player == "" {
		b.log.Debug("no audio player for this platform", "goos", runtime.GOOS)
		return
	}
	if err := exec.Command(player, args...).Start(); err != nil {
		b.log.Debug("chime playback failed", "player", player, "error", err)
	}
}

// chimePlayer picks the platform audio player.
func chimePlayer(path string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "afplay", []string{path}
	case "linux":
		if _, err := exec.LookPath("paplay"); err == nil {
			return "paplay", []string{path}
		}
		if _, err := exec.LookPath("aplay"); err == nil {
			return "aplay", []string{"-q", path}
		}
		return "", nil
	default:
		return "", nil
	}
}

// Nop is a Notifier that does nothing.
type Nop struct{}

func (Nop) Alert() {}

// Recorder counts alerts for tests.
type Recorder struct {
	mu    sync.Mutex
	count int
}

func (r *Recorder) Alert() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
}

// Count returns how many times Alert was called.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
