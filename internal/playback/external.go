package playback

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// ExternalPlayer plays media by spawning an external player process
// (mpv by default). Seek is recorded and handed to the process as a
// start offset; Pause kills the process.
type ExternalPlayer struct {
	command []string
	logger  *zap.Logger

	offset float64
	cmd    *exec.Cmd
}

// NewExternalPlayer builds a player around the given command line. The
// first element is the binary, the rest are fixed arguments.
func NewExternalPlayer(command []string, logger *zap.Logger) *ExternalPlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExternalPlayer{command: command, logger: logger}
}

// Seek records the start offset for the next Play. The process model
// has no live seek, so this returns once the offset is staged, which
// satisfies the seek-before-play ordering.
func (p *ExternalPlayer) Seek(url string, seconds float64) error {
	p.offset = seconds
	return nil
}

// Play spawns the player process for url. Any previous process is
// stopped first so at most one plays at a time.
func (p *ExternalPlayer) Play(url string, opts Options) error {
	if len(p.command) == 0 {
		return fmt.Errorf("no player command configured")
	}
	_ = p.Pause()

	args := append([]string{}, p.command[1:]...)
	if p.offset > 0 {
		args = append(args, fmt.Sprintf("--start=%g", p.offset))
	}
	if opts.Loop {
		args = append(args, "--loop-file=inf")
	}
	if opts.Muted {
		args = append(args, "--mute=yes")
	}
	args = append(args, url)

	cmd := exec.Command(p.command[0], args...)
	if err := cmd.Start(); err != nil {
		p.logger.Warn("player start failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("start player: %w", err)
	}
	p.cmd = cmd
	p.offset = 0
	go func() { _ = cmd.Wait() }()
	return nil
}

// Pause stops the current player process, if any.
func (p *ExternalPlayer) Pause() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	err := p.cmd.Process.Kill()
	p.cmd = nil
	if err != nil {
		return fmt.Errorf("stop player: %w", err)
	}
	return nil
}
