package audio

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Player plays audio files with an external command.
type Player struct {
	command string
	args    []string
}

// NewPlayer creates a player. An empty command picks a player for the
// platform from PATH.
func NewPlayer(command string) (*Player, error) {
	if command != "" {
		fields := strings.Fields(command)
		return &Player{command: fields[0], args: fields[1:]}, nil
	}

	switch runtime.GOOS {
	case "darwin":
		return &Player{command: "afplay"}, nil
	case "linux", "freebsd", "openbsd":
		candidates := []Player{
			{command: "mpg123", args: []string{"-q"}},
			{command: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
			{command: "play", args: []string{"-q"}},
			{command: "paplay"},
			{command: "aplay", args: []string{"-q"}},
		}
		for _, c := range candidates {
			if _, err := exec.LookPath(c.command); err == nil {
				return &c, nil
			}
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Command returns the player binary.
func (p *Player) Command() string { return p.command }

// Play blocks until the file has been played or ctx is done.
func (p *Player) Play(ctx context.Context, file string) error {
	args := append(append([]string(nil), p.args...), file)
	if output, err := exec.CommandContext(ctx, p.command, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", p.command, err, string(output))
	}
	return nil
}

// PlaybackSpeaker renders text with a Provider and plays the file.
type PlaybackSpeaker struct {
	provider Provider
	player   *Player
	dir      string
}

// NewPlaybackSpeaker creates a speaker that keeps rendered files in dir. An
// empty dir uses a per-user temporary directory.
func NewPlaybackSpeaker(provider Provider, player *Player, dir string) *PlaybackSpeaker {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "vocadrill-audio")
	}
	return &PlaybackSpeaker{provider: provider, player: player, dir: dir}
}

// Speak renders the text unless a file for it already exists, then plays it.
func (s *PlaybackSpeaker) Speak(ctx context.Context, text string) error {
	file := s.fileFor(text)
	if _, err := os.Stat(file); err != nil {
		if err := s.provider.GenerateAudio(ctx, text, file); err != nil {
			return fmt.Errorf("%s: %w", s.provider.Name(), err)
		}
	}
	return s.player.Play(ctx, file)
}

func (s *PlaybackSpeaker) fileFor(text string) string {
	sum := md5.Sum([]byte(s.provider.Name() + "\x00" + text))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".mp3")
}
