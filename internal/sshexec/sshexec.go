// Package sshexec launches interactive SSH sessions for stored credentials.
//
// Password-based SSH cannot be fed a password on stdin, so the launcher
// shells out to sshpass. The password travels in the SSHPASS environment
// variable of the child only; it never appears in argv, where any local user
// could read it from the process table.
package sshexec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/portkeyhq/portkey/internal/config"
	"github.com/portkeyhq/portkey/pkg/vault"
)

// ErrSSHPassNotFound means the sshpass binary is not on PATH.
var ErrSSHPassNotFound = errors.New("sshexec: sshpass not found in PATH (install sshpass to use connect)")

// Launcher starts an interactive SSH session for a record and reports the
// child exit code.
type Launcher interface {
	Connect(ctx context.Context, r *vault.CredentialRecord) (int, error)
}

// SSHPass launches sessions through the sshpass binary.
type SSHPass struct {
	cfg config.SSHConfig

	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// NewSSHPass returns a launcher using the given SSH options.
func NewSSHPass(cfg config.SSHConfig) *SSHPass {
	return &SSHPass{cfg: cfg, lookPath: exec.LookPath}
}

// args builds the sshpass argv for a record. The password is deliberately
// absent; it goes through the environment.
func (l *SSHPass) args(r *vault.CredentialRecord) []string {
	args := []string{
		"-e",
		"ssh",
		"-tt",
		fmt.Sprintf("%s@%s", r.Username, r.Host),
		"-p", strconv.Itoa(int(r.Port)),
	}
	if !l.cfg.StrictHostKeyChecking {
		args = append(args, "-o", "StrictHostKeyChecking=no")
	}
	args = append(args, l.cfg.ExtraArgs...)
	return args
}

// Connect runs sshpass with the terminal attached and blocks until the
// session ends. The returned int is the remote shell's exit code; a nonzero
// code is not an error here, only a failure to launch is.
func (l *SSHPass) Connect(ctx context.Context, r *vault.CredentialRecord) (int, error) {
	path, err := l.lookPath("sshpass")
	if err != nil {
		return -1, ErrSSHPassNotFound
	}

	cmd := exec.CommandContext(ctx, path, l.args(r)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "SSHPASS="+string(r.Password))

	err = cmd.Run()
	// The child env copy is gone once the process exits; the session-owned
	// Secret buffer is wiped by the caller's session Close.
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("sshexec: failed to launch ssh session: %w", err)
	}
	return 0, nil
}
