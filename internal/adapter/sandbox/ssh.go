package sandbox

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/core"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/autodebugdev/autodebug/internal/variable"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultSSHPort = 22

// SSHRunner executes the target file on a remote host over SSH. The
// target path must be valid on the remote side; the runner does not
// copy files.
type SSHRunner struct {
	cfg     config.SSHConfig
	timeout time.Duration
}

var _ core.SandboxRunner = (*SSHRunner)(nil)

// NewSSH creates an SSHRunner from the sandbox config.
func NewSSH(cfg config.SandboxConfig) *SSHRunner {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SSHRunner{cfg: cfg.Transport.SSH, timeout: timeout}
}

// Execute runs the file's language command on the remote host. All
// connection and execution faults are normalized into the diagnostics
// triple, matching the local runner's contract.
func (r *SSHRunner) Execute(ctx context.Context, path string, language lang.Language) core.Diagnostics {
	resolved := variable.Resolve(language.Run, map[string]string{"FILE": path})

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	client, err := r.dial(runCtx)
	if err != nil {
		return core.Diagnostics{ExitCode: 1, Stderr: "ssh: " + err.Error()}
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return core.Diagnostics{ExitCode: 1, Stderr: "ssh session: " + err.Error()}
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- session.Run(resolved)
	}()

	select {
	case <-runCtx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return core.Diagnostics{
			ExitCode: 1,
			Stderr:   timeoutDiagnostic,
			TimedOut: true,
		}
	case err = <-done:
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return core.Diagnostics{
				ExitCode: exitErr.ExitStatus(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}
		if strings.Contains(err.Error(), "not found") {
			return core.Diagnostics{
				ExitCode: 1,
				Stderr:   "CRITICAL ERROR: Runtime not found for command: " + commandName(resolved),
			}
		}
		return core.Diagnostics{ExitCode: 1, Stderr: err.Error()}
	}

	return core.Diagnostics{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}

func (r *SSHRunner) dial(ctx context.Context) (*ssh.Client, error) {
	authMethods := make([]ssh.AuthMethod, 0, 2)

	if r.cfg.Key != "" {
		keyPath, err := resolveSSHKeyPath(r.cfg.Key)
		if err != nil {
			return nil, err
		}
		keyBytes, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, err
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, err
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	if r.cfg.Password != "" {
		authMethods = append(authMethods, ssh.Password(r.cfg.Password))
	}

	if len(authMethods) == 0 {
		return nil, errors.New("auth requires key or password")
	}

	hostKeyCallback, err := r.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	dialTimeout := 30 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, ctx.Err()
		}
		dialTimeout = remaining
	}

	sshConfig := &ssh.ClientConfig{
		User:            r.cfg.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	port := r.cfg.Port
	if port == 0 {
		port = defaultSSHPort
	}
	addr := net.JoinHostPort(r.cfg.Host, strconv.Itoa(port))

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, err
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

func (r *SSHRunner) hostKeyCallback() (ssh.HostKeyCallback, error) {
	path := r.cfg.KnownHosts
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	return knownhosts.New(path)
}

// resolveSSHKeyPath expands a leading ~ to the user's home directory.
func resolveSSHKeyPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
