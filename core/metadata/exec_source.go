package metadata

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
)

// ExecSource runs an introspection command with the target appended as its
// last argument and decodes the dump it prints on stdout.
type ExecSource struct {
	Command string
	Dir     string
	exec    *ExecutionContext
}

func NewExecSource(command string) *ExecSource {
	return &ExecSource{Command: command, exec: DefaultExecutionContext()}
}

func (s *ExecSource) WithExecutionContext(ec *ExecutionContext) *ExecSource {
	s.exec = ec
	return s
}

func (s *ExecSource) Open(ctx context.Context, target string) (Session, error) {
	args, err := shellquote.Split(s.Command)
	if err != nil {
		return nil, errors.WrapMetadata(err, "invalid introspection command %q", s.Command)
	}
	if len(args) == 0 {
		return nil, errors.WithHint(
			errors.Metadataf("no introspection command configured"),
			"set source.command in pyns.yaml or pass --command",
		)
	}

	release, err := s.exec.Acquire(ctx)
	if err != nil {
		return nil, errors.WrapMetadata(err, "failed to acquire execution context for %s", target)
	}

	dump, err := s.run(ctx, args, target)
	if err != nil {
		release()
		return nil, err
	}
	dump.Module.Target = target
	return &dumpSession{dump: dump, release: release}, nil
}

func (s *ExecSource) run(ctx context.Context, args []string, target string) (*Dump, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], target)...)
	cmd.Dir = s.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running introspection command: %s %s", s.Command, target)
	if err := cmd.Run(); err != nil {
		return nil, errors.WrapMetadata(err, "introspection of %s failed: %s", target, strings.TrimSpace(stderr.String()))
	}

	dump, err := Decode(stdout.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "decode output of %q", s.Command)
	}
	return dump, nil
}
