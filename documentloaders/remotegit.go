package documentloaders

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	git "github.com/go-git/go-git/v5"

	"github.com/sevigo/gochunk/schema"
)

// RemoteGitLoader shallow-clones a remote repository into a temporary
// directory, loads it like a local directory, and cleans up afterwards.
type RemoteGitLoader struct {
	repoURL string
	logger  *slog.Logger
}

var _ Loader = (*RemoteGitLoader)(nil)

// NewRemoteGit creates a loader for the given repository URL. A nil
// logger falls back to slog.Default.
func NewRemoteGit(repoURL string, logger *slog.Logger) *RemoteGitLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteGitLoader{
		repoURL: repoURL,
		logger:  logger.With("component", "remote_git_loader"),
	}
}

// Load clones and reads the repository. Every document is tagged with the
// original repository URL.
func (l *RemoteGitLoader) Load(ctx context.Context) ([]schema.Document, error) {
	tempPath, cleanup, err := l.clone(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	documents, err := NewDirectory(tempPath, WithLogger(l.logger)).Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range documents {
		documents[i].Metadata["original_source_url"] = l.repoURL
	}
	return documents, nil
}

// clone checks the repository out at depth 1 into a temporary directory
// and returns the path together with its cleanup function.
func (l *RemoteGitLoader) clone(ctx context.Context) (string, func(), error) {
	tempPath, err := os.MkdirTemp("", "gochunk-repo-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp directory: %w", err)
	}

	cleanup := func() {
		_ = os.RemoveAll(tempPath)
	}

	l.logger.InfoContext(ctx, "Cloning repository", "url", l.repoURL, "path", tempPath)
	_, err = git.PlainCloneContext(ctx, tempPath, false, &git.CloneOptions{
		URL:   l.repoURL,
		Depth: 1,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("clone repo %q: %w", l.repoURL, err)
	}

	return tempPath, cleanup, nil
}
