package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const (
	historyDirName = ".history"
	historyAuthor  = "seed"
	historyEmail   = "seed@local"
)

// History is an opt-in audit trail of the store root: a git repository whose
// object storage lives under <root>/.history with the store root as its
// worktree. Every successful mutation is committed so that a store can be
// inspected and rolled back with ordinary git tooling.
type History struct {
	repo     *git.Repository
	worktree *git.Worktree
	base     string
}

type Commit struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEnabled reports whether InitHistory has run for this root.
func HistoryEnabled(base string) bool {
	info, err := os.Stat(filepath.Join(base, historyDirName))
	return err == nil && info.IsDir()
}

// InitHistory creates the repository and its initial commit.
func InitHistory(base string) error {
	histPath := filepath.Join(base, historyDirName)
	if err := os.MkdirAll(histPath, 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	fs := osfs.New(histPath)
	storage := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
	wt := osfs.New(base)

	repo, err := git.Init(storage, wt)
	if err != nil {
		return fmt.Errorf("init history repository: %w", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}
	cfg.Init.DefaultBranch = "main"
	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("set config: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}
	excludeGitdir(worktree)

	markerPath := filepath.Join(base, ".seedbed")
	if err := os.WriteFile(markerPath, []byte("seed store history initialized\n"), 0644); err != nil {
		return fmt.Errorf("write marker file: %w", err)
	}
	if _, err := worktree.Add(".seedbed"); err != nil {
		return fmt.Errorf("stage marker file: %w", err)
	}

	_, err = worktree.Commit("init: seed store history", &git.CommitOptions{
		Author: &object.Signature{Name: historyAuthor, Email: historyEmail, When: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	return nil
}

// OpenHistory opens an initialized history repository.
func OpenHistory(base string) (*History, error) {
	histPath := filepath.Join(base, historyDirName)
	if _, err := os.Stat(histPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("history not initialized: %s", histPath)
	}

	fs := osfs.New(histPath)
	storage := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
	wt := osfs.New(base)

	repo, err := git.Open(storage, wt)
	if err != nil {
		return nil, fmt.Errorf("open history repository: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}
	excludeGitdir(worktree)

	return &History{repo: repo, worktree: worktree, base: base}, nil
}

// excludeGitdir keeps the object database out of its own worktree: without
// the pattern, status reports .history as untracked forever and every commit
// would snapshot the growing object store into itself.
func excludeGitdir(worktree *git.Worktree) {
	worktree.Excludes = append(worktree.Excludes,
		gitignore.ParsePattern("/"+historyDirName+"/", nil))
}

// Record stages everything under the store root and commits it. A clean
// worktree is not an error; it returns nil.
func (h *History) Record(message string) (*Commit, error) {
	status, err := h.worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	if status.IsClean() {
		return nil, nil
	}

	if err := h.worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("stage changes: %w", err)
	}

	hash, err := h.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: historyAuthor, Email: historyEmail, When: time.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	commit, err := h.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get commit: %w", err)
	}
	return toCommit(commit), nil
}

// Log returns the newest commits, up to limit (0 means all).
func (h *History) Log(limit int) ([]*Commit, error) {
	iter, err := h.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	var commits []*Commit
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && count >= limit {
			return io.EOF
		}
		commits = append(commits, toCommit(c))
		count++
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, err
	}
	return commits, nil
}

// Diff renders the patch between ref and HEAD.
func (h *History) Diff(ref string) (string, error) {
	head, err := h.repo.Head()
	if err != nil {
		return "", fmt.Errorf("get HEAD: %w", err)
	}
	headCommit, err := h.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("get HEAD commit: %w", err)
	}

	resolved, err := h.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("resolve ref: %w", err)
	}
	targetCommit, err := h.repo.CommitObject(*resolved)
	if err != nil {
		return "", fmt.Errorf("get target commit: %w", err)
	}

	headTree, err := headCommit.Tree()
	if err != nil {
		return "", fmt.Errorf("get HEAD tree: %w", err)
	}
	targetTree, err := targetCommit.Tree()
	if err != nil {
		return "", fmt.Errorf("get target tree: %w", err)
	}

	changes, err := targetTree.Diff(headTree)
	if err != nil {
		return "", fmt.Errorf("diff trees: %w", err)
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("get patch: %w", err)
	}
	return patch.String(), nil
}

func toCommit(c *object.Commit) *Commit {
	return &Commit{
		Hash:      c.Hash.String(),
		Message:   c.Message,
		Timestamp: c.Author.When,
	}
}
