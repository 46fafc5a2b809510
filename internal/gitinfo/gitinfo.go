// Package gitinfo resolves the commit SHA a build ran against, for
// provenance stamping on reported results. It is a soft, read-only
// collaborator: a repository that can't be opened, or has no commits
// yet, is not an error the core should surface — it just means no SHA is
// available.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// Info is the provenance the reporter attaches to a build summary.
type Info struct {
	CommitSHA string
	Branch    string
	Dirty     bool
}

// Resolve opens the git repository at root and reads its current HEAD.
// It returns (nil, nil) — not an error — when root is not inside a git
// repository, so callers can treat provenance as purely best-effort.
func Resolve(root string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, nil
		}
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, nil
	}

	info := &Info{CommitSHA: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	worktree, err := repo.Worktree()
	if err == nil {
		status, err := worktree.Status()
		if err == nil {
			info.Dirty = !status.IsClean()
		}
	}

	return info, nil
}
