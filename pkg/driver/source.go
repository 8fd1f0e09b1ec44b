package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Source is program text together with where it came from.
type Source struct {
	Origin string
	Text   string
}

// LoadFile reads a program from disk.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return &Source{Origin: path, Text: string(data)}, nil
}

// LoadSource resolves a target's program. Path targets are read relative to
// the manifest; git targets read main from the commit named by rev (HEAD by
// default) without touching any worktree.
func LoadSource(m *Manifest, target *Target) (*Source, error) {
	if target == nil {
		return nil, fmt.Errorf("source: nil target")
	}
	if target.Git == "" {
		path := target.Main
		if !filepath.IsAbs(path) && m != nil {
			path = filepath.Join(m.Dir(), path)
		}
		return LoadFile(path)
	}
	repo, location, err := openRepository(m, target.Git)
	if err != nil {
		return nil, err
	}
	rev := target.Rev
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("source: resolve revision %s in %s: %w", rev, location, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("source: load commit %s: %w", hash, err)
	}
	file, err := commit.File(filepath.ToSlash(target.Main))
	if err != nil {
		return nil, fmt.Errorf("source: %s at %s: %w", target.Main, rev, err)
	}
	text, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("source: read %s at %s: %w", target.Main, rev, err)
	}
	return &Source{
		Origin: fmt.Sprintf("%s@%s:%s", location, hash.String()[:12], target.Main),
		Text:   text,
	}, nil
}

func openRepository(m *Manifest, location string) (*git.Repository, string, error) {
	if isRemote(location) {
		repo, err := git.Clone(memory.NewStorage(), nil, &git.CloneOptions{URL: location})
		if err != nil {
			return nil, "", fmt.Errorf("source: git clone %s: %w", location, err)
		}
		return repo, location, nil
	}
	path := location
	if !filepath.IsAbs(path) && m != nil {
		path = filepath.Join(m.Dir(), path)
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", fmt.Errorf("source: open repository %s: %w", path, err)
	}
	return repo, path, nil
}

func isRemote(location string) bool {
	if strings.Contains(location, "://") {
		return true
	}
	// scp-style git@host:path
	at := strings.Index(location, "@")
	colon := strings.Index(location, ":")
	return at > 0 && colon > at
}
