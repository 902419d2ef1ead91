package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/container/dir"
	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/container/epub"
	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/functions"
	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
	"github.com/custodia-labs/replaca-cli/internal/core/services"
)

// session is one opened book with the engine wired over it.
type session struct {
	workspace *memory.Workspace
	searcher  *services.SearchService
	defaults  domain.Defaults

	// save persists batch changes back to the container; nil when the
	// container writes through (directory and store books).
	save func() error

	// cleanup releases container resources.
	cleanup func() error
}

// openSession builds a workspace and search service over the book
// named by --book, --dir or --store.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := file.NewConfigStore(configFlag)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	s := &session{defaults: cfg.Defaults()}
	container, checkpoints, err := s.openContainer(ctx)
	if err != nil {
		return nil, err
	}

	s.workspace, err = memory.NewWorkspace(ctx, container)
	if err != nil {
		s.close()
		return nil, err
	}
	if checkpoints == nil {
		checkpoints = memory.NewCheckpoints(s.workspace)
	}

	s.searcher = services.NewSearchService(
		s.workspace,
		s.workspace,
		checkpoints,
		functions.NewBuiltinRegistry(),
		services.NewPatternCache(),
	)
	return s, nil
}

// openContainer opens the container the flags name. The returned
// coordinator is non-nil only when the container brings its own
// checkpoint storage.
func (s *session) openContainer(_ context.Context) (driven.Container, driven.CheckpointCoordinator, error) {
	set := 0
	for _, f := range []string{bookFlag, dirFlag, storeFlag} {
		if f != "" {
			set++
		}
	}
	if set > 1 {
		return nil, nil, errors.New("--book, --dir and --store are mutually exclusive")
	}

	switch {
	case bookFlag != "":
		c, err := epub.Open(bookFlag)
		if err != nil {
			return nil, nil, err
		}
		s.save = func() error {
			if !c.Modified() {
				return nil
			}
			return c.Save()
		}
		return c, nil, nil
	case dirFlag != "":
		c, err := dir.Open(dirFlag)
		if err != nil {
			return nil, nil, err
		}
		s.cleanup = c.Close
		return c, nil, nil
	case storeFlag != "":
		st, err := sqlite.NewStore(storeFlag)
		if err != nil {
			return nil, nil, err
		}
		s.cleanup = st.Close
		return st, st.Checkpoints(), nil
	default:
		return nil, nil, errors.New("no book: pass --book <file.epub>, --dir <directory> or --store <data dir>")
	}
}

// persist lands batch changes: live editor buffers are flushed into
// the container first, then containers that batch their writes (EPUB
// zips) are saved. Mutating commands call it after a successful run.
func (s *session) persist(ctx context.Context) error {
	if err := s.workspace.Flush(ctx); err != nil {
		return err
	}
	if s.save != nil {
		return s.save()
	}
	return nil
}

// close releases the session's container resources.
func (s *session) close() {
	if s.cleanup != nil {
		_ = s.cleanup()
	}
}
