package project

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/buildgraph/projfile/internal/buildlog"
	"github.com/buildgraph/projfile/internal/language"
	"github.com/buildgraph/projfile/pkg/model"
	"github.com/buildgraph/projfile/pkg/snapshot"
)

// Snapshots drives the model through one build pass per declared target and
// returns the resulting snapshots in declared order.
//
// When the single-target property is unset but the multi-target property
// declares a semicolon-delimited list, each token is built in turn by
// temporarily overwriting the single-target property and forcing
// re-evaluation. The property is restored afterwards — to its original value
// if it existed, otherwise removed — no matter how the loop exits, and the
// model is re-evaluated once more so callers observe its original state.
//
// A per-target build failure degrades to an empty sentinel snapshot carrying
// the accumulated diagnostics; sibling targets still run. Cancellation is
// observed between iterations only.
func (f *File) Snapshots(ctx context.Context) ([]*snapshot.Snapshot, error) {
	session := uuid.NewString()
	logger := f.logger.With("session", session, "project", f.m.Path())

	single, hadSingle := f.m.Property(model.PropertyTargetFramework)
	multi, _ := f.m.Property(model.PropertyTargetFrameworks)

	if single == "" && multi != "" {
		if targets := splitTargets(multi); len(targets) > 0 {
			logger.Debug("fanning out over targets", "targets", targets)
			return f.fanOut(ctx, logger, session, targets, single, hadSingle)
		}
	}

	log := &buildlog.Log{}
	return []*snapshot.Snapshot{f.buildTarget(ctx, logger, session, log)}, nil
}

func (f *File) fanOut(ctx context.Context, logger *slog.Logger, session string, targets []string, original string, hadOriginal bool) (snaps []*snapshot.Snapshot, err error) {
	defer func() {
		if hadOriginal {
			f.m.SetProperty(model.PropertyTargetFramework, original)
		} else {
			f.m.RemoveProperty(model.PropertyTargetFramework)
		}
		if rerr := f.m.Reevaluate(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	for _, target := range targets {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		f.m.SetProperty(model.PropertyTargetFramework, target)
		if rerr := f.m.Reevaluate(); rerr != nil {
			return nil, rerr
		}
		log := &buildlog.Log{}
		snaps = append(snaps, f.buildTarget(ctx, logger, session, log))
	}
	return snaps, nil
}

// buildTarget runs one build pass over the model's current state. A delegate
// that produces no executed snapshot yields the empty sentinel instead of an
// error.
func (f *File) buildTarget(ctx context.Context, logger *slog.Logger, session string, log *buildlog.Log) *snapshot.Snapshot {
	exec := f.delegate.Build(ctx, f.m, log)
	if exec == nil {
		logger.Warn("build produced no snapshot, emitting empty sentinel", "diagnostics", log.Len())
		return f.lang.Empty(f.m.Path(), log, session)
	}
	env := &language.Env{
		Path:      f.m.Path(),
		Norm:      f.norm,
		Generated: f.gen,
		SessionID: session,
	}
	return f.lang.FromExecuted(exec, env, log)
}

// splitTargets splits a semicolon-delimited target list, dropping empty and
// whitespace-only tokens while preserving declared order.
func splitTargets(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ";") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
