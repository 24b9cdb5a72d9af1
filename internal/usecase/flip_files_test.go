package usecase

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/infra/fsdoc"
)

func header(guard, include string) []string {
	return []string{
		"#ifndef " + guard + "\n",
		"#define " + guard + "\n",
		"#include " + include + "\n",
		"int x = 1;\n",
		"#endif",
	}
}

func TestFlipFiles_InPlace(t *testing.T) {
	store := newMemStore(map[string][]string{
		"wg_chain.h": header("WG_CHAIN_DOT_H", "<wg_object.h>"),
	})
	var progress bytes.Buffer

	uc := NewFlipFiles(store, WithProgress(&progress))
	run, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{"wg_chain.h"}, Mode: domain.ModeInPlace})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"#ifndef WG3_CHAIN_DOT_H\n",
		"#define WG3_CHAIN_DOT_H\n",
		"#include <wg3_object.h>\n",
		"int x = 1;\n",
		"#endif",
	}
	if !reflect.DeepEqual(store.files["wg_chain.h"], want) {
		t.Fatalf("got %q", store.files["wg_chain.h"])
	}
	if progress.String() != "Flipping includes: wg_chain.h\n" {
		t.Fatalf("unexpected progress output %q", progress.String())
	}

	if len(run.Files) != 1 {
		t.Fatalf("expected 1 file result, got %d", len(run.Files))
	}
	f := run.Files[0]
	if !f.Written || f.Renamed || f.NewPath != "wg_chain.h" {
		t.Fatalf("unexpected result: %+v", f)
	}
	if len(f.Changes) != 3 {
		t.Fatalf("expected 3 changed lines, got %d", len(f.Changes))
	}
}

func TestFlipFiles_RenameWritesBeforeRemoving(t *testing.T) {
	store := newMemStore(map[string][]string{
		"src/wg3_chain.h": header("WG3_CHAIN_DOT_H", "<wg3_object.h>"),
	})
	var progress bytes.Buffer

	uc := NewFlipFiles(store, WithProgress(&progress))
	run, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{"src/wg3_chain.h"}, Mode: domain.ModeRename})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.paths(); !reflect.DeepEqual(got, []string{"src/wg_chain.h"}) {
		t.Fatalf("unexpected files: %v", got)
	}
	if !reflect.DeepEqual(store.files["src/wg_chain.h"], header("WG_CHAIN_DOT_H", "<wg_object.h>")) {
		t.Fatalf("unexpected content: %q", store.files["src/wg_chain.h"])
	}
	wantOps := []string{"read src/wg3_chain.h", "write src/wg_chain.h", "remove src/wg3_chain.h"}
	if !reflect.DeepEqual(store.ops, wantOps) {
		t.Fatalf("ops = %v, want %v", store.ops, wantOps)
	}
	if progress.Len() != 0 {
		t.Fatalf("rename mode must be silent, got %q", progress.String())
	}
	if !run.Files[0].Renamed {
		t.Fatalf("expected renamed result")
	}
}

func TestFlipFiles_RenameWithoutPrefixKeepsFile(t *testing.T) {
	store := newMemStore(map[string][]string{
		"main.cpp": {"#include <wg_gfx.h>\n"},
	})

	uc := NewFlipFiles(store)
	run, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{"main.cpp"}, Mode: domain.ModeRename})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(store.files["main.cpp"], []string{"#include <wg3_gfx.h>\n"}) {
		t.Fatalf("unexpected content: %q", store.files["main.cpp"])
	}
	if run.Files[0].Renamed {
		t.Fatalf("same target path must not count as a rename")
	}
	for _, op := range store.ops {
		if op == "remove main.cpp" {
			t.Fatalf("file must not be removed when the name does not change")
		}
	}
}

func TestFlipFiles_DryRunWritesNothing(t *testing.T) {
	orig := header("WG_A_DOT_H", "<wg_b.h>")
	store := newMemStore(map[string][]string{"wg_a.h": orig})
	var progress bytes.Buffer
	journal := &fakeJournal{}

	uc := NewFlipFiles(store, WithProgress(&progress), WithJournal(journal))
	run, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{"wg_a.h"}, Mode: domain.ModeRename, DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(store.paths(), []string{"wg_a.h"}) {
		t.Fatalf("dry run must not touch files: %v", store.paths())
	}
	if !reflect.DeepEqual(store.files["wg_a.h"], orig) {
		t.Fatalf("dry run changed content")
	}
	f := run.Files[0]
	if f.Written || f.Renamed {
		t.Fatalf("dry run result must not be written: %+v", f)
	}
	if f.NewPath != "wg3_a.h" {
		t.Fatalf("expected planned new path, got %s", f.NewPath)
	}
	if !reflect.DeepEqual(f.Before, orig) || len(f.After) != len(orig) {
		t.Fatalf("expected before/after kept for diffing")
	}
	if !run.DryRun {
		t.Fatalf("expected DryRun flag on result")
	}
}

func TestFlipFiles_StopsAtFirstError(t *testing.T) {
	store := newMemStore(map[string][]string{
		"wg_a.h": {"#include <wg_x.h>\n"},
		"wg_c.h": {"#include <wg_x.h>\n"},
	})
	journal := &fakeJournal{}

	uc := NewFlipFiles(store, WithJournal(journal))
	run, err := uc.Execute(context.Background(), FlipRequest{
		Paths: []string{"wg_a.h", "wg_missing.h", "wg_c.h"},
		Mode:  domain.ModeInPlace,
	})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if domain.PathOf(err) != "wg_missing.h" {
		t.Fatalf("expected failing path in error, got %v", err)
	}
	if len(run.Files) != 1 || run.Files[0].Path != "wg_a.h" {
		t.Fatalf("expected only the first file processed, got %+v", run.Files)
	}
	if store.files["wg_c.h"][0] != "#include <wg_x.h>\n" {
		t.Fatalf("files after the failure must be untouched")
	}
	if len(journal.runs) != 1 || len(journal.runs[0].Files) != 1 {
		t.Fatalf("expected partial run journaled, got %+v", journal.runs)
	}
}

func TestFlipFiles_WriteErrorKeepsOriginal(t *testing.T) {
	store := newMemStore(map[string][]string{"wg_a.h": {"x\n"}})
	writeErr := errors.New("disk full")
	store.writeErr["wg3_a.h"] = writeErr

	uc := NewFlipFiles(store)
	_, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{"wg_a.h"}, Mode: domain.ModeRename})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if _, ok := store.files["wg_a.h"]; !ok {
		t.Fatalf("original must survive a failed write")
	}
}

func TestFlipFiles_RemoveErrorReportsWrittenFile(t *testing.T) {
	store := newMemStore(map[string][]string{"wg_a.h": {"x\n"}})
	removeErr := errors.New("permission denied")
	store.removeErr["wg_a.h"] = removeErr
	journal := &fakeJournal{}

	uc := NewFlipFiles(store, WithJournal(journal))
	run, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{"wg_a.h"}, Mode: domain.ModeRename})
	if !errors.Is(err, removeErr) {
		t.Fatalf("expected remove error, got %v", err)
	}
	if len(run.Files) != 1 || !run.Files[0].Written || run.Files[0].Renamed {
		t.Fatalf("expected written-but-not-renamed result, got %+v", run.Files)
	}
}

func TestFlipFiles_ContextCancelled(t *testing.T) {
	store := newMemStore(map[string][]string{"wg_a.h": {"x\n"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewFlipFiles(store)
	_, err := uc.Execute(ctx, FlipRequest{Paths: []string{"wg_a.h"}, Mode: domain.ModeInPlace})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(store.ops) != 0 {
		t.Fatalf("expected no file operations, got %v", store.ops)
	}
}

func TestFlipFiles_JournalAndClock(t *testing.T) {
	store := newMemStore(map[string][]string{"wg_a.h": {"x\n"}})
	journal := &fakeJournal{err: errors.New("journal broken")}
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	uc := NewFlipFiles(store, WithJournal(journal), WithClock(func() time.Time { return at }))
	run, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{"wg_a.h"}, Mode: domain.ModeInPlace})
	if err != nil {
		t.Fatalf("journal failures must not fail the run: %v", err)
	}
	if !run.StartedAt.Equal(at) || !run.EndedAt.Equal(at) {
		t.Fatalf("expected injected clock, got %s..%s", run.StartedAt, run.EndedAt)
	}
	if len(journal.runs) != 1 {
		t.Fatalf("expected journal called once, got %d", len(journal.runs))
	}
}

func TestFlipFiles_EndToEndOnDisk(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "wg_resdb.h")
	content := "#ifndef WG_RESDB_DOT_H\n#define WG_RESDB_DOT_H\n#include <string>\n#include <wg_object.h>\n#endif //WG_RESDB_DOT_H"
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	uc := NewFlipFiles(fsdoc.NewStore())
	if _, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{src}, Mode: domain.ModeRename}); err != nil {
		t.Fatalf("rename run: %v", err)
	}

	dst := filepath.Join(tmp, "wg3_resdb.h")
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read flipped file: %v", err)
	}
	want := "#ifndef WG3_RESDB_DOT_H\n#define WG3_RESDB_DOT_H\n#include <string>\n#include <wg3_object.h>\n#endif //WG3_RESDB_DOT_H\n"
	if string(b) != want {
		t.Fatalf("content = %q, want %q", string(b), want)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected original removed, stat err=%v", err)
	}

	// Flipping back restores the original name and content (plus the final newline).
	if _, err := uc.Execute(context.Background(), FlipRequest{Paths: []string{dst}, Mode: domain.ModeRename}); err != nil {
		t.Fatalf("flip back: %v", err)
	}
	b, err = os.ReadFile(src)
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if string(b) != content+"\n" {
		t.Fatalf("restored content = %q", string(b))
	}
}
