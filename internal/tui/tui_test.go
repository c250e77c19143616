package tui

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zfilesystem"

	"github.com/babbaginator/pyDatasetGen/internal/identity"
	"github.com/babbaginator/pyDatasetGen/internal/schema"
	"github.com/babbaginator/pyDatasetGen/internal/vault"
	"github.com/babbaginator/pyDatasetGen/internal/vocab"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

const testSchema = "id=?uuid\nname=?fullname\nplan=[free,pro]\n"

func newInterp(t *testing.T, fsys fstest.MapFS) *schema.Interpreter {
	t.Helper()
	names := identity.NewNames(identity.NameGroup{
		Label:       "test",
		MaleGiven:   []string{"Jan", "Piotr"},
		FemaleGiven: []string{"Zoë", "Ana"},
		Family:      []string{"Nowak", "Peña"},
	})
	v := vocab.New(map[string][]string{
		vocab.Nouns:      {"otter"},
		vocab.Adjectives: {"brave"},
	})
	in := schema.New(names, v, schema.WithSeed(1), schema.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := in.Load(fsys, "schema.txt"); err != nil {
		t.Fatal(err)
	}
	return in
}

type clipboardRecorder struct {
	text string
	err  error
}

func (c *clipboardRecorder) copy(s string) error {
	c.text = s
	return c.err
}

func setupModel(t *testing.T, dataDir string) (Model, fstest.MapFS, *clipboardRecorder) {
	t.Helper()
	fsys := fstest.MapFS{"schema.txt": {Data: []byte(testSchema)}}

	m := New(Config{
		Version:    "test",
		Interp:     newInterp(t, fsys),
		Rows:       5,
		Seed:       1,
		SchemaFS:   fsys,
		SchemaPath: "schema.txt",
		DataDir:    dataDir,
		FirstRun:   false,
	})

	mem := zfilesystem.NewMemFS()
	m.openVault = func(password string) (*vault.Vault, error) {
		return vault.Open(mem, password)
	}

	clip := &clipboardRecorder{}
	m.preview.copy = clip.copy
	t.Cleanup(m.Close)
	return m, fsys, clip
}

// processMsg sends a message through the model and returns the updated model.
func processMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	result, _ := m.Update(msg)
	return result.(Model)
}

// press sends a key and feeds the message its command produces back in.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	result, cmd := m.Update(k)
	m = result.(Model)
	if cmd == nil {
		return m
	}
	return processMsg(t, m, cmd())
}

// preview tests

func TestNewShowsRows(t *testing.T) {
	m, _, _ := setupModel(t, "")

	if got := m.preview.dataset.Len(); got != 5 {
		t.Fatalf("rows = %d, want 5", got)
	}

	view := m.View()
	for _, want := range []string{"Preview", "id", "name", "plan", "5 rows"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestRegenerate(t *testing.T) {
	m, _, _ := setupModel(t, "")
	before := m.preview.dataset.Records[0]

	m = press(t, m, keyMsg('r'))

	after := m.preview.dataset.Records[0]
	if before[0].Value == after[0].Value {
		t.Error("regenerate should produce new rows")
	}
	if m.preview.dataset.Len() != 5 {
		t.Errorf("rows = %d, want 5", m.preview.dataset.Len())
	}
}

func TestEnterCopiesRowTabSeparated(t *testing.T) {
	m, _, clip := setupModel(t, "")

	m.preview, _ = m.preview.Update(enterKey())
	want := strings.Join(m.preview.dataset.Records[0].Values(), "\t")
	if clip.text != want {
		t.Errorf("clipboard = %q, want %q", clip.text, want)
	}
	if !strings.Contains(m.View(), "copied row") {
		t.Error("should flash copied")
	}
}

func TestCursorMovesBeforeCopy(t *testing.T) {
	m, _, clip := setupModel(t, "")

	m = processMsg(t, m, keyMsg('j'))
	m = processMsg(t, m, enterKey())

	want := strings.Join(m.preview.dataset.Records[1].Values(), "\t")
	if clip.text != want {
		t.Errorf("clipboard = %q, want second row %q", clip.text, want)
	}
}

func TestCopyErrorFlashes(t *testing.T) {
	m, _, clip := setupModel(t, "")
	clip.err = errors.New("no clipboard tool")

	m = processMsg(t, m, enterKey())
	if !strings.Contains(m.View(), "no clipboard tool") {
		t.Error("should show the clipboard error")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := setupModel(t, "")

	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestFlashClears(t *testing.T) {
	m, _, _ := setupModel(t, "")
	m = processMsg(t, m, enterKey())
	m = processMsg(t, m, flashMsg{})

	if m.preview.flash != "" {
		t.Error("flash should clear")
	}
}

func TestWindowResize(t *testing.T) {
	m, _, _ := setupModel(t, "")
	m = processMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}

// reload tests

func TestSchemaReload(t *testing.T) {
	m, fsys, _ := setupModel(t, "")

	fsys["schema.txt"] = &fstest.MapFile{Data: []byte("city=Lisbon\nwho=?firstname\n")}
	m = processMsg(t, m, schemaChangedMsg{})

	if got := m.preview.dataset.Columns; len(got) != 2 || got[0] != "city" {
		t.Fatalf("columns after reload = %v", got)
	}
	if v := m.preview.dataset.Records[0][0].Value; v != "Lisbon" {
		t.Errorf("city = %q", v)
	}
	if !strings.Contains(m.View(), "schema reloaded") {
		t.Error("should flash reloaded")
	}
}

func TestSchemaReloadFailureKeepsPrevious(t *testing.T) {
	m, fsys, _ := setupModel(t, "")

	fsys["schema.txt"] = &fstest.MapFile{Data: []byte("this line has no separator\n")}
	m = processMsg(t, m, schemaChangedMsg{})

	if got := m.preview.dataset.Columns; len(got) != 3 || got[0] != "id" {
		t.Fatalf("columns should be unchanged, got %v", got)
	}
	if !strings.Contains(m.View(), "reload:") {
		t.Error("should show the reload error")
	}
}

// vault tests

func TestSaveWithoutDataDir(t *testing.T) {
	m, _, _ := setupModel(t, "")

	m = press(t, m, keyMsg('s'))
	if m.active != viewPreview {
		t.Fatal("should stay on preview")
	}
	if !strings.Contains(m.View(), "saving is disabled") {
		t.Error("should explain saving is disabled")
	}
}

func TestSaveUnlocksVaultThenSaves(t *testing.T) {
	m, _, _ := setupModel(t, t.TempDir())

	m = press(t, m, keyMsg('s'))
	if m.active != viewUnlock {
		t.Fatalf("active = %v, want unlock view", m.active)
	}

	m.unlock.input.SetValue("secret")
	m = press(t, m, enterKey())

	if m.active != viewPreview {
		t.Fatalf("active = %v, want preview after unlock", m.active)
	}
	if m.vault == nil {
		t.Fatal("vault should be open")
	}

	snaps, err := m.vault.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snaps))
	}
	if len(snaps[0].Rows) != 5 || snaps[0].Schema != "schema.txt" {
		t.Errorf("snapshot = %d rows from %q", len(snaps[0].Rows), snaps[0].Schema)
	}
	if !strings.Contains(m.View(), "saved "+snaps[0].ShortID()) {
		t.Error("should flash the saved id")
	}
}

func TestSavedSeedOnlyForFirstPage(t *testing.T) {
	m, _, _ := setupModel(t, t.TempDir())

	m = press(t, m, keyMsg('s'))
	m.unlock.input.SetValue("secret")
	m = press(t, m, enterKey())

	m = press(t, m, keyMsg('r'))
	m = press(t, m, keyMsg('s'))

	snaps, err := m.vault.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}

	seeds := map[uint64]int{}
	for _, s := range snaps {
		seeds[s.Seed]++
	}
	if seeds[1] != 1 || seeds[0] != 1 {
		t.Errorf("seeds = %v, want one first page with seed 1 and one regenerated page with none", seeds)
	}
}

func TestFirstPageSeedReproducesRows(t *testing.T) {
	m, fsys, _ := setupModel(t, t.TempDir())
	shown := m.preview.dataset

	again := newInterp(t, fsys).Generate(5)
	if !reflect.DeepEqual(shown.Rows(), again.Rows()) {
		t.Errorf("seed 1 did not reproduce the first page:\nshown %v\nagain %v", shown.Rows(), again.Rows())
	}
}

func TestRejectedPasswordStaysOnPrompt(t *testing.T) {
	m, _, _ := setupModel(t, t.TempDir())
	m.openVault = func(string) (*vault.Vault, error) {
		return nil, errors.New("wrong password")
	}

	m = press(t, m, keyMsg('s'))
	m.unlock.input.SetValue("nope")
	m = press(t, m, enterKey())

	if m.active != viewUnlock {
		t.Fatalf("active = %v, want unlock view", m.active)
	}
	if !strings.Contains(m.View(), "wrong password") {
		t.Error("should show the vault error")
	}
}

func TestUnlockCancelDropsPending(t *testing.T) {
	m, _, _ := setupModel(t, t.TempDir())

	m = press(t, m, keyMsg('s'))
	m = press(t, m, escKey())

	if m.active != viewPreview {
		t.Fatalf("active = %v, want preview", m.active)
	}
	if m.pending != nil {
		t.Error("pending action should be dropped")
	}
}

func TestSnapshotsOpenAndDelete(t *testing.T) {
	m, _, _ := setupModel(t, t.TempDir())

	// unlock and save two snapshots
	m = press(t, m, keyMsg('s'))
	m.unlock.input.SetValue("secret")
	m = press(t, m, enterKey())
	m = press(t, m, keyMsg('r'))
	m = press(t, m, keyMsg('s'))

	m = press(t, m, keyMsg('l'))
	if m.active != viewSnapshots {
		t.Fatalf("active = %v, want snapshots", m.active)
	}
	if len(m.snapshots.snapshots) != 2 {
		t.Fatalf("listed %d snapshots, want 2", len(m.snapshots.snapshots))
	}
	if !strings.Contains(m.View(), "Saved Datasets") {
		t.Error("view should show the snapshots title")
	}

	first := m.snapshots.snapshots[0]
	m = press(t, m, enterKey())
	if m.active != viewPreview {
		t.Fatalf("active = %v, want preview", m.active)
	}
	if !strings.Contains(m.preview.source, first.ShortID()) {
		t.Errorf("preview source = %q, want snapshot %s", m.preview.source, first.ShortID())
	}

	m = press(t, m, keyMsg('l'))
	m = press(t, m, keyMsg('d'))
	if len(m.snapshots.snapshots) != 1 {
		t.Fatalf("after delete %d snapshots, want 1", len(m.snapshots.snapshots))
	}
	if !strings.Contains(m.View(), "deleted") {
		t.Error("should flash deleted")
	}

	m = press(t, m, escKey())
	if m.active != viewPreview {
		t.Errorf("esc should go back to preview, got %v", m.active)
	}
}

func TestSnapshotsEmpty(t *testing.T) {
	m := newSnapshotsModel(nil)
	if !strings.Contains(m.View(), "no saved datasets") {
		t.Error("should show empty state")
	}
	if _, cmd := m.Update(enterKey()); cmd != nil {
		t.Error("enter on empty list should do nothing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Zoë Nowak-Peña", 5); got != "Zoë …" {
		t.Errorf("truncate = %q", got)
	}
}

// watcher tests

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.txt")
	if err := os.WriteFile(path, []byte("a=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	got := make(chan tea.Msg, 1)
	go func() { got <- w.Wait()() }()

	// an unrelated file must not trigger
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a=2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-got:
		if _, ok := msg.(schemaChangedMsg); !ok {
			t.Fatalf("got %T, want schemaChangedMsg", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherClosedYieldsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.txt")
	if err := os.WriteFile(path, []byte("a=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatal(err)
	}

	got := make(chan tea.Msg, 1)
	go func() { got <- w.Wait()() }()
	w.Close()

	select {
	case msg := <-got:
		if msg != nil {
			t.Fatalf("got %T, want nil", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not return after close")
	}
}
