// Package vault keeps generated datasets as encrypted snapshots in a zstore
// collection so a run can be listed, re-exported or forgotten later.
package vault

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/babbaginator/pyDatasetGen/internal/schema"
	"github.com/google/uuid"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
)

const collection = "datasets"

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one saved dataset together with what produced it.
type Snapshot struct {
	ID        string     `json:"id"`
	Schema    string     `json:"schema"`
	Seed      uint64     `json:"seed"` // 0 when no seed reproduces Rows
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewSnapshot captures ds under a fresh ID.
func NewSnapshot(schemaPath string, seed uint64, ds schema.Dataset) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Schema:    schemaPath,
		Seed:      seed,
		Columns:   slices.Clone(ds.Columns),
		Rows:      ds.Rows(),
		CreatedAt: time.Now().UTC(),
	}
}

// Dataset converts the snapshot back for export.
func (s Snapshot) Dataset() schema.Dataset {
	return schema.FromRows(s.Columns, s.Rows)
}

// ShortID is the first block of the ID, enough to tell snapshots apart in
// listings.
func (s Snapshot) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

// Vault is an open, unlocked snapshot store.
type Vault struct {
	store *zstore.Store
	col   *zstore.Collection[Snapshot]
}

// Open unlocks the store in fsys, creating it on first use. A wrong password
// fails with zstore.ErrWrongPassword.
func Open(fsys zfilesystem.ReadWriteFileFS, password string) (*Vault, error) {
	s, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	col, err := zstore.NewCollection[Snapshot](s, collection)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open vault: %s collection: %w", collection, err)
	}

	return &Vault{store: s, col: col}, nil
}

// Save stores snap, replacing any snapshot with the same ID.
func (v *Vault) Save(snap Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if err := v.col.Put(snap.ID, snap); err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// List returns every snapshot, newest first.
func (v *Vault) List() ([]Snapshot, error) {
	snaps, err := v.col.List()
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	// zstore does not guarantee order
	slices.SortFunc(snaps, func(a, b Snapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return snaps, nil
}

// Get returns the snapshot whose ID is id or starts with it. An ambiguous
// prefix is reported as not found.
func (v *Vault) Get(id string) (Snapshot, error) {
	full, err := v.resolve(id)
	if err != nil {
		return Snapshot{}, err
	}

	snap, err := v.col.Get(full)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot %s: %w", full, err)
	}
	return snap, nil
}

// Delete removes the snapshot matching id (or a unique prefix of it).
func (v *Vault) Delete(id string) error {
	full, err := v.resolve(id)
	if err != nil {
		return err
	}

	if err := v.col.Delete(full); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", full, err)
	}
	return nil
}

// Close locks the vault.
func (v *Vault) Close() {
	v.store.Close()
}

func (v *Vault) resolve(id string) (string, error) {
	if id == "" {
		return "", ErrNotFound
	}

	snaps, err := v.col.List()
	if err != nil {
		return "", fmt.Errorf("find snapshot %s: %w", id, err)
	}

	var match string
	for _, s := range snaps {
		switch {
		case s.ID == id:
			return id, nil
		case len(s.ID) > len(id) && s.ID[:len(id)] == id:
			if match != "" {
				return "", fmt.Errorf("%w: %q is ambiguous", ErrNotFound, id)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", ErrNotFound
	}
	return match, nil
}
