// Package tracker implements the incremental change-detection gate: a
// persisted record of the last-seen signature per source file path, used
// to skip reprocessing unchanged files. The gate is advisory for
// performance, not a correctness requirement; callers must re-check
// secondary conditions (such as newly available full text) even when the
// primary document is unchanged.
package tracker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strconv"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
)

// Tracker gates file reprocessing against signatures persisted in a
// FileStore.
type Tracker struct {
	store legis.FileStore
}

// New creates a tracker over the given file store.
func New(store legis.FileStore) *Tracker {
	return &Tracker{store: store}
}

// Signature derives the current signature for a file from its content
// hash and size.
func (t *Tracker) Signature(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	hash := sha256.New()
	size, err := io.Copy(hash, f)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}

	return hex.EncodeToString(hash.Sum(nil)) + ":" + strconv.FormatInt(size, 10), nil
}

// IsChanged reports whether the file at path differs from its last saved
// signature. A path with no stored record is always changed.
func (t *Tracker) IsChanged(ctx context.Context, path string) (bool, error) {
	current, err := t.Signature(path)
	if err != nil {
		return false, err
	}

	stored, err := t.store.FileSignature(ctx, path)
	if err != nil {
		if errors.IsNotFound(err) {
			return true, nil
		}
		return false, errors.WrapResource("find", "file record", path, err)
	}

	return stored != current, nil
}

// Save records the file's current signature. It must be called only
// after the corresponding document was fully and successfully
// reconciled, so a failure partway through a document leaves the path
// marked changed and the document is retried in full on the next run.
func (t *Tracker) Save(ctx context.Context, path string) error {
	signature, err := t.Signature(path)
	if err != nil {
		return err
	}
	if err := t.store.SaveFileSignature(ctx, path, signature); err != nil {
		return errors.WrapResource("update", "file record", path, err)
	}
	return nil
}
