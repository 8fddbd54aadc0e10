// Package file persists account snapshots as one versioned binary file per
// account, named <username>.dat. The layout is explicit and tagged rather
// than a language-coupled object graph: a magic header, a format version,
// then length-prefixed records.
package file

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"spendbook/internal/account"
	"spendbook/internal/core"
	"spendbook/internal/snapshot"
)

var magic = [4]byte{'S', 'P', 'B', 'K'}

const formatVersion uint16 = 1

// Store writes snapshots under a single data directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(username string) string {
	return filepath.Join(s.dir, username+".dat")
}

// Save encodes the full account and atomically replaces any existing
// snapshot file for the same username.
func (s *Store) Save(_ context.Context, a *account.Account) error {
	buf, err := encode(a)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, a.Username+".dat.tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(a.Username)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}

// Load reads and decodes the snapshot for username. Returns
// snapshot.ErrNotFound when the file is missing and snapshot.ErrCorrupt when
// it cannot be decoded.
func (s *Store) Load(_ context.Context, username string) (*account.Account, error) {
	raw, err := os.ReadFile(s.path(username))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", username, snapshot.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	a, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", username, err)
	}
	if a.Username != username {
		return nil, fmt.Errorf("snapshot holds %q, not %q: %w", a.Username, username, snapshot.ErrCorrupt)
	}
	return a, nil
}

func encode(a *account.Account) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	writeUint16(&buf, formatVersion)
	writeBytes(&buf, []byte(a.Username))
	writeBytes(&buf, a.Credential)

	entries := a.Ledger.Entries()
	writeUint32(&buf, uint32(len(entries)))
	for _, e := range entries {
		writeBytes(&buf, []byte(e.Date))
		writeBytes(&buf, []byte(e.Category))
		writeUint64(&buf, math.Float64bits(e.Amount))
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (*account.Account, error) {
	r := bytes.NewReader(raw)

	var hdr [4]byte
	if _, err := r.Read(hdr[:]); err != nil || hdr != magic {
		return nil, snapshot.ErrCorrupt
	}
	version, err := readUint16(r)
	if err != nil || version != formatVersion {
		return nil, snapshot.ErrCorrupt
	}

	username, err := readBytes(r)
	if err != nil {
		return nil, snapshot.ErrCorrupt
	}
	credential, err := readBytes(r)
	if err != nil {
		return nil, snapshot.ErrCorrupt
	}

	count, err := readUint32(r)
	if err != nil {
		return nil, snapshot.ErrCorrupt
	}
	entries := make([]core.Expense, 0, count)
	for i := uint32(0); i < count; i++ {
		date, err := readBytes(r)
		if err != nil {
			return nil, snapshot.ErrCorrupt
		}
		category, err := readBytes(r)
		if err != nil {
			return nil, snapshot.ErrCorrupt
		}
		bits, err := readUint64(r)
		if err != nil {
			return nil, snapshot.ErrCorrupt
		}
		entries = append(entries, core.Expense{
			Date:     string(date),
			Category: string(category),
			Amount:   math.Float64frombits(bits),
		})
	}
	if r.Len() != 0 {
		return nil, snapshot.ErrCorrupt
	}

	return account.Restore(string(username), credential, entries), nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}

func readUint16(r *bytes.Reader) (uint16, error) {
	var b [2]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if int(n) > r.Len() {
		return nil, snapshot.ErrCorrupt
	}
	b := make([]byte, n)
	if _, err := readFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func readFull(r *bytes.Reader, b []byte) (int, error) {
	n, err := r.Read(b)
	if err != nil || n != len(b) {
		return n, snapshot.ErrCorrupt
	}
	return n, nil
}
