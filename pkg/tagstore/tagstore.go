// Package tagstore persists image tags in a local bbolt database. It is the
// concrete implementation of the panel's tag mutation boundary.
package tagstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/otiai10/copy"
	bolt "go.etcd.io/bbolt"
	"k8s.io/klog/v2"
)

const (
	imagesToTags = "ImagesToTags"
	tagsToImages = "TagsToImages"
)

// Store is a bbolt-backed tag database. Tags are stored in their persisted
// form, color:/user: prefixes included.
type Store struct {
	db   *bolt.DB
	path string
}

// Open creates or opens the tag database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open tag db %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range []string{imagesToTags, tagsToImages} {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	klog.V(1).Infof("tag db open at %s", path)
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddTag associates a tag with every given path. Adding a tag a path
// already has is a no-op.
func (s *Store) AddTag(ctx context.Context, paths []string, tag string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, p := range paths {
			if err := appendEntry(tx.Bucket([]byte(imagesToTags)), p, tag); err != nil {
				return fmt.Errorf("tag %s: %w", p, err)
			}
			if err := appendEntry(tx.Bucket([]byte(tagsToImages)), tag, p); err != nil {
				return fmt.Errorf("index %s: %w", tag, err)
			}
		}
		return nil
	})
}

// RemoveTag removes a tag from every given path. Paths that lack the tag
// are left alone.
func (s *Store) RemoveTag(ctx context.Context, paths []string, tag string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, p := range paths {
			if err := dropEntry(tx.Bucket([]byte(imagesToTags)), p, tag); err != nil {
				return fmt.Errorf("untag %s: %w", p, err)
			}
			if err := dropEntry(tx.Bucket([]byte(tagsToImages)), tag, p); err != nil {
				return fmt.Errorf("unindex %s: %w", tag, err)
			}
		}
		return nil
	})
}

// Tags returns the persisted tags for one path, in stored order.
func (s *Store) Tags(path string) ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = readList(tx.Bucket([]byte(imagesToTags)), path)
		return err
	})
	return out, err
}

// AllTags returns every known tag, sorted.
func (s *Store) AllTags() ([]string, error) {
	out := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(tagsToImages)).ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	sort.Strings(out)
	return out, err
}

// appendEntry adds val to the JSON list stored under key, keeping it
// duplicate-free.
func appendEntry(b *bolt.Bucket, key, val string) error {
	list, err := readList(b, key)
	if err != nil {
		return err
	}
	for _, v := range list {
		if v == val {
			return nil
		}
	}
	return writeList(b, key, append(list, val))
}

// dropEntry removes val from the JSON list stored under key, deleting the
// key when the list empties.
func dropEntry(b *bolt.Bucket, key, val string) error {
	list, err := readList(b, key)
	if err != nil {
		return err
	}
	out := list[:0]
	for _, v := range list {
		if v != val {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return b.Delete([]byte(key))
	}
	return writeList(b, key, out)
}

func readList(b *bolt.Bucket, key string) ([]string, error) {
	bs := b.Get([]byte(key))
	if bs == nil {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(bs, &list); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return list, nil
}

func writeList(b *bolt.Bucket, key string, list []string) error {
	bs, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return b.Put([]byte(key), bs)
}

// Snapshot copies an existing database file into dir before it is opened
// for a mutation session. A missing file is fine on first run.
func Snapshot(dbPath, dir string) (string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(dbPath)+".bak")
	if err := copy.Copy(dbPath, dst); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}

	klog.Infof("snapshotted tag db to %s", dst)
	return dst, nil
}
