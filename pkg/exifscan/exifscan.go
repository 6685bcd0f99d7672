// Package exifscan builds raw image records from disk using exiftool.
package exifscan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/barasher/go-exiftool"
	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"

	"github.com/tstromberg/bildinfo/pkg/bildinfo"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
}

// Read extracts one raw image record. Every extracted field lands in the
// attribute map as-is; missing fields are expected and simply absent. Only
// a failed extraction is an error.
func Read(path string, et *exiftool.Exiftool) (*bildinfo.Image, error) {
	fis := et.ExtractMetadata(path)
	fi := fis[0]
	if fi.Err != nil {
		return nil, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	i := &bildinfo.Image{Path: path, Attrs: bildinfo.RawAttributes{}}
	for k, v := range fi.Fields {
		klog.V(2).Infof("%q=%v", k, v)
		i.Attrs[k] = v
	}

	var err error
	i.Width, err = fi.GetInt("ImageWidth")
	if err != nil {
		klog.V(1).Infof("unable to get width for %s: %v", path, err)
	}

	i.Height, err = fi.GetInt("ImageHeight")
	if err != nil {
		klog.V(1).Infof("unable to get height for %s: %v", path, err)
	}

	if r, err := fi.GetInt("Rating"); err == nil {
		i.Rating = clampRating(r)
	}

	// Embedded keywords seed the raw tag list as system tags; the tag
	// store's entries are merged in by the caller.
	if kws, err := fi.GetStrings("Keywords"); err == nil {
		i.Tags = kws
	}

	return i, nil
}

func clampRating(r int64) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return int(r)
}

// Find walks root and reads a record for every image file found, skipping
// dotfiles and dot-directories.
func Find(root string, et *exiftool.Exiftool) ([]*bildinfo.Image, error) {
	found := []*bildinfo.Image{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				if de.IsDir() {
					return godirwalk.SkipThis
				}
				return nil
			}

			if de.IsDir() || !imageExts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			klog.V(1).Infof("found %s", path)
			i, err := Read(path, et)
			if err != nil {
				klog.Errorf("read failure: %v", err)
				return err
			}

			found = append(found, i)
			return nil
		},
	})

	return found, err
}
