// bildinfo shows and edits the metadata panel for a selected image: camera
// settings, the full EXIF catalog, GPS, rating, color label and tags.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/barasher/go-exiftool"
	"github.com/fsnotify/fsnotify"
	"google.golang.org/genai"
	"k8s.io/klog/v2"

	"github.com/tstromberg/bildinfo/pkg/bildinfo"
	"github.com/tstromberg/bildinfo/pkg/exifscan"
	"github.com/tstromberg/bildinfo/pkg/tagstore"
)

var (
	dbPath     = flag.String("db", "", "path to the tag database")
	imagePath  = flag.String("image", "", "image to select")
	libDir     = flag.String("lib", "", "list a library directory instead of selecting one image")
	rating     = flag.Int("rate", -1, "set a rating from 0-5")
	colorFlag  = flag.String("color", "", "set a color label (\"none\" clears it)")
	addTags    = flag.String("add-tag", "", "comma-separated tags to add")
	removeTags = flag.String("remove-tag", "", "comma-separated tags to remove")
	suggest    = flag.Bool("suggest", false, "suggest tags with Gemini")
	watchFlag  = flag.Bool("watch", false, "watch the selected image and re-derive on change")
	snapshot   = flag.Bool("snapshot", false, "copy the tag db aside before mutating")
	quickTags  = flag.String("quick-tags", "", "comma-separated quick-add shortcuts")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *dbPath == "" {
		klog.Exitf("--db is a required flag")
	}
	if *imagePath == "" && *libDir == "" {
		klog.Exitf("one of --image or --lib is required")
	}

	if *snapshot {
		if _, err := tagstore.Snapshot(*dbPath, filepath.Dir(*dbPath)); err != nil {
			klog.Exitf("snapshot failed: %v", err)
		}
	}

	store, err := tagstore.Open(*dbPath)
	if err != nil {
		klog.Exitf("open store: %v", err)
	}
	defer store.Close()

	et, err := exiftool.NewExiftool()
	if err != nil {
		klog.Exitf("exiftool failed: %v", err)
	}
	defer et.Close()

	if *libDir != "" {
		listLibrary(*libDir, et, store)
		return
	}

	ctx := context.Background()
	img, err := selectImage(*imagePath, et, store)
	if err != nil {
		klog.Exitf("select failed: %v", err)
	}

	cfg := &bildinfo.Config{QuickTags: splitList(*quickTags)}
	p := bildinfo.NewPanel(cfg, store)
	p.OnRate = func(n int, paths []string) { writeRating(et, paths, n) }
	p.OnSetColorLabel = func(color string, paths []string) {
		setColorLabel(ctx, store, et, p, paths, color)
	}
	p.OnTagsChanged = func(paths []string, tags []bildinfo.TagItem) {
		klog.V(1).Infof("tags changed for %v: %v", paths, tags)
	}
	p.SetSelection(img)

	if *rating >= 0 {
		p.Rate(*rating)
	}
	if *colorFlag != "" {
		c := *colorFlag
		if c == "none" {
			c = ""
		}
		p.SetColorLabel(c)
	}
	for _, t := range splitList(*addTags) {
		if err := p.AddTag(ctx, t); err != nil {
			klog.Errorf("add %q: %v", t, err)
		}
	}
	for _, name := range splitList(*removeTags) {
		item, ok := findTag(p.View(), name)
		if !ok {
			klog.Warningf("no tag %q on %s", name, img.Path)
			continue
		}
		if err := p.RemoveTag(ctx, item); err != nil {
			klog.Errorf("remove %q: %v", name, err)
		}
	}

	if *suggest {
		suggestTags(ctx, img.Path)
	}

	// Re-select so the printed panel reflects every confirmed mutation.
	img, err = selectImage(*imagePath, et, store)
	if err != nil {
		klog.Exitf("reselect failed: %v", err)
	}
	p.SetSelection(img)
	printPanel(bildinfo.BuildDisplayModel(img), p.View(), cfg)

	if *watchFlag {
		if err := watch(et, store, p); err != nil {
			klog.Exitf("watch failed: %v", err)
		}
	}
}

// selectImage reads one raw record and merges in the store's tags.
func selectImage(path string, et *exiftool.Exiftool, store *tagstore.Store) (*bildinfo.Image, error) {
	img, err := exifscan.Read(path, et)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	stored, err := store.Tags(path)
	if err != nil {
		return nil, fmt.Errorf("stored tags: %w", err)
	}
	img.Tags = append(img.Tags, stored...)
	return img, nil
}

func listLibrary(root string, et *exiftool.Exiftool, store *tagstore.Store) {
	is, err := exifscan.Find(root, et)
	if err != nil {
		klog.Exitf("find: %v", err)
	}

	for _, i := range is {
		stored, err := store.Tags(i.Path)
		if err != nil {
			klog.Errorf("stored tags for %s: %v", i.Path, err)
		}
		v := bildinfo.DeriveTags(append(i.Tags, stored...))
		fmt.Printf("%s  %dx%d  rating=%d  color=%s  tags=%d\n",
			i.Path, i.Width, i.Height, i.Rating, orDash(v.ColorLabel), len(v.Tags))
	}
}

// writeRating persists a rating into the image files themselves.
func writeRating(et *exiftool.Exiftool, paths []string, n int) {
	for _, p := range paths {
		o := et.ExtractMetadata(p)
		o[0].SetInt("Rating", int64(n))
		et.WriteMetadata(o)
		if o[0].Err != nil {
			klog.Errorf("write rating for %s: %v", p, o[0].Err)
			continue
		}
		klog.Infof("rated %s: %d", p, n)
	}
}

// setColorLabel swaps the color: tag in the store and feeds the refreshed
// raw list back into the panel.
func setColorLabel(ctx context.Context, store *tagstore.Store, et *exiftool.Exiftool, p *bildinfo.Panel, paths []string, color string) {
	for _, path := range paths {
		stored, err := store.Tags(path)
		if err != nil {
			klog.Errorf("stored tags for %s: %v", path, err)
			continue
		}
		for _, t := range stored {
			if strings.HasPrefix(t, "color:") {
				if err := store.RemoveTag(ctx, []string{path}, t); err != nil {
					klog.Errorf("clear color on %s: %v", path, err)
				}
			}
		}
		if color != "" {
			if err := store.AddTag(ctx, []string{path}, "color:"+color); err != nil {
				klog.Errorf("set color on %s: %v", path, err)
				continue
			}
		}

		img, err := selectImage(path, et, store)
		if err != nil {
			klog.Errorf("reselect %s: %v", path, err)
			continue
		}
		p.SetSelection(img)
		klog.Infof("color label on %s: %s", path, orDash(color))
	}
}

func suggestTags(ctx context.Context, path string) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GOOGLE_AI_API_KEY"),
	})
	if err != nil {
		klog.Errorf("genai client: %v", err)
		return
	}

	tags, err := bildinfo.SuggestTags(ctx, client, "gemini-2.5-flash", path)
	if err != nil {
		klog.Errorf("suggest: %v", err)
		return
	}
	fmt.Printf("suggested tags: %s\n", strings.Join(tags, ", "))
}

func printPanel(m *bildinfo.DisplayModel, v bildinfo.TagView, cfg *bildinfo.Config) {
	fmt.Printf("%s (%dx%d)\n", m.Path, m.Width, m.Height)
	fmt.Printf("rating: %d  color: %s\n", m.Rating, orDash(v.ColorLabel))

	if len(m.Settings) > 0 {
		fmt.Println("\ncamera:")
		for _, s := range m.Settings {
			fmt.Printf("  %-14s %s\n", s.Label, s.Value)
		}
	}

	if m.GPS.Resolved() {
		fmt.Printf("\nlocation: %.6f, %.6f", *m.GPS.Lat, *m.GPS.Lon)
		if m.GPS.Altitude != nil {
			fmt.Printf(" (alt %.1fm)", *m.GPS.Altitude)
		}
		fmt.Println()
	}

	fmt.Println("\ntags:")
	for _, t := range v.Tags {
		marker := " "
		if t.IsUser {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, t.Name)
	}
	if len(cfg.QuickTags) > 0 {
		fmt.Printf("\nquick-add: %s\n", strings.Join(cfg.QuickTags, ", "))
	}

	fmt.Println("\nexif:")
	for _, e := range m.Catalog {
		fmt.Printf("  %-30s %s\n", e.Label, e.Value)
	}
}

// watch re-reads the selected image whenever its file changes and feeds the
// fresh record back through the panel.
func watch(et *exiftool.Exiftool, store *tagstore.Store, p *bildinfo.Panel) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(*imagePath)); err != nil {
		return fmt.Errorf("add watch: %w", err)
	}
	klog.Infof("watching %s ...", *imagePath)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Name != *imagePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			klog.Infof("event: %s", event)

			img, err := selectImage(*imagePath, et, store)
			if err != nil {
				klog.Errorf("reselect failed: %v", err)
				continue
			}
			p.SetSelection(img)
			printPanel(bildinfo.BuildDisplayModel(img), p.View(), &bildinfo.Config{QuickTags: splitList(*quickTags)})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func findTag(v bildinfo.TagView, name string) (bildinfo.TagItem, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range v.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return bildinfo.TagItem{}, false
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
