package catalog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dgallion1/roster/internal/media"
	"github.com/dgallion1/roster/internal/metrics"
	"github.com/dgallion1/roster/internal/store"
	"github.com/dgallion1/roster/internal/testfixture"
	"github.com/dgallion1/roster/internal/textextract"
)

const placeholder = "No bio yet"

func newReader(root string, opts Options) *Reader {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ex := textextract.New(textextract.Options{Placeholder: placeholder, Timeout: time.Second}, nil, log)
	return NewReader(store.New(root), media.DefaultClassifier(), ex, opts, log)
}

func TestLocations_MissingRoot(t *testing.T) {
	r := newReader(filepath.Join(t.TempDir(), "nope"), Options{})
	got := r.Locations(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestLocations_DiscoveredOrder(t *testing.T) {
	tree := testfixture.NewTree(t)
	tree.Dir("Tainan")
	tree.Dir("Kaohsiung")
	tree.Dir(".git")
	tree.File([]byte("x"), "README.txt")

	got := newReader(tree.Root, Options{}).Locations(context.Background())
	want := []string{"Kaohsiung", "Tainan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLocations_PreferredOrder(t *testing.T) {
	tree := testfixture.NewTree(t)
	for _, d := range []string{"A", "B", "C", "Extra"} {
		tree.Dir(d)
	}
	order := []string{"C", "Missing", "A", "B", "A"}

	got := newReader(tree.Root, Options{Order: order}).Locations(context.Background())
	if want := []string{"C", "A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = newReader(tree.Root, Options{Order: order, IncludeUnlisted: true}).Locations(context.Background())
	if want := []string{"C", "A", "B", "Extra"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPeople_Filtering(t *testing.T) {
	tree := testfixture.NewTree(t)
	tree.PNG(1, 1, "Taipei", "Amy", "b.png")
	tree.PNG(1, 1, "Taipei", "Amy", "a.jpg")
	tree.Doc([]string{"one", "two", "three", "four"}, "Taipei", "Amy", "bio.docx")
	tree.File([]byte("v"), "Taipei", "Ben", "clip.mp4")
	tree.Dir("Taipei", "Empty")
	tree.PNG(1, 1, "Taipei", "contact", "phone.png")
	tree.PNG(1, 1, "Taipei", "CONTACT", "line.png")
	tree.PNG(1, 1, "Taipei", ".trash", "x.png")
	tree.File([]byte("x"), "Taipei", "notes.txt")

	got := newReader(tree.Root, Options{}).People(context.Background(), "Taipei")
	if len(got) != 2 {
		t.Fatalf("expected 2 people, got %d: %+v", len(got), got)
	}

	amy := got[0]
	if amy.Name != "Amy" {
		t.Fatalf("expected Amy first, got %q", amy.Name)
	}
	if amy.Thumbnail == nil || *amy.Thumbnail != "/files/Taipei/Amy/a.jpg" {
		t.Errorf("expected first image by name as thumbnail, got %v", amy.Thumbnail)
	}
	if amy.Preview != "one\ntwo\nthree" {
		t.Errorf("expected 3-line preview, got %q", amy.Preview)
	}

	ben := got[1]
	if ben.Name != "Ben" || ben.Thumbnail != nil || ben.Preview != placeholder {
		t.Errorf("expected Ben with defaults, got %+v", ben)
	}
}

func TestPeople_CorruptDocumentKeepsPerson(t *testing.T) {
	tree := testfixture.NewTree(t)
	tree.File([]byte("garbage"), "Loc", "Cat", "bio.docx")

	got := newReader(tree.Root, Options{}).People(context.Background(), "Loc")
	if len(got) != 1 || got[0].Preview != placeholder {
		t.Fatalf("expected one person with placeholder preview, got %+v", got)
	}
}

func TestPeople_MissingOrInvalidLocation(t *testing.T) {
	tree := testfixture.NewTree(t)
	tree.Dir("Loc", "Amy")

	r := newReader(tree.Root, Options{})
	for _, loc := range []string{"Nope", "..", "Loc/Amy", ""} {
		got := r.People(context.Background(), loc)
		if got == nil || len(got) != 0 {
			t.Errorf("location %q: expected empty non-nil slice, got %#v", loc, got)
		}
	}
}

func TestPeople_CustomContactDir(t *testing.T) {
	tree := testfixture.NewTree(t)
	tree.PNG(1, 1, "Loc", "info", "a.png")
	tree.PNG(1, 1, "Loc", "contact", "a.png")

	got := newReader(tree.Root, Options{ContactDir: "info"}).People(context.Background(), "Loc")
	if len(got) != 1 || got[0].Name != "contact" {
		t.Fatalf("expected only the \"contact\" person, got %+v", got)
	}
}

func TestSymlinkedFoldersAreListed(t *testing.T) {
	tree := testfixture.NewTree(t)
	tree.PNG(1, 1, "real", "Amy", "a.png")
	outside := testfixture.NewTree(t)
	bob := outside.Dir("Bob")
	outside.PNG(1, 1, "Bob", "b.png")
	tree.File([]byte("x"), "real", "notes.txt")

	links := map[string]string{
		filepath.Join(tree.Root, "real"):              filepath.Join(tree.Root, "linked"),
		bob:                                           filepath.Join(tree.Root, "real", "Bob"),
		filepath.Join(tree.Root, "real", "notes.txt"): filepath.Join(tree.Root, "real", "Notes"),
		filepath.Join(tree.Root, "real", "gone"):      filepath.Join(tree.Root, "real", "Dangling"),
	}
	for target, link := range links {
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
	}

	r := newReader(tree.Root, Options{})
	if got, want := r.Locations(context.Background()), []string{"linked", "real"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	var names []string
	for _, p := range r.People(context.Background(), "real") {
		names = append(names, p.Name)
	}
	if want := []string{"Amy", "Bob"}; !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}

	if got := r.People(context.Background(), "linked"); len(got) != 2 {
		t.Errorf("expected the linked location to list 2 people, got %+v", got)
	}
}

func TestPeople_UnreadablePersonOmitted(t *testing.T) {
	tree := testfixture.NewTree(t)
	tree.PNG(1, 1, "Loc", "Amy", "a.png")
	tree.PNG(1, 1, "Loc", "Ben", "b.png")
	tree.Unreadable("Loc", "Amy")

	before := testutil.ToFloat64(metrics.ScanErrors.WithLabelValues("catalog"))
	got := newReader(tree.Root, Options{}).People(context.Background(), "Loc")
	if len(got) != 1 || got[0].Name != "Ben" {
		t.Fatalf("expected only Ben, got %+v", got)
	}
	if after := testutil.ToFloat64(metrics.ScanErrors.WithLabelValues("catalog")); after != before+1 {
		t.Errorf("expected scan error counter to go from %v to %v, got %v", before, before+1, after)
	}
}
