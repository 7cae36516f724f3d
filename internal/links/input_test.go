package links_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"vidq/internal/links"
)

func TestFilterLines(t *testing.T) {
	got := links.FilterLines([]string{"  https://a  ", "", "   ", "# comment", "  #indented comment", "https://b"})
	want := []string{"https://a", "https://b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterLines = %v, want %v", got, want)
	}
}

func TestReadStripsBOM(t *testing.T) {
	got, err := links.Read(strings.NewReader("\ufeffhttps://a\r\n# skip\r\nhttps://b\r\n"))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	want := []string{"https://a", "https://b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Read = %v, want %v", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte("https://a\n\n#x\nhttps://b\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err := links.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %v", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := links.LoadFile(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestSplitArgs(t *testing.T) {
	got := links.SplitArgs([]string{"https://a https://b", "https://c?x=1,2"})
	want := []string{"https://a", "https://b", "https://c?x=1,2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitArgs = %v, want %v", got, want)
	}
}
