package review_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prreview/prreview/internal/usecase/review"
)

func TestIsTTYWithRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	if review.IsTTY(f.Fd()) {
		t.Fatal("a regular file must not look like a terminal")
	}
}
