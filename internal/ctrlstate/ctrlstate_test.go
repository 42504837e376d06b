package ctrlstate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLast_MissingFile(t *testing.T) {
	f := Open(filepath.Join(t.TempDir(), "ctrl"))
	n, err := f.Last()
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if n != 0 {
		t.Errorf("Last() = %d, want 0", n)
	}
}

func TestUpdate_PersistsValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctrl")
	f := Open(path)
	err := f.Update(context.Background(), func(last uint64) (uint64, error) {
		return last + 3, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	n, err := Open(path).Last()
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if n != 3 {
		t.Errorf("Last() = %d, want 3", n)
	}
}

func TestUpdate_ErrorKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctrl")
	if err := os.WriteFile(path, []byte("41\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f := Open(path)
	boom := errors.New("boom")
	err := f.Update(context.Background(), func(last uint64) (uint64, error) {
		return last + 1, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if n, _ := f.Last(); n != 41 {
		t.Errorf("Last() = %d, want 41", n)
	}
}

func TestUpdate_RejectsBackwards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctrl")
	if err := os.WriteFile(path, []byte("10"), 0644); err != nil {
		t.Fatal(err)
	}
	err := Open(path).Update(context.Background(), func(uint64) (uint64, error) { return 5, nil })
	if err == nil {
		t.Fatal("expected error moving backwards")
	}
}

func TestUpdate_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctrl")
	const workers = 8
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each goroutine uses its own handle, as separate processes would.
			err := Open(path).Update(context.Background(), func(last uint64) (uint64, error) {
				return last + 1, nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n, _ := Open(path).Last(); n != workers {
		t.Errorf("Last() = %d, want %d", n, workers)
	}
}

func TestLast_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctrl")
	if err := os.WriteFile(path, []byte("not-a-number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path).Last(); err == nil {
		t.Fatal("expected parse error")
	}
}
