package client

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSessionPersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()

	first := NewSession(dir)
	if first.Authenticated() {
		t.Fatal("fresh session must start unauthenticated")
	}
	first.SetToken("tok-123")

	restored := NewSession(dir)
	if restored.Token() != "tok-123" {
		t.Errorf("restored token = %q, want tok-123", restored.Token())
	}
}

func TestClearTokenRemovesPersistedFile(t *testing.T) {
	dir := t.TempDir()

	s := NewSession(dir)
	s.SetToken("tok-123")
	s.ClearToken()

	if s.Authenticated() {
		t.Error("token survived ClearToken")
	}
	if _, err := os.Stat(filepath.Join(dir, TokenFile)); !os.IsNotExist(err) {
		t.Error("token file survived ClearToken")
	}

	if NewSession(dir).Authenticated() {
		t.Error("cleared token came back after restart")
	}
}

func TestSessionConcurrentReads(t *testing.T) {
	s := NewMemorySession()
	s.SetToken("tok-123")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Token() != "tok-123" {
				t.Error("unexpected token during concurrent reads")
			}
		}()
	}
	wg.Wait()
}

func TestGenerationDiscardsSupersededFetches(t *testing.T) {
	var guard Generation

	first := guard.Next()
	second := guard.Next()

	if guard.Latest(first) {
		t.Error("superseded fetch still reported latest")
	}
	if !guard.Latest(second) {
		t.Error("newest fetch not reported latest")
	}

	third := guard.Next()
	if guard.Latest(second) || !guard.Latest(third) {
		t.Error("generation ordering broken after third dispatch")
	}
}
