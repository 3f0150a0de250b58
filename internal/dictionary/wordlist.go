// Package dictionary provides the word list that decides whether a played
// word is valid. An embedded list ships with the binary; a custom file can
// replace it.
package dictionary

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
)

//go:embed words.txt
var embeddedWords string

var (
	embeddedOnce sync.Once
	embedded     *WordList
)

// WordList is an immutable set of upper-case words. It satisfies
// core.Dictionary.
type WordList struct {
	words map[string]struct{}
}

// Embedded returns the word list compiled into the binary. It is parsed once
// and shared.
func Embedded() *WordList {
	embeddedOnce.Do(func() {
		// The embedded list is part of the build; a read error here cannot happen.
		embedded, _ = Parse(strings.NewReader(embeddedWords))
	})
	return embedded
}

// New builds a list from the given words. Words are trimmed and upper-cased;
// blanks are dropped.
func New(words ...string) *WordList {
	wl := &WordList{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = normalize(w); w != "" {
			wl.words[w] = struct{}{}
		}
	}
	return wl
}

// Parse reads one word per line. Blank lines and lines starting with '#'
// are skipped.
func Parse(r io.Reader) (*WordList, error) {
	wl := &WordList{words: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		wl.words[normalize(line)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: read failed: %w", err)
	}
	return wl, nil
}

// Load reads a word list file.
func Load(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: cannot open %s: %w", path, err)
	}
	defer f.Close()

	wl, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if wl.Len() == 0 {
		return nil, fmt.Errorf("dictionary: %s contains no words", path)
	}
	return wl, nil
}

// Open loads path, or returns the embedded list when path is empty.
func Open(path string) (*WordList, error) {
	if path == "" {
		return Embedded(), nil
	}
	return Load(path)
}

// Contains reports whether word is in the list, ignoring case.
func (wl *WordList) Contains(word string) bool {
	_, ok := wl.words[normalize(word)]
	return ok
}

// Len returns the number of distinct words.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// Words returns every word in sorted order.
func (wl *WordList) Words() []string {
	out := make([]string, 0, len(wl.words))
	for w := range wl.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}
