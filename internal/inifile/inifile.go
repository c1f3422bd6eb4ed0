package inifile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-ini/ini"
)

// DefaultTopSection is the name assigned to key/value pairs that appear
// before the first explicit [section] header.
const DefaultTopSection = "__TOP__"

// Option configures how a document is parsed.
type Option func(*parseConfig)

type parseConfig struct {
	topSection string
}

// WithTopSection overrides the name of the synthetic section that collects
// keys appearing before the first explicit header. An empty name falls back
// to DefaultTopSection.
func WithTopSection(name string) Option {
	return func(cfg *parseConfig) {
		if name != "" {
			cfg.topSection = name
		}
	}
}

// Document is an immutable in-memory view of a parsed configuration file.
type Document struct {
	file       *ini.File
	topSection string
}

// Load reads and parses the INI file at path.
func Load(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads INI content from r. The synthetic top section header and the
// original content are combined into one virtual stream, so the input itself
// is never modified or rewritten.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	cfg := parseConfig{topSection: DefaultTopSection}
	for _, opt := range opts {
		opt(&cfg)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	if err := checkSectionHeaders(data, cfg.topSection); err != nil {
		return nil, err
	}

	virtual := io.MultiReader(
		strings.NewReader("["+cfg.topSection+"]\n"),
		bytes.NewReader(data),
	)
	file, err := ini.LoadSources(parserOptions(), virtual)
	if err != nil {
		return nil, fmt.Errorf("parse INI content: %w", err)
	}

	return &Document{file: file, topSection: cfg.topSection}, nil
}

// Lookup returns the value stored under section and key. Absence of either
// the section or the key is reported through found, not as an error.
func (d *Document) Lookup(section, key string) (value string, found bool) {
	sec, err := d.file.GetSection(section)
	if err != nil {
		return "", false
	}
	k, err := sec.GetKey(key)
	if err != nil {
		return "", false
	}
	return k.String(), true
}

// TopSection returns the name assigned to keys that precede the first
// explicit section header.
func (d *Document) TopSection() string {
	return d.topSection
}

// Sections returns all section names in file order, starting with the
// synthetic top section. The parser's internal default section is omitted.
func (d *Document) Sections() []string {
	names := d.file.SectionStrings()
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == ini.DefaultSection {
			continue
		}
		out = append(out, name)
	}
	return out
}

// parserOptions matches the classic config-file dialect: keys compare
// case-insensitively, inline ;/# text belongs to the value, indented lines
// continue the previous value, and surrounding quotes are kept verbatim.
func parserOptions() ini.LoadOptions {
	return ini.LoadOptions{
		InsensitiveKeys:            true,
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
		PreserveSurroundedQuote:    true,
	}
}

// checkSectionHeaders rejects content that declares the same section twice.
// The underlying parser merges repeated headers instead of failing, so
// duplicates have to be caught before parsing. Indented header-looking lines
// are left to the parser: they may be continuations of a multiline value.
func checkSectionHeaders(data []byte, topSection string) error {
	seen := map[string]struct{}{topSection: {}}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		name, ok := sectionHeader(scanner.Text())
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("section [%s]: %w", name, ErrDuplicateSection)
		}
		seen[name] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan content: %w", err)
	}
	return nil
}

// sectionHeader extracts the section name declared on line, reading header
// lines the same way the parser does: from the opening '[' to the last ']'.
func sectionHeader(line string) (string, bool) {
	if len(line) == 0 || line[0] != '[' {
		return "", false
	}
	end := strings.LastIndex(line, "]")
	if end <= 0 {
		return "", false
	}
	return line[1:end], true
}
