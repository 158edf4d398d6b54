// Package fs provides file-based export of contacts.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/pipeline"
)

// ContactPath returns the file name for a contact card. The name is a slug
// of the contact's full name followed by the first 8 characters of its ID.
func ContactPath(c *prospect.Contact) string {
	slug := slugify(c.FullName())
	if slug == "" {
		slug = "contact"
	}
	if id := c.ID; id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		slug += "-" + id
	}
	return slug + ".md"
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// FormatContact formats a contact as a markdown card with YAML frontmatter.
// Notes become the body.
func FormatContact(c *prospect.Contact) string {
	var b strings.Builder
	b.WriteString("---\n")
	field := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strconv.Quote(value))
		b.WriteString("\n")
	}
	field("name", c.FullName())
	field("email", c.Email)
	field("phone", c.Phone)
	field("company", c.Company)
	field("title", c.Title)
	field("location", c.Location)
	field("website", c.Website)
	field("linkedin", c.LinkedInURL)
	field("industry", c.Industry)
	if len(c.Tags) > 0 {
		quoted := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			quoted[i] = strconv.Quote(t)
		}
		b.WriteString("tags: [")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString("]\n")
	}
	field("source", c.Source)
	b.WriteString("confidence: ")
	b.WriteString(strconv.FormatFloat(c.Confidence, 'f', -1, 64))
	b.WriteString(" # ")
	b.WriteString(pipeline.FormatConfidence(c.Confidence))
	b.WriteString("\n")
	field("job", c.JobID)
	b.WriteString("---\n")
	if c.Notes != "" {
		b.WriteString("\n")
		b.WriteString(c.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

// Exporter writes contact cards to a directory with atomic update
// semantics. Cards are saved to baseDir/name.tmp and moved to baseDir/name
// on Commit, replacing any previous export.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates an Exporter for the directory baseDir/name.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{baseDir: baseDir, name: name}
}

// Dir returns the final export directory.
func (e *Exporter) Dir() string {
	return filepath.Join(e.baseDir, e.name)
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

// Save writes one contact card to the temporary directory.
func (e *Exporter) Save(ctx context.Context, c *prospect.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	path := filepath.Join(e.tempDir(), ContactPath(c))
	return os.WriteFile(path, []byte(FormatContact(c)), 0644)
}

// Commit replaces the export directory with the saved cards.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.Dir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.Dir())
}

// Abort discards saved cards and leaves any previous export untouched.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// Export saves every contact and commits. Nothing is replaced on failure.
func (e *Exporter) Export(ctx context.Context, contacts []*prospect.Contact) error {
	for _, c := range contacts {
		if err := e.Save(ctx, c); err != nil {
			_ = e.Abort()
			return err
		}
	}
	return e.Commit()
}
