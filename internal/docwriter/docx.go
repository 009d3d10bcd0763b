package docwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

type implDocx struct{}

// NewDocx creates a styled .docx transcript writer.
func NewDocx() Writer {
	return &implDocx{}
}

func (w *implDocx) Write(path, title, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	titleRun := doc.AddParagraph("").AddText(title)
	titleRun.Font(fontName).Size(16).Color("000000").Bold(true)
	doc.AddParagraph("")

	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		p := doc.AddParagraph("")
		p.AddText(para).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (w *implDocx) Ext() string {
	return ".docx"
}
