package batch

import (
	"path/filepath"
	"strings"
)

// Preview is the name RenamePDFs would give one input.
type Preview struct {
	Input string

	// FileName is empty when no consignee name was found or the text could
	// not be read.
	FileName string

	Err error
}

// PreviewRenames resolves the output names for inputs without writing
// anything. Names are counted across inputs exactly as RenamePDFs counts
// them.
func (p *Processor) PreviewRenames(inputs []string) []Preview {
	counter := NewNameCounter()
	previews := make([]Preview, 0, len(inputs))

	for _, input := range inputs {
		preview := Preview{Input: filepath.Base(input)}

		pages, err := p.extractor.PageTexts(input)
		if err != nil {
			preview.Err = err
			previews = append(previews, preview)
			continue
		}

		if name, ok := p.names.Extract(strings.Join(pages, "\n")); ok {
			preview.FileName = counter.Next(name)
		}
		previews = append(previews, preview)
	}

	return previews
}
