package source

import (
	"os"
	"slices"
)

// TextFlags encodes normalizations applied while loading text from disk.
type TextFlags uint8

const (
	// TextHadBOM marks content that carried a UTF-8 byte order mark.
	TextHadBOM TextFlags = 1 << iota
	// TextNormalizedCRLF marks content whose \r\n pairs were rewritten.
	TextNormalizedCRLF
)

// LoadFile reads a file and normalizes it the way host text fields report
// their content: no BOM, \n line endings. Scalar offsets from the grammar
// engine are only meaningful against the normalized form.
func LoadFile(path string) (*Text, TextFlags, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	var flags TextFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= TextHadBOM
	}
	content, changed := normalizeCRLF(content)
	if changed {
		flags |= TextNormalizedCRLF
	}
	text, err := NewText(string(content))
	if err != nil {
		return nil, flags, err
	}
	return text, flags, nil
}

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// The second result reports whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Fast path: no \r at all.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}
