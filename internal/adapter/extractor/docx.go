package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// extractDOCX joins the text of every w:p paragraph of the main document part with newlines.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	body, err := readZipFile(zr.File, docxBody)
	if err != nil {
		return "", err
	}

	paragraphs, err := docxParagraphs(body)
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

func readZipFile(files []*zip.File, target string) ([]byte, error) {
	for _, f := range files {
		if f == nil || !strings.EqualFold(f.Name, target) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("file not found: %s", target)
}

// docxParagraphs walks the XML token stream; runs inside a paragraph are
// concatenated, tabs and breaks keep their whitespace.
func docxParagraphs(body []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		inParagraph bool
		inText      bool
		text        strings.Builder
		out         []string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", docxBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				text.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					text.WriteByte('\t')
				}
			case "br", "cr":
				if inParagraph {
					text.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inParagraph {
					out = append(out, text.String())
					inParagraph = false
				}
			}
		}
	}
	return out, nil
}
