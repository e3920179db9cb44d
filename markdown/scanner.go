// Package markdown finds diagram code blocks in Markdown documents.
package markdown

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNoBlocks is returned when a document holds no diagram code block.
var ErrNoBlocks = errors.New("no diagram code blocks")

// Block is a fenced code block in a diagram language.
type Block struct {
	Lang      string // fence language, lower case: mermaid, plantuml, etc.
	Content   string // lines between the fences, with the fence indentation removed
	StartLine int    // 1-based line of the opening fence
	EndLine   int    // 1-based line of the closing fence
}

// IsMarkdown reports whether filename has a Markdown extension.
func IsMarkdown(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Blocks returns the diagram code blocks of content in document order. A block
// without a closing fence is ignored.
func Blocks(content string) []Block {
	var (
		blocks  []Block
		current *Block
		indent  string
		body    []string
	)
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if current == nil {
			if !strings.HasPrefix(trimmed, "```") {
				continue
			}
			lang := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))
			if formatOf(lang) == "" {
				continue
			}
			current = &Block{Lang: lang, StartLine: i + 1}
			indent = line[:len(line)-len(trimmed)]
			body = body[:0]
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i + 1
			current.Content = strings.Join(body, "\n")
			blocks = append(blocks, *current)
			current = nil
			continue
		}
		body = append(body, strings.TrimPrefix(line, indent))
	}
	return blocks
}

// Select returns the n-th (1-based) diagram block of content.
func Select(content string, n int) (Block, error) {
	blocks := Blocks(content)
	if len(blocks) == 0 {
		return Block{}, ErrNoBlocks
	}
	if n < 1 || n > len(blocks) {
		summaries := make([]string, len(blocks))
		for i, b := range blocks {
			summaries[i] = b.Summary(i)
		}
		return Block{}, fmt.Errorf("block %d out of range, found:\n%s", n, strings.Join(summaries, "\n"))
	}
	return blocks[n-1], nil
}

// Format returns the importer format name for the block's language.
func (b Block) Format() string {
	return formatOf(b.Lang)
}

func formatOf(lang string) string {
	switch lang {
	case "mermaid":
		return "mermaid"
	case "plantuml", "puml":
		return "plantuml"
	case "graphviz", "dot":
		return "dot"
	case "d2":
		return "d2"
	default:
		return ""
	}
}

// Summary describes the block on one line: its position, language and first line.
func (b Block) Summary(index int) string {
	preview := ""
	for _, line := range strings.Split(b.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "@startuml") {
			preview = trimmed
			if len(preview) > 50 {
				preview = preview[:47] + "..."
			}
			break
		}
	}
	return fmt.Sprintf("%d. %s (line %d): %s", index+1, b.Lang, b.StartLine, preview)
}
