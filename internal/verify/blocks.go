package verify

import (
	"regexp"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// findBlockByRegex returns the first block whose text matches the
// pattern, with the submatch slice, or nil if no block matches
func findBlockByRegex(ev *model.Evidence, re *regexp.Regexp) (*model.TextBlock, []string) {
	for i := range ev.TextBlocks {
		if m := re.FindStringSubmatch(ev.TextBlocks[i].Text); m != nil {
			return &ev.TextBlocks[i], m
		}
	}
	return nil, nil
}

// findBlockByContent returns the first block containing any of the terms,
// case-insensitive
func findBlockByContent(ev *model.Evidence, terms ...string) *model.TextBlock {
	for i := range ev.TextBlocks {
		blockLower := strings.ToLower(ev.TextBlocks[i].Text)
		for _, term := range terms {
			if strings.Contains(blockLower, strings.ToLower(term)) {
				return &ev.TextBlocks[i]
			}
		}
	}
	return nil
}

// blockLocation extracts a copy of the block's bounding box for a result,
// or nil when no block was identified
func blockLocation(block *model.TextBlock) *model.BoundingBox {
	if block == nil {
		return nil
	}
	box := block.BoundingBox
	return &box
}
