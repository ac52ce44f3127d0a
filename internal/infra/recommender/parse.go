package recommender

import (
	"strings"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"

	"github.com/goccy/go-json"
)

// ParseProposal extracts the proposal object from a model answer. Markdown code fences
// and text around the outermost JSON object are tolerated; anything else is malformed.
func ParseProposal(content string) (*entity.Proposal, error) {
	text := strings.TrimSpace(content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, domainerrors.ErrRecommenderMalformed.WithDetails("no JSON object in answer")
	}

	var proposal entity.Proposal
	if err := json.Unmarshal([]byte(text[start:end+1]), &proposal); err != nil {
		return nil, domainerrors.ErrRecommenderMalformed.WithDetails(err.Error())
	}

	return &proposal, nil
}
