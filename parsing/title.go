package parsing

import (
	"regexp"

	"github.com/AliceBotProject/alicebot-store/models"
)

// titleExp matches issue titles in the format:
//
//	[KIND]: NAME
//
// Groups:
//  1. KIND
//  2. NAME
var titleExp *regexp.Regexp = regexp.MustCompile(`^\[(.+)\]:\s*(.+)$`)

// ParseTitle parses an issue title into a submission kind and a display
// name. The kind token is matched case sensitively against the closed set
// of kinds.
func ParseTitle(title string) (models.Kind, string, error) {
	match := titleExp.FindStringSubmatch(title)
	if match == nil {
		return "", "", ParseError{
			What:            "issue title",
			Why:             "title format invalid",
			FixInstructions: "title the issue `[plugin]: name`, `[adapter]: name` or `[bot]: name`",
		}
	}

	kind := models.Kind(match[1])
	switch kind {
	case models.KindPlugin, models.KindAdapter, models.KindBot:
		return kind, match[2], nil
	}

	return "", "", ParseError{
		What:            "issue title",
		Why:             "title format invalid",
		FixInstructions: "the kind must be one of `plugin`, `adapter` or `bot`",
	}
}
