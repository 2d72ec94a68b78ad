package parsing

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/AliceBotProject/alicebot-store/models"

	"gopkg.in/go-playground/validator.v9"
)

// SubmissionParser builds typed submissions from issue titles and bodies
type SubmissionParser struct {
	// Extractor turns the markdown issue body into heading keyed sections
	Extractor SectionExtractor

	// validate checks required submission fields after assembly
	validate *validator.Validate
}

// NewSubmissionParser creates a SubmissionParser which extracts body
// sections with extractor
func NewSubmissionParser(extractor SectionExtractor) *SubmissionParser {
	validate := validator.New()

	// Report field errors under the catalog's JSON key names, which are
	// also the heading names submitters write in the issue body
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &SubmissionParser{
		Extractor: extractor,
		validate:  validate,
	}
}

// ParseSubmission parses an issue title and body into a submission. The
// body's section keys must exactly match the required field names of the
// kind named by the title. The submission's time is set to now and community
// submissions are never official.
func (p *SubmissionParser) ParseSubmission(title, body string, now time.Time) (models.Submission, error) {
	kind, name, err := ParseTitle(title)
	if err != nil {
		return nil, err
	}

	sections := p.Extractor.Sections(body)

	if err := checkSectionKeys(kind, sections); err != nil {
		return nil, err
	}

	header := models.Header{
		Name:       name,
		Time:       now.Unix(),
		IsOfficial: false,
	}

	var submission models.Submission

	switch kind {
	case models.KindPlugin:
		submission = models.PluginSubmission{
			Header:     header,
			PyPIName:   sections["pypi_name"],
			ModuleName: sections["module_name"],
		}
	case models.KindAdapter:
		submission = models.AdapterSubmission{
			Header:     header,
			PyPIName:   sections["pypi_name"],
			ModuleName: sections["module_name"],
		}
	case models.KindBot:
		submission = models.BotSubmission{
			Header:      header,
			Description: sections["description"],
			Author:      sections["author"],
			Homepage:    sections["homepage"],
			Tags:        sections["tags"],
		}
	}

	if err := p.validate.Struct(submission); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, ParseError{
				What:          "issue body",
				Why:           "submission fields could not be validated",
				InternalError: err,
			}
		}

		fields := []string{}
		for _, fieldErr := range fieldErrs {
			fields = append(fields, fieldErr.Field())
		}

		return nil, ParseError{
			What: "issue body",
			Why: fmt.Sprintf("required field(s) empty: %s",
				strings.Join(fields, ", ")),
			FixInstructions: "fill in the section under each heading",
		}
	}

	return submission, nil
}

// checkSectionKeys ensures the section keys of an issue body exactly match
// the required field names of kind
func checkSectionKeys(kind models.Kind, sections map[string]string) error {
	required := kind.RequiredFields()

	requiredSet := map[string]bool{}
	for _, field := range required {
		requiredSet[field] = true
	}

	missing := []string{}
	for _, field := range required {
		if _, ok := sections[field]; !ok {
			missing = append(missing, field)
		}
	}

	extra := []string{}
	for key := range sections {
		if !requiredSet[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	if len(missing) > 0 {
		return ParseError{
			What: "issue body",
			Why: fmt.Sprintf("missing required field(s): %s",
				strings.Join(missing, ", ")),
			FixInstructions: fmt.Sprintf("add a `### %s` heading followed by "+
				"a paragraph for each missing field", missing[0]),
		}
	}

	if len(extra) > 0 {
		return ParseError{
			What: "issue body",
			Why: fmt.Sprintf("unexpected field(s): %s",
				strings.Join(extra, ", ")),
			FixInstructions: fmt.Sprintf("a %s submission takes exactly "+
				"these fields: %s", kind, strings.Join(required, ", ")),
		}
	}

	return nil
}
