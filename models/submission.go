package models

// Kind identifies which catalog a submission belongs to. The set of kinds
// is closed: every dispatch on Kind should handle exactly KindPlugin,
// KindAdapter and KindBot.
type Kind string

// KindPlugin identifies a plugin submission
const KindPlugin Kind = "plugin"

// KindAdapter identifies an adapter submission
const KindAdapter Kind = "adapter"

// KindBot identifies a bot submission
const KindBot Kind = "bot"

// Kinds holds every submission kind
var Kinds = []Kind{KindPlugin, KindAdapter, KindBot}

// CatalogFile returns the name of the JSON catalog file entries of this
// kind are stored in
func (k Kind) CatalogFile() string {
	return string(k) + "s.json"
}

// RequiredFields returns the names of the body fields a submission of this
// kind must provide. Field names double as the markdown heading text in
// the issue body and as the JSON keys in the catalog file.
func (k Kind) RequiredFields() []string {
	switch k {
	case KindPlugin, KindAdapter:
		return []string{"pypi_name", "module_name"}
	case KindBot:
		return []string{"description", "author", "homepage", "tags"}
	}

	return nil
}

// Submission is one parsed catalog entry derived from an issue. The three
// implementations are PluginSubmission, AdapterSubmission and BotSubmission.
type Submission interface {
	// SubmissionKind returns the kind of the submission
	SubmissionKind() Kind

	// SubmissionName returns the submission's unique name within
	// its catalog
	SubmissionName() string
}

// Header holds the fields shared by every submission kind
type Header struct {
	// Name is the display name, unique within the catalog
	Name string `json:"name" validate:"required"`

	// Time is the unix timestamp of the submission
	Time int64 `json:"time"`

	// IsOfficial is always false for community submissions
	IsOfficial bool `json:"is_official"`
}

// SubmissionName implements Submission
func (h Header) SubmissionName() string {
	return h.Name
}

// PluginSubmission is a plugin registered into plugins.json
type PluginSubmission struct {
	Header

	// PyPIName is the package's identifier on the package index
	PyPIName string `json:"pypi_name" validate:"required"`

	// ModuleName is the importable module name of the plugin
	ModuleName string `json:"module_name" validate:"required"`
}

// SubmissionKind implements Submission
func (PluginSubmission) SubmissionKind() Kind {
	return KindPlugin
}

// AdapterSubmission is an adapter registered into adapters.json
type AdapterSubmission struct {
	Header

	// PyPIName is the package's identifier on the package index
	PyPIName string `json:"pypi_name" validate:"required"`

	// ModuleName is the importable module name of the adapter
	ModuleName string `json:"module_name" validate:"required"`
}

// SubmissionKind implements Submission
func (AdapterSubmission) SubmissionKind() Kind {
	return KindAdapter
}

// BotSubmission is a bot registered into bots.json. Bots are metadata only,
// they carry no loadable package.
type BotSubmission struct {
	Header

	// Description of what the bot does
	Description string `json:"description" validate:"required"`

	// Author is the bot's author
	Author string `json:"author" validate:"required"`

	// Homepage is a link to the bot's homepage
	Homepage string `json:"homepage" validate:"required"`

	// Tags is a comma separated list of tags
	Tags string `json:"tags" validate:"required"`
}

// SubmissionKind implements Submission
func (BotSubmission) SubmissionKind() Kind {
	return KindBot
}
