package model

import "encoding/json"

// Timestamps are unix milliseconds throughout; authored rich-text bodies are
// kept opaque as raw JSON since the backend never interprets them.

// ProjectImage is an uploaded image with its crop frame.
type ProjectImage struct {
	URL    string  `json:"url"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ProjectBasics holds the identity fields a project card needs.
type ProjectBasics struct {
	Title       string         `json:"title"`
	Slogan      string         `json:"slogan"`
	CustomURL   string         `json:"customUrl"`
	Tags        []string       `json:"tags"`
	Summary     string         `json:"summary"`
	CoverImages []ProjectImage `json:"coverImages"`
	LogoImage   *ProjectImage  `json:"logoImage"`
}

// FrequentlyAskedQuestion is a single FAQ entry.
type FrequentlyAskedQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ProjectCommunity groups the social links and FAQ of a project.
type ProjectCommunity struct {
	SocialChannels           []string                  `json:"socialChannels"`
	FrequentlyAskedQuestions []FrequentlyAskedQuestion `json:"frequentlyAskedQuestions"`
}

// ProjectDescription is the long-form authored description.
type ProjectDescription struct {
	Body json.RawMessage `json:"body"`
}

// ProjectBenefits is the authored backer-benefits section.
type ProjectBenefits struct {
	Perks json.RawMessage `json:"perks"`
}

// ProjectMilestone is one entry of a project roadmap. IsCompleted is
// monotonic: a completed milestone never becomes incomplete again.
type ProjectMilestone struct {
	ID          string `json:"id"`
	Date        int64  `json:"date"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Funding     *int64 `json:"funding,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
}

// ProjectRoadmap is the ordered milestone list of a project.
type ProjectRoadmap []ProjectMilestone

// ProjectAnnouncement is a community update authored by the project owner.
// SequenceNumber is a per-project 1-based ordinal used only for display; the
// causal order of announcements is CreatedAt.
type ProjectAnnouncement struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Body           json.RawMessage `json:"body"`
	Summary        string          `json:"summary"`
	CreatedAt      int64           `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	SequenceNumber int             `json:"sequenceNumber"`
	Censorship     []string        `json:"censorship,omitempty"`
}

// ProjectHistory carries lifecycle timestamps. Fields are pointers because
// availability lags the underlying events: chain ingestion and off-chain
// authoring run on independent schedules.
type ProjectHistory struct {
	CreatedBy  *string `json:"createdBy,omitempty"`
	CreatedAt  *int64  `json:"createdAt,omitempty"`
	UpdatedAt  *int64  `json:"updatedAt,omitempty"`
	ClosedAt   *int64  `json:"closedAt,omitempty"`
	DelistedAt *int64  `json:"delistedAt,omitempty"`
}

// ProjectStats carries chain-derived figures. Every field is optional for
// the same reason as ProjectHistory: absence means "not yet known", which is
// distinct from a known zero.
type ProjectStats struct {
	NumSupporters                            *int   `json:"numSupporters,omitempty"`
	NumLovelacesStaked                       *int64 `json:"numLovelacesStaked,omitempty"`
	NumLovelacesWithdrawn                    *int64 `json:"numLovelacesWithdrawn,omitempty"`
	NumLovelacesAvailable                    *int64 `json:"numLovelacesAvailable,omitempty"`
	NumLovelacesRaised                       *int64 `json:"numLovelacesRaised,omitempty"`
	AverageMillisecondsBetweenProjectUpdates *int64 `json:"averageMillisecondsBetweenProjectUpdates,omitempty"`
}

// ProjectCategories flags curated placements.
type ProjectCategories struct {
	Featured *bool `json:"featured,omitempty"`
	Sponsor  *bool `json:"sponsor,omitempty"`
}

// SupporterInfo is a leaderboard row, always derived from chain data.
type SupporterInfo struct {
	Address        string `json:"address"`
	LovelaceAmount int64  `json:"lovelaceAmount"`
}

// DetailedProject is the aggregate view returned by the project endpoint.
// Which fields are populated depends on the requested preset; every field
// beyond ID is optional and omitted when not loaded.
type DetailedProject struct {
	ID                string                `json:"id"`
	Basics            *ProjectBasics        `json:"basics,omitempty"`
	Community         *ProjectCommunity     `json:"community,omitempty"`
	History           *ProjectHistory       `json:"history,omitempty"`
	Stats             *ProjectStats         `json:"stats,omitempty"`
	Categories        *ProjectCategories    `json:"categories,omitempty"`
	Match             *float64              `json:"match,omitempty"`
	Description       *ProjectDescription   `json:"description,omitempty"`
	Roadmap           ProjectRoadmap        `json:"roadmap,omitempty"`
	Benefits          *ProjectBenefits      `json:"benefits,omitempty"`
	Announcements     []ProjectAnnouncement `json:"announcements,omitempty"`
	Activities        []ProjectActivity     `json:"activities,omitempty"`
	TopSupporters     []SupporterInfo       `json:"topSupporters,omitempty"`
	Censorship        []string              `json:"censorship,omitempty"`
	SponsorshipAmount *int64                `json:"sponsorshipAmount,omitempty"`
	SponsorshipUntil  *int64                `json:"sponsorshipUntil,omitempty"`
	BackedByViewer    *bool                 `json:"backedByViewer,omitempty"`
}

// Preset names a detail tier of DetailedProject. Field inclusion is
// monotonic: every field minimal returns is also returned by basic and full.
type Preset string

const (
	PresetMinimal Preset = "minimal"
	PresetBasic   Preset = "basic"
	PresetFull    Preset = "full"
)

// Valid reports whether p is one of the known presets.
func (p Preset) Valid() bool {
	switch p {
	case PresetMinimal, PresetBasic, PresetFull:
		return true
	}
	return false
}

// Includes reports whether p covers every field the other preset covers.
func (p Preset) Includes(other Preset) bool {
	return p.rank() >= other.rank()
}

func (p Preset) rank() int {
	switch p {
	case PresetBasic:
		return 1
	case PresetFull:
		return 2
	default:
		return 0
	}
}

// ProjectRecord is the off-chain projects row as stored, before any preset
// selection or redaction is applied.
type ProjectRecord struct {
	ID                string
	CustomURL         *string
	OwnerAddress      string
	Basics            ProjectBasics
	Community         ProjectCommunity
	Censorship        []string
	Match             *float64
	Featured          *bool
	Sponsor           *bool
	SponsorshipAmount *int64
	SponsorshipUntil  *int64
	CreatedAt         *int64
	UpdatedAt         *int64
	ClosedAt          *int64
	DelistedAt        *int64
}

// Active reports whether the project is neither closed nor delisted.
func (r ProjectRecord) Active() bool {
	return r.ClosedAt == nil && r.DelistedAt == nil
}

// ProjectContent groups the long-form authored sections stored off-chain.
type ProjectContent struct {
	Description *ProjectDescription
	Benefits    *ProjectBenefits
	Roadmap     ProjectRoadmap
}

// ProjectSelector identifies a project by exactly one of its identities,
// optionally narrowed to active (neither closed nor delisted) projects.
// Which selector fields may be combined is enforced at the transport
// boundary, not here.
type ProjectSelector struct {
	ProjectID    *string
	CustomURL    *string
	OwnerAddress *string
	Active       *bool
}

// ProjectStatsRow is one cached chain-stats row, as written by the stats
// refresher sweep.
type ProjectStatsRow struct {
	ProjectID string
	Stats     ProjectStats
}

// ProjectUpdateEvent records one owner edit of project content, with the
// exact field groups that changed. ID is the insertion-ordered row id; it
// breaks ties between updates sharing a created timestamp.
type ProjectUpdateEvent struct {
	ID        int64
	ProjectID string
	Scopes    []UpdateScope
	Message   *string
	CreatedAt int64
	CreatedBy string
}
