package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/pkg/safe"
	"github.com/teiki-network/teiki-backend/pkg/workerpool"
)

// TopSupportersLimit is the leaderboard size of a full-detail response.
const TopSupportersLimit = 10

// fullSectionWorkers bounds the concurrent section fetches at the full preset.
const fullSectionWorkers = 4

// ProjectQuery selects one project and the detail tier to assemble.
type ProjectQuery struct {
	Selector      model.ProjectSelector
	Preset        model.Preset
	ViewerAddress *string
}

// ProjectAggregator assembles DetailedProject views from the chain store,
// the resolver, and the content store. Chain facts and off-chain content
// are written on independent schedules; any field may therefore be absent,
// and absence is preserved rather than defaulted.
type ProjectAggregator struct {
	chain    ChainRepository
	content  ContentRepository
	resolver *OutputResolver
	feed     *ActivityFeedBuilder
	logger   *zap.Logger
}

// NewProjectAggregator constructs the aggregator.
func NewProjectAggregator(
	chain ChainRepository,
	content ContentRepository,
	resolver *OutputResolver,
	feed *ActivityFeedBuilder,
	logger *zap.Logger,
) *ProjectAggregator {
	return &ProjectAggregator{
		chain:    chain,
		content:  content,
		resolver: resolver,
		feed:     feed,
		logger:   logger,
	}
}

// GetDetailedProject resolves the selector and assembles the requested
// preset. Field inclusion is monotonic across presets: basic returns
// everything minimal does, full everything basic does. Censorship is
// applied last, uniformly across presets.
func (a *ProjectAggregator) GetDetailedProject(ctx context.Context, q ProjectQuery) (*model.DetailedProject, error) {
	rec, err := a.content.ProjectBySelector(ctx, q.Selector)
	if err != nil {
		return nil, storeErr(err)
	}

	basics := rec.Basics
	out := &model.DetailedProject{
		ID:     rec.ID,
		Basics: &basics,
		Match:  rec.Match,
	}

	if q.Preset.Includes(model.PresetBasic) {
		if err := a.addGeneralInfo(ctx, rec, q.ViewerAddress, out); err != nil {
			return nil, err
		}
	}
	if q.Preset.Includes(model.PresetFull) {
		if err := a.addFullSections(ctx, rec, out); err != nil {
			return nil, err
		}
	}

	applyCensorship(out, rec.Censorship)
	return out, nil
}

func (a *ProjectAggregator) addGeneralInfo(ctx context.Context, rec *model.ProjectRecord, viewerAddress *string, out *model.DetailedProject) error {
	community := rec.Community
	out.Community = &community
	out.Censorship = rec.Censorship
	out.Categories = &model.ProjectCategories{
		Featured: rec.Featured,
		Sponsor:  rec.Sponsor,
	}
	out.SponsorshipAmount = rec.SponsorshipAmount
	out.SponsorshipUntil = rec.SponsorshipUntil

	creation, err := a.chain.ProjectCreation(ctx, rec.ID)
	if err != nil {
		return storeErr(err)
	}
	out.History = history(rec, creation)

	stats, err := a.collectStats(ctx, rec.ID)
	if err != nil {
		return err
	}
	out.Stats = stats

	if viewerAddress != nil {
		amount, err := a.chain.ViewerBacking(ctx, rec.ID, *viewerAddress)
		if err != nil {
			return storeErr(err)
		}
		backed := amount > 0
		out.BackedByViewer = &backed
	}

	return nil
}

func (a *ProjectAggregator) addFullSections(ctx context.Context, rec *model.ProjectRecord, out *model.DetailedProject) error {
	var (
		content       *model.ProjectContent
		announcements []model.ProjectAnnouncement
		activities    []model.ProjectActivity
		supporters    []model.SupporterInfo
	)

	fetches := []func(context.Context) error{
		func(ctx context.Context) error {
			var ferr error
			content, ferr = a.content.ProjectContent(ctx, rec.ID)
			return ferr
		},
		func(ctx context.Context) error {
			var ferr error
			announcements, ferr = a.content.Announcements(ctx, rec.ID)
			return ferr
		},
		func(ctx context.Context) error {
			var ferr error
			activities, ferr = a.feed.BuildForRecord(ctx, rec, ActivityWindow{Limit: DefaultActivityLimit})
			return ferr
		},
		func(ctx context.Context) error {
			var ferr error
			supporters, ferr = a.chain.TopSupporters(ctx, rec.ID, TopSupportersLimit)
			return ferr
		},
	}

	if err := workerpool.Run(ctx, fullSectionWorkers, fetches); err != nil {
		return storeErr(err)
	}

	out.Description = content.Description
	out.Benefits = content.Benefits
	out.Roadmap = content.Roadmap
	out.Announcements = announcements
	out.Activities = activities
	out.TopSupporters = supporters

	return nil
}

// collectStats prefers the refresher's cached row and falls back to a live
// computation when the cache has not seen the project yet.
func (a *ProjectAggregator) collectStats(ctx context.Context, projectID string) (*model.ProjectStats, error) {
	cached, err := a.content.CachedStats(ctx, projectID)
	if err != nil {
		return nil, storeErr(err)
	}
	if cached != nil {
		return cached, nil
	}

	live, err := computeChainStats(ctx, a.chain, a.content, a.resolver, projectID)
	if err != nil {
		return nil, err
	}
	return live, nil
}

func history(rec *model.ProjectRecord, creation *model.ProjectCreationEvent) *model.ProjectHistory {
	h := &model.ProjectHistory{
		UpdatedAt:  rec.UpdatedAt,
		ClosedAt:   rec.ClosedAt,
		DelistedAt: rec.DelistedAt,
	}
	if creation != nil {
		// The chain is the authority for who created the project and when.
		createdBy := creation.CreatedBy
		createdAt := creation.CreatedTime
		h.CreatedBy = &createdBy
		h.CreatedAt = &createdAt
	} else {
		owner := rec.OwnerAddress
		h.CreatedBy = &owner
		h.CreatedAt = rec.CreatedAt
	}
	return h
}

// computeChainStats derives per-project statistics from the chain store in
// single-query reads. Shared by the aggregator's live fallback and the
// background refresher.
func computeChainStats(
	ctx context.Context,
	chain ChainRepository,
	content ContentRepository,
	resolver *OutputResolver,
	projectID string,
) (*model.ProjectStats, error) {
	backing, err := chain.BackingStats(ctx, projectID)
	if err != nil {
		return nil, storeErr(err)
	}

	stats := &model.ProjectStats{}
	supporters := backing.NumSupporters
	staked := backing.NumLovelacesStaked
	withdrawn := backing.NumLovelacesWithdrawn
	raised := staked + withdrawn
	stats.NumSupporters = &supporters
	stats.NumLovelacesStaked = &staked
	stats.NumLovelacesWithdrawn = &withdrawn
	stats.NumLovelacesRaised = &raised

	live, err := resolver.ResolveLiveScriptOutput(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if live != nil {
		available, err := safe.Int64(live.Value)
		if err != nil {
			return nil, err
		}
		stats.NumLovelacesAvailable = &available
	}

	updates, err := content.ProjectUpdates(ctx, projectID)
	if err != nil {
		return nil, storeErr(err)
	}
	if interval := averageUpdateInterval(updates); interval != nil {
		stats.AverageMillisecondsBetweenProjectUpdates = interval
	}

	return stats, nil
}

// averageUpdateInterval needs at least two updates to produce a value;
// anything less stays absent rather than defaulting to zero.
func averageUpdateInterval(updates []model.ProjectUpdateEvent) *int64 {
	if len(updates) < 2 {
		return nil
	}

	newest := updates[0].CreatedAt
	oldest := updates[0].CreatedAt
	for _, u := range updates[1:] {
		if u.CreatedAt > newest {
			newest = u.CreatedAt
		}
		if u.CreatedAt < oldest {
			oldest = u.CreatedAt
		}
	}

	interval := (newest - oldest) / int64(len(updates)-1)
	return &interval
}
