package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/pkg/workerpool"
)

// DefaultActivityLimit is the page size used when the caller does not set one.
const DefaultActivityLimit = 20

// activityFetchWorkers bounds the concurrent source fetches per feed build.
const activityFetchWorkers = 3

// ActivityWindow is an offset/limit page over the merged feed.
type ActivityWindow struct {
	Offset int
	Limit  int
}

// ActivityFeedBuilder merges the independently stored event kinds of a
// project into one newest-first stream. It only reads; building the same
// window twice over unchanged data yields identical output.
type ActivityFeedBuilder struct {
	chain   ChainRepository
	content ContentRepository
	logger  *zap.Logger
}

// NewActivityFeedBuilder constructs the builder.
func NewActivityFeedBuilder(chain ChainRepository, content ContentRepository, logger *zap.Logger) *ActivityFeedBuilder {
	return &ActivityFeedBuilder{
		chain:   chain,
		content: content,
		logger:  logger,
	}
}

// Build returns one page of the merged activity feed of a project. The
// project title stamped on announcement, update, milestone, and creation
// entries comes from the current record; a censored title propagates as
// redacted here too.
func (b *ActivityFeedBuilder) Build(ctx context.Context, projectID string, window ActivityWindow) ([]model.ProjectActivity, error) {
	projectIDCopy := projectID
	rec, err := b.content.ProjectBySelector(ctx, model.ProjectSelector{ProjectID: &projectIDCopy})
	if err != nil {
		return nil, storeErr(err)
	}
	return b.BuildForRecord(ctx, rec, window)
}

// BuildForRecord builds the feed for an already-resolved project record.
// Callers that have the record in hand use this so one request observes a
// single censorship state.
func (b *ActivityFeedBuilder) BuildForRecord(ctx context.Context, rec *model.ProjectRecord, window ActivityWindow) ([]model.ProjectActivity, error) {
	projectID := rec.ID

	title := rec.Basics.Title
	if censored(rec.Censorship, "title") {
		title = ""
	}

	var (
		backings      []model.BackingEvent
		creation      *model.ProjectCreationEvent
		milestones    []model.ProtocolMilestoneEvent
		announcements []model.ProjectAnnouncement
		updates       []model.ProjectUpdateEvent
	)

	fetches := []func(context.Context) error{
		func(ctx context.Context) error {
			var ferr error
			backings, ferr = b.chain.BackingEvents(ctx, projectID)
			return ferr
		},
		func(ctx context.Context) error {
			var ferr error
			creation, ferr = b.chain.ProjectCreation(ctx, projectID)
			return ferr
		},
		func(ctx context.Context) error {
			var ferr error
			milestones, ferr = b.chain.ProtocolMilestones(ctx, projectID)
			return ferr
		},
		func(ctx context.Context) error {
			var ferr error
			announcements, ferr = b.content.Announcements(ctx, projectID)
			return ferr
		},
		func(ctx context.Context) error {
			var ferr error
			updates, ferr = b.content.ProjectUpdates(ctx, projectID)
			return ferr
		},
	}

	if err := workerpool.Run(ctx, activityFetchWorkers, fetches); err != nil {
		return nil, storeErr(err)
	}

	// Sources are appended in a fixed order and sorted stably, so repeated
	// builds over unchanged data are byte-identical.
	activities := make([]model.ProjectActivity, 0,
		2*len(backings)+len(milestones)+len(announcements)+len(updates)+1)

	if creation != nil {
		activities = append(activities, creationActivity(*creation, title))
	}
	for _, e := range backings {
		activities = append(activities, backActivity(e))
		// A spent row without its block time cannot be placed in the
		// feed; the entry appears once ingestion fills the time in.
		if e.SpentSlot != nil && e.SpentTime != nil {
			activities = append(activities, unbackActivity(e))
		}
	}
	for _, a := range announcements {
		activities = append(activities, announcementActivity(projectID, a, title))
	}
	for _, u := range updates {
		activities = append(activities, updateActivity(u, title))
	}
	for _, m := range milestones {
		activities = append(activities, milestoneActivity(m, title))
	}

	sort.SliceStable(activities, func(i, j int) bool {
		a, b := activities[i], activities[j]
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt > b.CreatedAt
		}
		if a.Slot != b.Slot {
			return a.Slot > b.Slot
		}
		return a.Ordinal > b.Ordinal
	})

	return page(activities, window), nil
}

func page(activities []model.ProjectActivity, window ActivityWindow) []model.ProjectActivity {
	limit := window.Limit
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	offset := window.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(activities) {
		return []model.ProjectActivity{}
	}
	end := offset + limit
	if end > len(activities) {
		end = len(activities)
	}
	return activities[offset:end]
}

func backActivity(e model.BackingEvent) model.ProjectActivity {
	return model.ProjectActivity{
		CreatedAt: e.CreatedTime,
		CreatedBy: e.Address,
		ProjectID: e.ProjectID,
		Slot:      e.CreatedSlot,
		Ordinal:   e.ID,
		Action: model.ActivityAction{
			Type: model.ActionBack,
			Back: &model.BackAction{
				CreatedBy:            e.Address,
				LovelaceAmount:       e.LovelaceAmount,
				Message:              e.Message,
				MessageModeratedTags: e.ModeratedTags,
				CreatedTx:            e.CreatedTx,
			},
		},
	}
}

func unbackActivity(e model.BackingEvent) model.ProjectActivity {
	activity := model.ProjectActivity{
		CreatedAt: *e.SpentTime,
		CreatedBy: e.Address,
		ProjectID: e.ProjectID,
		Slot:      *e.SpentSlot,
		Ordinal:   e.ID,
		Action: model.ActivityAction{
			Type: model.ActionUnback,
			Unback: &model.UnbackAction{
				CreatedBy:            e.Address,
				LovelaceAmount:       e.LovelaceAmount,
				Message:              e.Message,
				MessageModeratedTags: e.ModeratedTags,
			},
		},
	}
	if e.SpentTx != nil {
		activity.Action.Unback.CreatedTx = *e.SpentTx
	}
	return activity
}

func announcementActivity(projectID string, a model.ProjectAnnouncement, projectTitle string) model.ProjectActivity {
	title := &a.Title
	message := &a.Summary
	if censored(a.Censorship, "title") {
		title = nil
	}
	if censored(a.Censorship, "summary") {
		message = nil
	}

	var ordinal uint64
	if a.SequenceNumber > 0 {
		ordinal = uint64(a.SequenceNumber)
	}

	return model.ProjectActivity{
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
		ProjectID: projectID,
		Ordinal:   ordinal,
		Action: model.ActivityAction{
			Type: model.ActionAnnouncement,
			Announcement: &model.AnnouncementAction{
				ProjectTitle: projectTitle,
				Title:        title,
				Message:      message,
			},
		},
	}
}

func updateActivity(u model.ProjectUpdateEvent, projectTitle string) model.ProjectActivity {
	return model.ProjectActivity{
		CreatedAt: u.CreatedAt,
		CreatedBy: u.CreatedBy,
		ProjectID: u.ProjectID,
		Ordinal:   uint64(u.ID),
		Action: model.ActivityAction{
			Type: model.ActionProjectUpdate,
			ProjectUpdate: &model.ProjectUpdateAction{
				ProjectTitle: projectTitle,
				Scope:        u.Scopes,
				Message:      u.Message,
			},
		},
	}
}

func milestoneActivity(m model.ProtocolMilestoneEvent, projectTitle string) model.ProjectActivity {
	return model.ProjectActivity{
		CreatedAt: m.Time,
		ProjectID: m.ProjectID,
		Slot:      m.Slot,
		Ordinal:   uint64(m.MilestonesSnapshot),
		Action: model.ActivityAction{
			Type: model.ActionProtocolMilestoneReached,
			ProtocolMilestoneReached: &model.ProtocolMilestoneReachedAction{
				ProjectTitle:       projectTitle,
				MilestonesSnapshot: m.MilestonesSnapshot,
			},
		},
	}
}

func creationActivity(e model.ProjectCreationEvent, projectTitle string) model.ProjectActivity {
	return model.ProjectActivity{
		CreatedAt: e.CreatedTime,
		CreatedBy: e.CreatedBy,
		ProjectID: e.ProjectID,
		Slot:      e.CreatedSlot,
		Action: model.ActivityAction{
			Type: model.ActionProjectCreation,
			ProjectCreation: &model.ProjectCreationAction{
				ProjectTitle:      projectTitle,
				SponsorshipAmount: e.SponsorshipAmount,
			},
		},
	}
}

func censored(censorship []string, field string) bool {
	for _, name := range censorship {
		if name == field {
			return true
		}
	}
	return false
}
