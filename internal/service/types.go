// Package service implements the read core: live output resolution, project
// detail aggregation, and the merged activity feed.
package service

import (
	"context"

	"github.com/teiki-network/teiki-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ChainRepository describes the ledger store reads the services need.
	// Every method issues a single snapshot-consistent query; the store is
	// appended to concurrently by the chain ingestion pipeline.
	ChainRepository interface {
		UnspentProjectScriptOutputs(ctx context.Context, projectID string) ([]model.Output, error)
		BackingStats(ctx context.Context, projectID string) (*model.ChainBackingStats, error)
		TopSupporters(ctx context.Context, projectID string, limit int) ([]model.SupporterInfo, error)
		ViewerBacking(ctx context.Context, projectID, address string) (int64, error)
		BackingEvents(ctx context.Context, projectID string) ([]model.BackingEvent, error)
		ProjectCreation(ctx context.Context, projectID string) (*model.ProjectCreationEvent, error)
		ProtocolMilestones(ctx context.Context, projectID string) ([]model.ProtocolMilestoneEvent, error)
		ProjectIDs(ctx context.Context) ([]string, error)
	}

	// ContentRepository describes the off-chain content store operations.
	ContentRepository interface {
		ProjectBySelector(ctx context.Context, sel model.ProjectSelector) (*model.ProjectRecord, error)
		ProjectContent(ctx context.Context, projectID string) (*model.ProjectContent, error)
		Announcements(ctx context.Context, projectID string) ([]model.ProjectAnnouncement, error)
		CreateAnnouncement(ctx context.Context, projectID string, a model.ProjectAnnouncement) (*model.ProjectAnnouncement, error)
		ProjectUpdates(ctx context.Context, projectID string) ([]model.ProjectUpdateEvent, error)
		CachedStats(ctx context.Context, projectID string) (*model.ProjectStats, error)
		UpsertStats(ctx context.Context, rows []model.ProjectStatsRow) error
	}

	// ResolverMetrics counts resolver anomalies.
	ResolverMetrics interface {
		AmbiguousLiveOutput()
	}

	// RefresherMetrics tracks the stats refresher sweeps.
	RefresherMetrics interface {
		ObserveProject(err error)
		ObserveRun(err error)
	}
)
