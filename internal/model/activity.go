package model

import (
	"encoding/json"
	"fmt"
)

// ActivityActionType discriminates the closed set of activity variants.
type ActivityActionType string

const (
	ActionBack                     ActivityActionType = "back"
	ActionUnback                   ActivityActionType = "unback"
	ActionAnnouncement             ActivityActionType = "announcement"
	ActionProjectUpdate            ActivityActionType = "project_update"
	ActionProtocolMilestoneReached ActivityActionType = "protocol_milestone_reached"
	ActionProjectCreation          ActivityActionType = "project_creation"
)

// BackAction is a backer locking funds behind a project.
type BackAction struct {
	CreatedBy            string   `json:"createdBy"`
	LovelaceAmount       int64    `json:"lovelaceAmount"`
	Message              *string  `json:"message"`
	MessageModeratedTags []string `json:"messageModeratedTags,omitempty"`
	CreatedTx            string   `json:"createdTx"`
}

// UnbackAction is a backer releasing previously locked funds.
type UnbackAction struct {
	CreatedBy            string   `json:"createdBy"`
	LovelaceAmount       int64    `json:"lovelaceAmount"`
	Message              *string  `json:"message"`
	MessageModeratedTags []string `json:"messageModeratedTags,omitempty"`
	CreatedTx            string   `json:"createdTx"`
}

// AnnouncementAction is a published community update.
type AnnouncementAction struct {
	ProjectTitle string  `json:"projectTitle"`
	Title        *string `json:"title"`
	Message      *string `json:"message"`
}

// ProjectUpdateAction is an owner edit of project content, carrying the
// exact field groups that changed.
type ProjectUpdateAction struct {
	ProjectTitle string        `json:"projectTitle"`
	Scope        []UpdateScope `json:"scope"`
	Message      *string       `json:"message"`
}

// ProtocolMilestoneReachedAction marks a project crossing a protocol-wide
// funding milestone.
type ProtocolMilestoneReachedAction struct {
	ProjectTitle       string  `json:"projectTitle"`
	MilestonesSnapshot int     `json:"milestonesSnapshot"`
	Message            *string `json:"message"`
}

// ProjectCreationAction marks the on-chain creation of a project.
type ProjectCreationAction struct {
	ProjectTitle      string  `json:"projectTitle"`
	SponsorshipAmount *int64  `json:"sponsorshipAmount"`
	Message           *string `json:"message"`
}

// ActivityAction is a closed tagged union. Exactly the variant named by Type
// is non-nil; consumers must switch exhaustively on Type. JSON encoding
// flattens the active variant next to the "type" tag.
type ActivityAction struct {
	Type                     ActivityActionType
	Back                     *BackAction
	Unback                   *UnbackAction
	Announcement             *AnnouncementAction
	ProjectUpdate            *ProjectUpdateAction
	ProtocolMilestoneReached *ProtocolMilestoneReachedAction
	ProjectCreation          *ProjectCreationAction
}

type actionTag struct {
	Type ActivityActionType `json:"type"`
}

// MarshalJSON flattens the active variant into a single tagged object.
func (a ActivityAction) MarshalJSON() ([]byte, error) {
	switch a.Type {
	case ActionBack:
		return json.Marshal(struct {
			actionTag
			*BackAction
		}{actionTag{a.Type}, a.Back})
	case ActionUnback:
		return json.Marshal(struct {
			actionTag
			*UnbackAction
		}{actionTag{a.Type}, a.Unback})
	case ActionAnnouncement:
		return json.Marshal(struct {
			actionTag
			*AnnouncementAction
		}{actionTag{a.Type}, a.Announcement})
	case ActionProjectUpdate:
		return json.Marshal(struct {
			actionTag
			*ProjectUpdateAction
		}{actionTag{a.Type}, a.ProjectUpdate})
	case ActionProtocolMilestoneReached:
		return json.Marshal(struct {
			actionTag
			*ProtocolMilestoneReachedAction
		}{actionTag{a.Type}, a.ProtocolMilestoneReached})
	case ActionProjectCreation:
		return json.Marshal(struct {
			actionTag
			*ProjectCreationAction
		}{actionTag{a.Type}, a.ProjectCreation})
	default:
		return nil, fmt.Errorf("unknown activity action type %q", a.Type)
	}
}

// UnmarshalJSON decodes the tag first, then the matching variant payload.
func (a *ActivityAction) UnmarshalJSON(data []byte) error {
	var tag actionTag
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("decode activity action tag: %w", err)
	}

	*a = ActivityAction{Type: tag.Type}
	switch tag.Type {
	case ActionBack:
		a.Back = &BackAction{}
		return json.Unmarshal(data, a.Back)
	case ActionUnback:
		a.Unback = &UnbackAction{}
		return json.Unmarshal(data, a.Unback)
	case ActionAnnouncement:
		a.Announcement = &AnnouncementAction{}
		return json.Unmarshal(data, a.Announcement)
	case ActionProjectUpdate:
		a.ProjectUpdate = &ProjectUpdateAction{}
		return json.Unmarshal(data, a.ProjectUpdate)
	case ActionProtocolMilestoneReached:
		a.ProtocolMilestoneReached = &ProtocolMilestoneReachedAction{}
		return json.Unmarshal(data, a.ProtocolMilestoneReached)
	case ActionProjectCreation:
		a.ProjectCreation = &ProjectCreationAction{}
		return json.Unmarshal(data, a.ProjectCreation)
	default:
		return fmt.Errorf("unknown activity action type %q", tag.Type)
	}
}

// ProjectActivity is one entry of the merged activity feed. Slot and Ordinal
// are internal tie-breakers that keep pagination deterministic when many
// entries share a CreatedAt; they are not part of the wire format.
type ProjectActivity struct {
	CreatedAt int64          `json:"createdAt"`
	CreatedBy string         `json:"createdBy"`
	ProjectID string         `json:"projectId,omitempty"`
	Action    ActivityAction `json:"action"`

	Slot    uint64 `json:"-"`
	Ordinal uint64 `json:"-"`
}
