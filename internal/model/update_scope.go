package model

import (
	"fmt"

	"github.com/teiki-network/teiki-backend/pkg/lovelace"
)

// UpdateScopeType enumerates the field groups a project owner can edit.
type UpdateScopeType string

const (
	ScopeDescription UpdateScopeType = "description"
	ScopeBenefits    UpdateScopeType = "benefits"
	ScopeTitle       UpdateScopeType = "title"
	ScopeSlogan      UpdateScopeType = "slogan"
	ScopeCustomURL   UpdateScopeType = "customUrl"
	ScopeTags        UpdateScopeType = "tags"
	ScopeSummary     UpdateScopeType = "summary"
	ScopeCoverImages UpdateScopeType = "coverImages"
	ScopeLogoImage   UpdateScopeType = "logoImage"
	ScopeRoadmap     UpdateScopeType = "roadmap"
	ScopeCommunity   UpdateScopeType = "community"
	ScopeSponsorship UpdateScopeType = "sponsorship"
)

// UpdateScopeTypes lists every scope variant in declaration order.
var UpdateScopeTypes = []UpdateScopeType{
	ScopeDescription,
	ScopeBenefits,
	ScopeTitle,
	ScopeSlogan,
	ScopeCustomURL,
	ScopeTags,
	ScopeSummary,
	ScopeCoverImages,
	ScopeLogoImage,
	ScopeRoadmap,
	ScopeCommunity,
	ScopeSponsorship,
}

// UpdateScope is one "what changed" marker on a project update. The
// sponsorship variant additionally carries the new sponsorship amount.
type UpdateScope struct {
	Type              UpdateScopeType `json:"type"`
	SponsorshipAmount *int64          `json:"sponsorshipAmount,omitempty"`
}

// FormatScope renders the human-readable label of an update scope, as shown
// in activity-log lines. It is total over the enumerated variants; an
// unknown variant is a programming error and panics.
func FormatScope(scope UpdateScope) string {
	switch scope.Type {
	case ScopeDescription:
		return "description"
	case ScopeBenefits:
		return "benefits"
	case ScopeRoadmap:
		return "roadmap"
	case ScopeCommunity:
		return "community info"
	case ScopeTitle:
		return "title"
	case ScopeSlogan:
		return "tagline"
	case ScopeCustomURL:
		return "custom URL"
	case ScopeTags:
		return "tags"
	case ScopeSummary:
		return "summary"
	case ScopeCoverImages:
		return "banners"
	case ScopeLogoImage:
		return "logo"
	case ScopeSponsorship:
		var amount int64
		if scope.SponsorshipAmount != nil {
			amount = *scope.SponsorshipAmount
		}
		return fmt.Sprintf("sponsorship (extended the Teiki sponsorship to %s)",
			lovelace.Format(amount, lovelace.Options{Compact: true, IncludeCurrencySymbol: true}))
	default:
		panic(fmt.Sprintf("unknown update scope %q", scope.Type))
	}
}
