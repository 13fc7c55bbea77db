package service

import "github.com/teiki-network/teiki-backend/internal/model"

// applyCensorship removes every redacted field from the assembled view.
// Redaction degrades to omission: a censored field requested by a preset
// disappears instead of failing the request, uniformly across presets.
// Unknown field names are ignored. Announcements additionally carry their
// own per-announcement censorship lists.
func applyCensorship(p *model.DetailedProject, censorship []string) {
	for _, field := range censorship {
		switch field {
		case "title":
			if p.Basics != nil {
				p.Basics.Title = ""
			}
		case "slogan":
			if p.Basics != nil {
				p.Basics.Slogan = ""
			}
		case "summary":
			if p.Basics != nil {
				p.Basics.Summary = ""
			}
		case "tags":
			if p.Basics != nil {
				p.Basics.Tags = nil
			}
		case "customUrl":
			if p.Basics != nil {
				p.Basics.CustomURL = ""
			}
		case "coverImages":
			if p.Basics != nil {
				p.Basics.CoverImages = nil
			}
		case "logoImage":
			if p.Basics != nil {
				p.Basics.LogoImage = nil
			}
		case "description":
			p.Description = nil
		case "benefits":
			p.Benefits = nil
		case "roadmap":
			p.Roadmap = nil
		case "community":
			p.Community = nil
		case "announcements":
			p.Announcements = nil
		}
	}

	for i := range p.Announcements {
		redactAnnouncement(&p.Announcements[i])
	}
}

func redactAnnouncement(a *model.ProjectAnnouncement) {
	for _, field := range a.Censorship {
		switch field {
		case "title":
			a.Title = ""
		case "body":
			a.Body = nil
		case "summary":
			a.Summary = ""
		}
	}
}
