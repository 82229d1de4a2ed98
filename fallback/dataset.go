// Package fallback holds the read-only seed dataset served when the primary
// backend is unreachable. Every function returns data shaped exactly like a
// backend response, so consuming code never branches on the data source.
package fallback

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/muneeb-arif/my-portfolio-sub000/models"
)

// Fixed ids keep the dataset deterministic across calls and restarts
var (
	categoryWebID    = uuid.MustParse("a1b2c3d4-0001-4000-8000-000000000001")
	categoryAIID     = uuid.MustParse("a1b2c3d4-0001-4000-8000-000000000002")
	categoryMobileID = uuid.MustParse("a1b2c3d4-0001-4000-8000-000000000003")

	techFrontendID = uuid.MustParse("a1b2c3d4-0002-4000-8000-000000000001")
	techBackendID  = uuid.MustParse("a1b2c3d4-0002-4000-8000-000000000002")
	techCloudID    = uuid.MustParse("a1b2c3d4-0002-4000-8000-000000000003")

	nicheEcommerceID  = uuid.MustParse("a1b2c3d4-0003-4000-8000-000000000001")
	nicheAutomationID = uuid.MustParse("a1b2c3d4-0003-4000-8000-000000000002")
	nicheDashboardID  = uuid.MustParse("a1b2c3d4-0003-4000-8000-000000000003")

	projectShopID  = uuid.MustParse("a1b2c3d4-0004-4000-8000-000000000001")
	projectChatID  = uuid.MustParse("a1b2c3d4-0004-4000-8000-000000000002")
	projectFleetID = uuid.MustParse("a1b2c3d4-0004-4000-8000-000000000003")
)

// Dataset is a stateless handle over the seed data. Methods never fail and
// never touch the network.
type Dataset struct{}

func NewDataset() Dataset {
	return Dataset{}
}

func (Dataset) Categories() []models.Category {
	return []models.Category{
		{
			ID:          categoryWebID,
			Name:        "Web",
			Description: "Full-stack web applications, from marketing sites to SaaS platforms",
			Color:       "#2563eb",
		},
		{
			ID:          categoryAIID,
			Name:        "AI",
			Description: "AI-assisted products: chat interfaces, content pipelines, agents",
			Color:       "#7c3aed",
		},
		{
			ID:          categoryMobileID,
			Name:        "Mobile",
			Description: "Cross-platform mobile apps with native integrations",
			Color:       "#059669",
		},
	}
}

func (Dataset) Technologies() []models.Technology {
	return []models.Technology{
		{
			ID:        techFrontendID,
			Kind:      models.TechKindDomain,
			Title:     "Frontend Engineering",
			Icon:      "monitor",
			SortOrder: 1,
			Skills: []models.Skill{
				{TechnologyID: techFrontendID, Name: "React", Level: 5, YearsExperience: 6},
				{TechnologyID: techFrontendID, Name: "TypeScript", Level: 5, YearsExperience: 5},
				{TechnologyID: techFrontendID, Name: "Tailwind CSS", Level: 4, YearsExperience: 3},
			},
		},
		{
			ID:        techBackendID,
			Kind:      models.TechKindDomain,
			Title:     "Backend Engineering",
			Icon:      "server",
			SortOrder: 2,
			Skills: []models.Skill{
				{TechnologyID: techBackendID, Name: "Node.js", Level: 5, YearsExperience: 6},
				{TechnologyID: techBackendID, Name: "PostgreSQL", Level: 4, YearsExperience: 5},
				{TechnologyID: techBackendID, Name: "REST API Design", Level: 5, YearsExperience: 7},
			},
		},
		{
			ID:        techCloudID,
			Kind:      models.TechKindTechnology,
			Title:     "Cloud & DevOps",
			Icon:      "cloud",
			SortOrder: 3,
			Skills: []models.Skill{
				{TechnologyID: techCloudID, Name: "Docker", Level: 4, YearsExperience: 4},
				{TechnologyID: techCloudID, Name: "CI/CD Pipelines", Level: 4, YearsExperience: 4},
			},
		},
	}
}

func (Dataset) Niches() []models.Niche {
	return []models.Niche{
		{
			ID:          nicheEcommerceID,
			Title:       "E-commerce Solutions",
			Overview:    "Storefronts, checkout flows, and payment integrations built for conversion",
			Tools:       "Next.js, Stripe, Shopify",
			KeyFeatures: "Cart recovery, inventory sync, multi-currency",
			Image:       "/images/niches/ecommerce.jpg",
			SortOrder:   1,
		},
		{
			ID:          nicheAutomationID,
			Title:       "Workflow Automation",
			Overview:    "AI-driven pipelines that remove repetitive back-office work",
			Tools:       "OpenAI API, n8n, webhooks",
			KeyFeatures: "Document extraction, approval routing, audit trails",
			Image:       "/images/niches/automation.jpg",
			SortOrder:   2,
			AIDriven:    true,
		},
		{
			ID:          nicheDashboardID,
			Title:       "Analytics Dashboards",
			Overview:    "Real-time dashboards that turn raw events into decisions",
			Tools:       "React, D3, ClickHouse",
			KeyFeatures: "Live charts, drill-down filters, scheduled exports",
			Image:       "/images/niches/dashboards.jpg",
			SortOrder:   3,
		},
	}
}

func (Dataset) Projects() []models.Project {
	return []models.Project{
		{
			ID:           projectShopID,
			Title:        "Artisan Marketplace",
			Description:  "Multi-vendor storefront with escrow payments and seller analytics",
			Overview:     "Built for a craft collective; handles 40k monthly orders",
			Category:     "Web",
			Status:       models.ProjectStatusPublished,
			Technologies: []string{"Next.js", "PostgreSQL", "Stripe"},
			Features:     []string{"Vendor onboarding", "Escrow checkout", "Sales dashboards"},
			LiveURL:      "https://example.com/artisan",
			GithubURL:    "https://github.com/muneeb-arif/artisan-marketplace",
			Images: []models.ProjectImage{
				{ProjectID: projectShopID, URL: "/images/projects/artisan-home.jpg", OriginalName: "artisan-home.jpg", OrderIndex: 1},
				{ProjectID: projectShopID, URL: "/images/projects/artisan-checkout.jpg", OriginalName: "artisan-checkout.jpg", OrderIndex: 2},
			},
		},
		{
			ID:           projectChatID,
			Title:        "Support Copilot",
			Description:  "AI assistant that drafts replies from a company knowledge base",
			Overview:     "Retrieval-augmented chat grounded on internal docs",
			Category:     "AI",
			Status:       models.ProjectStatusPublished,
			Technologies: []string{"React", "OpenAI API", "pgvector"},
			Features:     []string{"Doc ingestion", "Suggested replies", "Handoff to human"},
			LiveURL:      "https://example.com/copilot",
			Images: []models.ProjectImage{
				{ProjectID: projectChatID, URL: "/images/projects/copilot-inbox.jpg", OriginalName: "copilot-inbox.jpg", OrderIndex: 1},
			},
		},
		{
			ID:           projectFleetID,
			Title:        "Fleet Tracker",
			Description:  "Mobile app for live vehicle tracking and driver check-ins",
			Category:     "Mobile",
			Status:       models.ProjectStatusDraft,
			Technologies: []string{"React Native", "MapBox"},
			Features:     []string{"Live map", "Offline check-ins"},
		},
	}
}

func (Dataset) Settings() []models.Setting {
	return []models.Setting{
		{Key: "site_title", Value: json.RawMessage(`"Muneeb Arif | Portfolio"`)},
		{Key: "contact_email", Value: json.RawMessage(`"[email protected]"`)},
		{Key: "theme", Value: json.RawMessage(`{"mode":"dark","accent":"#2563eb"}`)},
		{Key: "social_links", Value: json.RawMessage(`{"github":"https://github.com/muneeb-arif","linkedin":"https://linkedin.com/in/muneeb-arif"}`)},
	}
}
