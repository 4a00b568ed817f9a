package repository

import (
	"time"

	"aipirat/models"
)

// DefaultProjects returns the two showcase entries seeded into empty storage.
func DefaultProjects(now time.Time) []models.Project {
	ms := now.UnixMilli()
	return []models.Project{
		{
			ID:              "1",
			Title:           "Nexus Analytics Dashboard",
			Description:     "Real-time financial tracking with interactive visualizations.",
			LongDescription: "Nexus is a comprehensive analytics platform designed for fintech startups. It features real-time data streaming, multi-currency support, and deep-dive reporting tools. Built with a focus on performance and intuitive user experience.",
			Thumbnail:       "https://picsum.photos/id/1/800/600",
			Images:          []string{"https://picsum.photos/id/1/1200/800", "https://picsum.photos/id/2/1200/800"},
			Tags:            []string{"React", "D3.js", "Tailwind", "TypeScript"},
			GithubURL:       "https://github.com",
			DemoURL:         "https://demo.com",
			CreatedAt:       ms - 1000000,
		},
		{
			ID:              "2",
			Title:           "Aether eCommerce",
			Description:     "High-performance storefront with headless CMS integration.",
			LongDescription: "Aether is a next-generation shopping experience. It uses a headless architecture to deliver sub-second page loads and a seamless checkout process. The design focuses on minimalism and conversion.",
			Thumbnail:       "https://picsum.photos/id/3/800/600",
			Images:          []string{"https://picsum.photos/id/3/1200/800", "https://picsum.photos/id/4/1200/800"},
			Tags:            []string{"Next.js", "Prisma", "Stripe", "Framer Motion"},
			GithubURL:       "https://github.com",
			DemoURL:         "https://demo.com",
			CreatedAt:       ms - 5000000,
		},
	}
}
