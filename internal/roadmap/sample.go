package roadmap

// SampleVersion is the version label of the built-in catalog.
const SampleVersion = "v1.0.0"

// SampleMilestones returns the built-in frontend career path.
//
//	1 ─► 2 ─┬─► 3 ─┐
//	        └─► 4 ─┴─► 5
func SampleMilestones() []Milestone {
	return []Milestone{
		{
			ID:          "1",
			Title:       "Frontend Fundamentals",
			Description: "Master the core concepts of web development",
			Category:    CategoryFundamentals,
			Skills:      []string{"HTML5", "CSS3", "JavaScript ES6+"},
			Resources: []Resource{
				{Kind: ResourceVideo, Title: "Web Development Crash Course", URL: "https://example.com/web-dev", Duration: "2.5 hours", Difficulty: DifficultyBeginner},
			},
			CompanyRelevance: []string{"Google", "Meta"},
		},
		{
			ID:          "2",
			Title:       "React Fundamentals",
			Description: "Learn React core concepts",
			Category:    CategoryFundamentals,
			Skills:      []string{"React", "JSX", "Hooks"},
			Resources: []Resource{
				{Kind: ResourceVideo, Title: "React Basics", URL: "https://example.com/react", Duration: "4 hours", Difficulty: DifficultyIntermediate},
			},
			CompanyRelevance: []string{"Meta", "Netflix"},
			Prerequisites:    []string{"1"},
		},
		{
			ID:          "3",
			Title:       "TypeScript Basics",
			Description: "Learn TypeScript fundamentals",
			Category:    CategoryAdvanced,
			Skills:      []string{"TypeScript", "Types", "Interfaces"},
			Resources: []Resource{
				{Kind: ResourceArticle, Title: "TypeScript Guide", URL: "https://example.com/typescript", Difficulty: DifficultyIntermediate},
			},
			CompanyRelevance: []string{"Microsoft", "Google"},
			Prerequisites:    []string{"2"},
		},
		{
			ID:          "4",
			Title:       "State Management",
			Description: "Manage application state at scale",
			Category:    CategoryAdvanced,
			Skills:      []string{"Redux", "Context API", "React Query"},
			Resources: []Resource{
				{Kind: ResourceArticle, Title: "Thinking in State", URL: "https://example.com/state", Difficulty: DifficultyIntermediate},
				{Kind: ResourceVideo, Title: "Redux Toolkit in Practice", URL: "https://example.com/redux", Duration: "3 hours", Difficulty: DifficultyAdvanced},
			},
			CompanyRelevance: []string{"Meta", "Airbnb"},
			Prerequisites:    []string{"2"},
		},
		{
			ID:          "5",
			Title:       "Frontend Capstone",
			Description: "Ship a typed, production-grade single page application",
			Category:    CategorySpecialization,
			Skills:      []string{"Testing", "Performance", "Deployment"},
			Resources: []Resource{
				{Kind: ResourceProject, Title: "Build a Job Board", URL: "https://example.com/capstone", Duration: "2 weeks", Difficulty: DifficultyAdvanced},
			},
			CompanyRelevance: []string{"Google", "Netflix", "Microsoft"},
			Prerequisites:    []string{"3", "4"},
		},
	}
}

// Sample returns the built-in catalog. It panics if the built-in data is invalid,
// which the package tests guard against.
func Sample() *Catalog {
	c, err := NewCatalog(SampleVersion, SampleMilestones())
	if err != nil {
		panic(err)
	}
	return c
}
