package entity

import "time"

// mustParse parses an RFC 3339 timestamp for seed data.
func mustParse(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(s string) *time.Time {
	t := mustParse(s)
	return &t
}

// SeedProjects returns the demo project set used by in-memory backends.
func SeedProjects() []Project {
	return []Project{
		{
			ID:                 "proj_1",
			Title:              "Website Redesign",
			Description:        "Redesign the company website with new branding",
			Status:             ProjectStatusActive,
			UserID:             "user_1",
			CreatedAt:          mustParse("2023-01-15T09:30:00Z"),
			UpdatedAt:          mustParse("2023-01-15T09:30:00Z"),
			TaskCount:          8,
			CompletedTaskCount: 3,
		},
		{
			ID:                 "proj_2",
			Title:              "Mobile App Development",
			Description:        "Create a new mobile app for customer engagement",
			Status:             ProjectStatusActive,
			UserID:             "user_1",
			CreatedAt:          mustParse("2023-02-20T14:45:00Z"),
			UpdatedAt:          mustParse("2023-02-20T14:45:00Z"),
			TaskCount:          12,
			CompletedTaskCount: 5,
		},
		{
			ID:                 "proj_3",
			Title:              "Content Marketing Campaign",
			Description:        "Plan and execute Q2 content marketing strategy",
			Status:             ProjectStatusActive,
			UserID:             "user_1",
			CreatedAt:          mustParse("2023-03-10T11:15:00Z"),
			UpdatedAt:          mustParse("2023-03-10T11:15:00Z"),
			TaskCount:          6,
			CompletedTaskCount: 1,
		},
	}
}

// SeedTasks returns the demo task set used by in-memory backends.
func SeedTasks() []Task {
	return []Task{
		{
			ID:          "task_1",
			Title:       "Research competitors",
			Description: "Analyze top 5 competitor websites and document findings",
			Status:      TaskStatusCompleted,
			ProjectID:   "proj_1",
			CreatedAt:   mustParse("2023-01-16T10:30:00Z"),
			CompletedAt: timePtr("2023-01-20T16:45:00Z"),
			UpdatedAt:   mustParse("2023-01-20T16:45:00Z"),
		},
		{
			ID:          "task_2",
			Title:       "Create wireframes",
			Description: "Design wireframes for homepage and product pages",
			Status:      TaskStatusCompleted,
			ProjectID:   "proj_1",
			CreatedAt:   mustParse("2023-01-21T09:15:00Z"),
			CompletedAt: timePtr("2023-01-25T14:30:00Z"),
			UpdatedAt:   mustParse("2023-01-25T14:30:00Z"),
		},
		{
			ID:          "task_3",
			Title:       "Develop homepage",
			Description: "Code the new homepage based on approved designs",
			Status:      TaskStatusInProgress,
			ProjectID:   "proj_1",
			CreatedAt:   mustParse("2023-01-26T11:00:00Z"),
			UpdatedAt:   mustParse("2023-01-26T11:00:00Z"),
		},
		{
			ID:          "task_4",
			Title:       "Write content for About page",
			Description: "Create compelling copy for the About page",
			Status:      TaskStatusNotStarted,
			ProjectID:   "proj_1",
			CreatedAt:   mustParse("2023-01-28T13:20:00Z"),
			UpdatedAt:   mustParse("2023-01-28T13:20:00Z"),
		},
		{
			ID:          "task_5",
			Title:       "Perform SEO audit",
			Description: "Analyze current SEO performance and identify improvement areas",
			Status:      TaskStatusNotStarted,
			ProjectID:   "proj_1",
			CreatedAt:   mustParse("2023-01-30T15:45:00Z"),
			UpdatedAt:   mustParse("2023-01-30T15:45:00Z"),
		},
	}
}
