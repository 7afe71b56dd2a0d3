package application

import "mapmyfirm/internal/domain"

// Re-export domain types for use by adapters
type (
	ProjectState   = domain.ProjectState
	ProjectConfig  = domain.ProjectConfig
	SiteNode       = domain.SiteNode
	TreeNode       = domain.TreeNode
	Location       = domain.Location
	ChecklistItem  = domain.ChecklistItem
	ChecklistStats = domain.ChecklistStats
	PracticeArea   = domain.PracticeArea
)

