package domain

// ProjectStatus active | on_hold | completed | archived
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// IssueStatus active | on_hold | resolved | closed
type IssueStatus string

const (
	IssueActive   IssueStatus = "active"
	IssueOnHold   IssueStatus = "on_hold"
	IssueResolved IssueStatus = "resolved"
	IssueClosed   IssueStatus = "closed"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssueActive, IssueOnHold, IssueResolved, IssueClosed:
		return true
	}
	return false
}

// Priority low | medium | high | critical
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

var (
	ProjectStatuses = []ProjectStatus{ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived}
	IssueStatuses   = []IssueStatus{IssueActive, IssueOnHold, IssueResolved, IssueClosed}
	Priorities      = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
)

// Entity 实体种类，对应一张表
type Entity string

const (
	EntityUser    Entity = "users"
	EntityProject Entity = "projects"
	EntityIssue   Entity = "issues"
	EntityComment Entity = "comments"
)

func (e Entity) Table() string { return string(e) }

// Label 用于错误信息，如 "Project not found"
func (e Entity) Label() string {
	switch e {
	case EntityUser:
		return "User"
	case EntityProject:
		return "Project"
	case EntityIssue:
		return "Issue"
	case EntityComment:
		return "Comment"
	}
	return "Record"
}
