// Package serializer 把已加载的实体投影成响应文档。
// 只读：不查库、不做校验，需要的关联由调用方预先加载。
package serializer

import (
	"time"

	"issue-tracker/internal/domain"
)

// ---------- 引用（嵌套时使用的浅视图） ----------

type UserRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProjectRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type IssueRef struct {
	ID     uint               `json:"id"`
	Title  string             `json:"title"`
	Status domain.IssueStatus `json:"status"`
}

func userRef(u *domain.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

func projectRef(p *domain.Project) *ProjectRef {
	if p == nil {
		return nil
	}
	return &ProjectRef{ID: p.ID, Name: p.Name}
}

func issueRefs(items []domain.Issue) []IssueRef {
	out := make([]IssueRef, 0, len(items))
	for _, i := range items {
		out = append(out, IssueRef{ID: i.ID, Title: i.Title, Status: i.Status})
	}
	return out
}

// ---------- User ----------

// UserOptions
//   - IncludeIssues: 详情视图附带 assigned_issues / reported_issues（id/title/status）
//
// password 永远不会出现在任何视图里。
type UserOptions struct {
	IncludeIssues bool
}

type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	*UserIssues
}

type UserIssues struct {
	AssignedIssues []IssueRef `json:"assigned_issues"`
	ReportedIssues []IssueRef `json:"reported_issues"`
}

func User(u *domain.User, opts UserOptions) UserView {
	v := UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if opts.IncludeIssues {
		v.UserIssues = &UserIssues{
			AssignedIssues: issueRefs(u.AssignedIssues),
			ReportedIssues: issueRefs(u.ReportedIssues),
		}
	}
	return v
}

func Users(us []domain.User, opts UserOptions) []UserView {
	out := make([]UserView, 0, len(us))
	for i := range us {
		out = append(out, User(&us[i], opts))
	}
	return out
}

// ---------- Project ----------

// ProjectOptions
//   - ExcludeCount: 不输出 issues_count（默认输出）
type ProjectOptions struct {
	ExcludeCount bool
}

type ProjectView struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	StartDate   *domain.Date         `json:"start_date"`
	EndDate     *domain.Date         `json:"end_date"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	IssuesCount *int64               `json:"issues_count,omitempty"`
}

func Project(p *domain.Project, opts ProjectOptions) ProjectView {
	v := ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if !opts.ExcludeCount {
		n := p.IssuesCount
		v.IssuesCount = &n
	}
	return v
}

func Projects(ps []domain.Project, opts ProjectOptions) []ProjectView {
	out := make([]ProjectView, 0, len(ps))
	for i := range ps {
		out = append(out, Project(&ps[i], opts))
	}
	return out
}

// ---------- Issue ----------

// IssueOptions
//   - IncludeAssociations: assigned_to / reporter {id,name,email}，project {id,name}
//   - IncludeComments: 按时间排序的评论，每条带作者；只用于详情视图
//
// 两个开关互相独立。
type IssueOptions struct {
	IncludeAssociations bool
	IncludeComments     bool
}

type IssueView struct {
	ID           uint               `json:"id"`
	ProjectID    uint               `json:"project_id"`
	Title        string             `json:"title"`
	Description  *string            `json:"description"`
	Status       domain.IssueStatus `json:"status"`
	Priority     domain.Priority    `json:"priority"`
	AssignedToID *uint              `json:"assigned_to_id"`
	ReporterID   uint               `json:"reporter_id"`
	DueDate      *domain.Date       `json:"due_date"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	*IssueAssociations
	*IssueComments
}

// IssueAssociations 开启时即使为空也输出 null
type IssueAssociations struct {
	AssignedTo *UserRef    `json:"assigned_to"`
	Reporter   *UserRef    `json:"reporter"`
	Project    *ProjectRef `json:"project"`
}

type IssueComments struct {
	Comments []CommentView `json:"comments"`
}

func Issue(i *domain.Issue, opts IssueOptions) IssueView {
	v := IssueView{
		ID:           i.ID,
		ProjectID:    i.ProjectID,
		Title:        i.Title,
		Description:  i.Description,
		Status:       i.Status,
		Priority:     i.Priority,
		AssignedToID: i.AssignedToID,
		ReporterID:   i.ReporterID,
		DueDate:      i.DueDate,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
	if opts.IncludeAssociations {
		v.IssueAssociations = &IssueAssociations{
			AssignedTo: userRef(i.AssignedTo),
			Reporter:   userRef(i.Reporter),
			Project:    projectRef(i.Project),
		}
	}
	if opts.IncludeComments {
		v.IssueComments = &IssueComments{Comments: Comments(i.Comments, CommentOptions{})}
	}
	return v
}

func Issues(items []domain.Issue, opts IssueOptions) []IssueView {
	out := make([]IssueView, 0, len(items))
	for i := range items {
		out = append(out, Issue(&items[i], opts))
	}
	return out
}

// ---------- Comment ----------

// CommentOptions
//   - ExcludeUser: 不嵌入作者（默认嵌入 {id,name,email}）
type CommentOptions struct {
	ExcludeUser bool
}

type CommentView struct {
	ID         uint      `json:"id"`
	IssueID    uint      `json:"issue_id"`
	UserID     uint      `json:"user_id"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       *UserRef  `json:"user,omitempty"`
}

func Comment(c *domain.Comment, opts CommentOptions) CommentView {
	v := CommentView{
		ID:         c.ID,
		IssueID:    c.IssueID,
		UserID:     c.UserID,
		Content:    c.Content,
		IsInternal: c.IsInternal,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if !opts.ExcludeUser {
		v.User = userRef(c.User)
	}
	return v
}

func Comments(items []domain.Comment, opts CommentOptions) []CommentView {
	out := make([]CommentView, 0, len(items))
	for i := range items {
		out = append(out, Comment(&items[i], opts))
	}
	return out
}
