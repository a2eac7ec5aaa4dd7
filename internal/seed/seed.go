// Package seed 开发/演示数据。所有写入都走 service 层，和 API 使用同一套校验与引用检查。
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/service"
)

type Options struct {
	Users            int
	Projects         int
	IssuesPerProject int
	CommentsPerIssue int
	Reset            bool   // 先清空（走硬删除传播表）
	Password         string // 所有种子用户的初始密码
	Seed             int64  // 0 表示按时间随机
}

func DefaultOptions() Options {
	return Options{
		Users:            6,
		Projects:         4,
		IssuesPerProject: 3,
		CommentsPerIssue: 2,
		Password:         "password123",
	}
}

// Summary 本次新建的行数
type Summary struct {
	Users    int `json:"users"`
	Projects int `json:"projects"`
	Issues   int `json:"issues"`
	Comments int `json:"comments"`
}

type Factory struct {
	svc  *service.Services
	fake *gofakeit.Faker
	log  *zap.Logger
}

func NewFactory(svc *service.Services, seed int64, l *zap.Logger) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Factory{svc: svc, fake: gofakeit.New(seed), log: l}
}

func pick[T any](f *gofakeit.Faker, items []T) T {
	return items[f.Number(0, len(items)-1)]
}

func (f *Factory) CreateUser(ctx context.Context, n int, password string) (*domain.User, error) {
	name := f.fake.Name()
	email := fmt.Sprintf("%s.%d@example.com", strings.ToLower(f.fake.Username()), n)
	in := service.UserInput{Name: &name, Email: &email}
	if f.fake.Bool() {
		in.AvatarURL = domain.Some(fmt.Sprintf("https://picsum.photos/seed/%s/128/128", f.fake.UUID()))
	}
	u, err := f.svc.Users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if password != "" {
		if err := f.svc.Users.SetPassword(ctx, u.ID, password); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (f *Factory) CreateProject(ctx context.Context) (*domain.Project, error) {
	name := fmt.Sprintf("%s %s", f.fake.HackerAdjective(), f.fake.HackerNoun())
	status := pick(f.fake, domain.ProjectStatuses)
	start := f.fake.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
	in := service.ProjectInput{
		Name:        &name,
		Description: domain.Some(f.fake.Paragraph(1, 2, 10, " ")),
		Status:      domain.Some(status),
		StartDate:   domain.Some(domain.NewDate(start)),
	}
	if status == domain.ProjectCompleted || status == domain.ProjectArchived {
		in.EndDate = domain.Some(domain.NewDate(start.AddDate(0, 1, 0)))
	}
	return f.svc.Projects.Create(ctx, in)
}

func (f *Factory) CreateIssue(ctx context.Context, projectID uint, users []domain.User) (*domain.Issue, error) {
	title := strings.TrimSuffix(f.fake.Sentence(5), ".")
	status := pick(f.fake, domain.IssueStatuses)
	priority := pick(f.fake, domain.Priorities)
	reporter := pick(f.fake, users).ID
	in := service.IssueInput{
		Title:       &title,
		Description: domain.Some(f.fake.Paragraph(1, 3, 12, "\n")),
		Status:      domain.Some(status),
		Priority:    domain.Some(priority),
		ReporterID:  &reporter,
	}
	if f.fake.Number(0, 3) > 0 {
		in.AssignedToID = domain.Some(pick(f.fake, users).ID)
	}
	if f.fake.Bool() {
		in.DueDate = domain.Some(domain.NewDate(f.fake.DateRange(time.Now(), time.Now().AddDate(0, 3, 0))))
	}
	return f.svc.Issues.Create(ctx, projectID, in)
}

func (f *Factory) CreateComment(ctx context.Context, projectID, issueID uint, users []domain.User) (*domain.Comment, error) {
	content := f.fake.Paragraph(1, 2, 12, " ")
	userID := pick(f.fake, users).ID
	internal := f.fake.Number(0, 4) == 0
	return f.svc.Comments.Create(ctx, projectID, issueID, service.CommentInput{
		Content:    &content,
		UserID:     &userID,
		IsInternal: &internal,
	})
}

// Reset 先删项目（级联 issues / comments），再硬删用户
func (f *Factory) Reset(ctx context.Context) error {
	projects, err := f.svc.Projects.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := f.svc.Projects.Delete(ctx, p.ID); err != nil {
			return err
		}
	}
	users, err := f.svc.Users.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if _, err := f.svc.Users.Purge(ctx, u.ID); err != nil {
			return err
		}
	}
	f.log.Info("seed reset", zap.Int("projects", len(projects)), zap.Int("users", len(users)))
	return nil
}

// Run 按 Options 生成一整套数据
func Run(ctx context.Context, svc *service.Services, opts Options, l *zap.Logger) (*Summary, error) {
	f := NewFactory(svc, opts.Seed, l)
	if opts.Reset {
		if err := f.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset: %w", err)
		}
	}
	if opts.Users < 1 {
		return nil, fmt.Errorf("seed needs at least one user, got %d", opts.Users)
	}

	sum := &Summary{}
	users := make([]domain.User, 0, opts.Users)
	for n := 0; n < opts.Users; n++ {
		u, err := f.CreateUser(ctx, n, opts.Password)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", n, err)
		}
		users = append(users, *u)
		sum.Users++
	}

	for p := 0; p < opts.Projects; p++ {
		project, err := f.CreateProject(ctx)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", p, err)
		}
		sum.Projects++
		for i := 0; i < opts.IssuesPerProject; i++ {
			issue, err := f.CreateIssue(ctx, project.ID, users)
			if err != nil {
				return nil, fmt.Errorf("issue %d/%d: %w", p, i, err)
			}
			sum.Issues++
			for c := 0; c < opts.CommentsPerIssue; c++ {
				if _, err := f.CreateComment(ctx, project.ID, issue.ID, users); err != nil {
					return nil, fmt.Errorf("comment %d/%d/%d: %w", p, i, c, err)
				}
				sum.Comments++
			}
		}
	}
	f.log.Info("seed done",
		zap.Int("users", sum.Users),
		zap.Int("projects", sum.Projects),
		zap.Int("issues", sum.Issues),
		zap.Int("comments", sum.Comments),
	)
	return sum, nil
}
