package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/repo"
	"issue-tracker/internal/testutil"
)

func newServices(t *testing.T) *Services {
	t.Helper()
	return New(repo.NewStore(testutil.NewDB(t, repo.Models()...)), zap.NewNop())
}

func ptr[T any](v T) *T { return &v }

func requireKind(t *testing.T, err error, kind domain.ErrorKind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, kind, de.Kind, "got %v", err)
	return de
}

func createUser(t *testing.T, svc *Services, name, email string) *domain.User {
	t.Helper()
	u, err := svc.Users.Create(context.Background(), UserInput{Name: ptr(name), Email: ptr(email)})
	require.NoError(t, err)
	return u
}

func createProject(t *testing.T, svc *Services, name string) *domain.Project {
	t.Helper()
	p, err := svc.Projects.Create(context.Background(), ProjectInput{Name: ptr(name)})
	require.NoError(t, err)
	return p
}

func createIssue(t *testing.T, svc *Services, projectID, reporterID uint, assignee *uint) *domain.Issue {
	t.Helper()
	in := IssueInput{Title: ptr("Checkout fails"), ReporterID: ptr(reporterID)}
	if assignee != nil {
		in.AssignedToID = domain.Some(*assignee)
	}
	i, err := svc.Issues.Create(context.Background(), projectID, in)
	require.NoError(t, err)
	return i
}

func createComment(t *testing.T, svc *Services, projectID, issueID, userID uint, content string) *domain.Comment {
	t.Helper()
	c, err := svc.Comments.Create(context.Background(), projectID, issueID, CommentInput{
		Content: ptr(content), UserID: ptr(userID),
	})
	require.NoError(t, err)
	return c
}
