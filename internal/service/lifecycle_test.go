package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-tracker/internal/domain"
)

func TestDeleteRulesTable(t *testing.T) {
	lc := NewLifecycle(nil)
	policies := map[string]DeletePolicy{}
	for _, r := range lc.RulesFor(domain.EntityUser) {
		policies[r.Name] = r.Policy
	}
	assert.Equal(t, map[string]DeletePolicy{
		"assigned_issues": PolicyNullify,
		"reported_issues": PolicyRestrict,
		"comments":        PolicyCascade,
	}, policies)

	require.Len(t, lc.RulesFor(domain.EntityProject), 1)
	assert.Equal(t, PolicyCascade, lc.RulesFor(domain.EntityProject)[0].Policy)
	assert.Empty(t, lc.RulesFor(domain.EntityComment))
	assert.Equal(t, "restrict", PolicyRestrict.String())
}

func TestProjectDeleteCascadesTransitively(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	u := createUser(t, svc, "Rita", "rita@example.com")
	p := createProject(t, svc, "Redesign")
	keep := createProject(t, svc, "Keep")

	const n = 3
	for k := 0; k < n; k++ {
		i := createIssue(t, svc, p.ID, u.ID, nil)
		createComment(t, svc, p.ID, i.ID, u.ID, "on it")
		createComment(t, svc, p.ID, i.ID, u.ID, "done")
	}
	kept := createIssue(t, svc, keep.ID, u.ID, nil)
	createComment(t, svc, keep.ID, kept.ID, u.ID, "untouched")

	require.NoError(t, svc.Projects.Delete(ctx, p.ID))

	counts, err := svc.Store.TableCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts["projects"])
	assert.EqualValues(t, 1, counts["issues"])
	assert.EqualValues(t, 1, counts["comments"])

	n2, err := svc.Store.CountBy(ctx, domain.EntityIssue, "project_id", []uint{p.ID})
	require.NoError(t, err)
	assert.Zero(t, n2)

	requireKind(t, svc.Projects.Delete(ctx, p.ID), domain.KindNotFound)
}

func TestUserPurgeRestrictedByReportedIssues(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	rep := createUser(t, svc, "Rep", "rep@example.com")
	p := createProject(t, svc, "Core")
	i := createIssue(t, svc, p.ID, rep.ID, nil)
	createComment(t, svc, p.ID, i.ID, rep.ID, "mine")

	_, err := svc.Users.Purge(ctx, rep.ID)
	de := requireKind(t, err, domain.KindConflict)
	assert.Contains(t, de.Message, "reported issues")

	// 无任何修改
	u, err := svc.Users.Get(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, u.ID)
	counts, err := svc.Store.TableCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts["comments"])
}

func TestUserPurgeNullifiesAssignmentsAndCascadesComments(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	rep := createUser(t, svc, "Rep", "rep@example.com")
	dev := createUser(t, svc, "Dev", "dev@example.com")
	p := createProject(t, svc, "Core")
	a := createIssue(t, svc, p.ID, rep.ID, &dev.ID)
	b := createIssue(t, svc, p.ID, rep.ID, &dev.ID)
	createComment(t, svc, p.ID, a.ID, dev.ID, "looking")
	createComment(t, svc, p.ID, a.ID, rep.ID, "thanks")

	res, err := svc.Users.Purge(ctx, dev.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Nullified[domain.EntityIssue])
	assert.EqualValues(t, 1, res.Deleted[domain.EntityUser])
	assert.EqualValues(t, 1, res.Deleted[domain.EntityComment])

	for _, id := range []uint{a.ID, b.ID} {
		i, err := svc.Issues.Get(ctx, p.ID, id, false)
		require.NoError(t, err)
		assert.Nil(t, i.AssignedToID)
		assert.Nil(t, i.AssignedTo)
	}
	_, err = svc.Users.Get(ctx, dev.ID)
	requireKind(t, err, domain.KindNotFound)

	comments, err := svc.Comments.List(ctx, p.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "thanks", comments[0].Content)
}

func TestIssueDeleteCascadesComments(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	u := createUser(t, svc, "Rita", "rita@example.com")
	p := createProject(t, svc, "Core")
	i := createIssue(t, svc, p.ID, u.ID, nil)
	createComment(t, svc, p.ID, i.ID, u.ID, "one")

	other := createProject(t, svc, "Other")
	requireKind(t, svc.Issues.Delete(ctx, other.ID, i.ID), domain.KindNotFound)

	require.NoError(t, svc.Issues.Delete(ctx, p.ID, i.ID))
	counts, err := svc.Store.TableCounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts["issues"])
	assert.Zero(t, counts["comments"])
}
