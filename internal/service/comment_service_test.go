package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-tracker/internal/domain"
)

func TestCommentContentLength(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	u := createUser(t, svc, "Rita", "rita@example.com")
	p := createProject(t, svc, "Core")
	i := createIssue(t, svc, p.ID, u.ID, nil)

	for _, n := range []int{0, 5001} {
		_, err := svc.Comments.Create(ctx, p.ID, i.ID, CommentInput{Content: ptr(strings.Repeat("x", n)), UserID: &u.ID})
		requireKind(t, err, domain.KindValidation)
	}
	items, err := svc.Comments.List(ctx, p.ID, i.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, n := range []int{1, 5000} {
		c, err := svc.Comments.Create(ctx, p.ID, i.ID, CommentInput{Content: ptr(strings.Repeat("x", n)), UserID: &u.ID})
		require.NoError(t, err)
		assert.Len(t, c.Content, n)
		require.NotNil(t, c.User)
	}
	items, err = svc.Comments.List(ctx, p.ID, i.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCommentCreateScopes(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	u := createUser(t, svc, "Rita", "rita@example.com")
	p := createProject(t, svc, "Core")
	other := createProject(t, svc, "Other")
	i := createIssue(t, svc, p.ID, u.ID, nil)

	_, err := svc.Comments.Create(ctx, 999, i.ID, CommentInput{Content: ptr("hi"), UserID: &u.ID})
	de := requireKind(t, err, domain.KindNotFound)
	assert.Equal(t, "Project not found", de.Message)

	_, err = svc.Comments.Create(ctx, other.ID, i.ID, CommentInput{Content: ptr("hi"), UserID: &u.ID})
	de = requireKind(t, err, domain.KindNotFound)
	assert.Equal(t, "Issue not found", de.Message)

	_, err = svc.Comments.Create(ctx, p.ID, i.ID, CommentInput{Content: ptr("hi"), UserID: ptr(uint(999))})
	de = requireKind(t, err, domain.KindReference)
	assert.Equal(t, "User not found", de.Message)
}

func TestCommentUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	u := createUser(t, svc, "Rita", "rita@example.com")
	p := createProject(t, svc, "Core")
	i := createIssue(t, svc, p.ID, u.ID, nil)
	c := createComment(t, svc, p.ID, i.ID, u.ID, "draft")

	got, err := svc.Comments.Update(ctx, c.ID, CommentUpdateInput{Content: ptr("final"), IsInternal: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)
	assert.True(t, got.IsInternal)
	assert.Equal(t, u.ID, got.UserID)

	_, err = svc.Comments.Update(ctx, c.ID, CommentUpdateInput{Content: ptr("")})
	requireKind(t, err, domain.KindValidation)

	require.NoError(t, svc.Comments.Delete(ctx, c.ID))
	requireKind(t, svc.Comments.Delete(ctx, c.ID), domain.KindNotFound)
	_, err = svc.Comments.Update(ctx, c.ID, CommentUpdateInput{})
	requireKind(t, err, domain.KindNotFound)
}

func TestCommentBlankContentRejected(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	u := createUser(t, svc, "Rita", "rita@example.com")
	p := createProject(t, svc, "Core")
	i := createIssue(t, svc, p.ID, u.ID, nil)

	_, err := svc.Comments.Create(ctx, p.ID, i.ID, CommentInput{Content: ptr("   "), UserID: &u.ID})
	de := requireKind(t, err, domain.KindValidation)
	assert.Equal(t, []string{"Content can't be blank"}, de.Details)

	items, err := svc.Comments.List(ctx, p.ID, i.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	c := createComment(t, svc, p.ID, i.ID, u.ID, "first")
	_, err = svc.Comments.Update(ctx, c.ID, CommentUpdateInput{Content: ptr("\t\n ")})
	requireKind(t, err, domain.KindValidation)

	items, err = svc.Comments.List(ctx, p.ID, i.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Content)
}
