package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/repo"
)

type DeletePolicy int

const (
	PolicyCascade DeletePolicy = iota + 1
	PolicyRestrict
	PolicyNullify
)

func (p DeletePolicy) String() string {
	switch p {
	case PolicyCascade:
		return "cascade"
	case PolicyRestrict:
		return "restrict"
	case PolicyNullify:
		return "nullify"
	}
	return "unknown"
}

// Relation 父实体被硬删除时，对某个子关系执行的策略
type Relation struct {
	Parent     domain.Entity
	Name       string
	Child      domain.Entity
	ForeignKey string
	Policy     DeletePolicy
}

// DeleteRules 删除传播表
var DeleteRules = []Relation{
	{Parent: domain.EntityProject, Name: "issues", Child: domain.EntityIssue, ForeignKey: "project_id", Policy: PolicyCascade},
	{Parent: domain.EntityIssue, Name: "comments", Child: domain.EntityComment, ForeignKey: "issue_id", Policy: PolicyCascade},
	{Parent: domain.EntityUser, Name: "assigned_issues", Child: domain.EntityIssue, ForeignKey: "assigned_to_id", Policy: PolicyNullify},
	{Parent: domain.EntityUser, Name: "reported_issues", Child: domain.EntityIssue, ForeignKey: "reporter_id", Policy: PolicyRestrict},
	{Parent: domain.EntityUser, Name: "comments", Child: domain.EntityComment, ForeignKey: "user_id", Policy: PolicyCascade},
}

// PurgeResult 每张表受影响的行数
type PurgeResult struct {
	Deleted   map[domain.Entity]int64 `json:"deleted"`
	Nullified map[domain.Entity]int64 `json:"nullified"`
}

func newPurgeResult() *PurgeResult {
	return &PurgeResult{Deleted: map[domain.Entity]int64{}, Nullified: map[domain.Entity]int64{}}
}

// Lifecycle 按 DeleteRules 执行硬删除。调用方负责把它放进事务。
type Lifecycle struct {
	rules []Relation
	log   *zap.Logger
}

func NewLifecycle(log *zap.Logger) *Lifecycle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lifecycle{rules: DeleteRules, log: log}
}

func (m *Lifecycle) RulesFor(parent domain.Entity) []Relation {
	var out []Relation
	for _, r := range m.rules {
		if r.Parent == parent {
			out = append(out, r)
		}
	}
	return out
}

// HardDelete 删除一行并传播；restrict 命中时整体失败（ConflictError），不做任何修改
func (m *Lifecycle) HardDelete(ctx context.Context, tx *repo.Store, e domain.Entity, id uint) (*PurgeResult, error) {
	ok, err := tx.Exists(ctx, e, id)
	if err != nil {
		return nil, domain.Internal("load "+e.Label(), err)
	}
	if !ok {
		return nil, domain.NotFound(e.Label())
	}
	res := newPurgeResult()
	if err := m.purge(ctx, tx, e, []uint{id}, res); err != nil {
		return nil, err
	}
	m.log.Debug("hard delete",
		zap.String("entity", string(e)),
		zap.Uint("id", id),
		zap.Any("deleted", res.Deleted),
		zap.Any("nullified", res.Nullified),
	)
	return res, nil
}

func (m *Lifecycle) purge(ctx context.Context, tx *repo.Store, e domain.Entity, ids []uint, res *PurgeResult) error {
	if len(ids) == 0 {
		return nil
	}
	rules := m.RulesFor(e)

	// 1) restrict 先于任何写操作
	for _, r := range rules {
		if r.Policy != PolicyRestrict {
			continue
		}
		n, err := tx.CountBy(ctx, r.Child, r.ForeignKey, ids)
		if err != nil {
			return domain.Internal("count "+r.Name, err)
		}
		if n > 0 {
			return domain.Conflict(fmt.Sprintf("Cannot delete record because dependent %s exist",
				strings.ReplaceAll(r.Name, "_", " ")))
		}
	}

	// 2) nullify / cascade
	for _, r := range rules {
		switch r.Policy {
		case PolicyNullify:
			n, err := tx.ClearColumn(ctx, r.Child, r.ForeignKey, ids)
			if err != nil {
				return domain.Internal("nullify "+r.Name, err)
			}
			res.Nullified[r.Child] += n
		case PolicyCascade:
			childIDs, err := tx.IDsBy(ctx, r.Child, r.ForeignKey, ids)
			if err != nil {
				return domain.Internal("load "+r.Name, err)
			}
			if err := m.purge(ctx, tx, r.Child, childIDs, res); err != nil {
				return err
			}
		case PolicyRestrict:
		}
	}

	// 3) 最后删自己
	n, err := tx.DeleteIDs(ctx, e, ids)
	if err != nil {
		return domain.Internal("delete "+e.Label(), err)
	}
	res.Deleted[e] += n
	return nil
}
