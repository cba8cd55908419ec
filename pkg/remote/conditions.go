package remote

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
)

// Condition decides whether a conditional rule applies to the current request.
type Condition interface {
	Match(ctx context.Context) (bool, error)
}

// ConditionFunc adapts a plain function to Condition.
type ConditionFunc func(ctx context.Context) (bool, error)

func (f ConditionFunc) Match(ctx context.Context) (bool, error) { return f(ctx) }

type always bool

func (a always) Match(context.Context) (bool, error) { return bool(a), nil }

// Always returns a condition with a fixed outcome.
func Always(match bool) Condition {
	return always(match)
}

// TargetCriteria lists the audiences a Targeted condition matches.
// Checks run in order: deny list, allow list, instance ids, groups, percentage.
type TargetCriteria struct {
	InstanceIDs []string
	Groups      []string
	AllowList   []string
	DenyList    []string
	// Percentage rolls out to a stable share of instances, 0..100.
	Percentage *int
}

func (c TargetCriteria) empty() bool {
	return c.InstanceIDs == nil && c.Groups == nil && c.AllowList == nil &&
		c.DenyList == nil && c.Percentage == nil
}

type targeted struct {
	criteria TargetCriteria
}

// Targeted matches instances by id, group membership or percentage bucket,
// reading the audience from WithInstanceID and WithGroups.
func Targeted(criteria TargetCriteria) Condition {
	return targeted{criteria: criteria}
}

func (t targeted) Match(ctx context.Context) (bool, error) {
	c := t.criteria
	if c.empty() {
		return false, errors.Join(ErrInvalidCondition, errors.New("targeted condition has no criteria"))
	}

	id := InstanceID(ctx)

	if len(c.DenyList) > 0 {
		// Unknown instances cannot prove they are not denied.
		if id == "" || slices.Contains(c.DenyList, id) {
			return false, nil
		}
	}
	if id != "" && (slices.Contains(c.AllowList, id) || slices.Contains(c.InstanceIDs, id)) {
		return true, nil
	}
	if len(c.Groups) > 0 {
		for _, g := range Groups(ctx) {
			if slices.Contains(c.Groups, g) {
				return true, nil
			}
		}
	}
	if c.Percentage != nil {
		return inRollout(id, *c.Percentage)
	}
	return false, nil
}

func inRollout(id string, percentage int) (bool, error) {
	switch {
	case percentage < 0 || percentage > 100:
		return false, errors.Join(ErrInvalidCondition,
			fmt.Errorf("percentage must be between 0 and 100, got %d", percentage))
	case percentage == 0:
		return false, nil
	case percentage == 100:
		return true, nil
	case id == "":
		return false, nil
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32()%100) < percentage, nil
}

type environment []string

// InEnvironment matches when the context environment is one of envs.
func InEnvironment(envs ...string) Condition {
	return environment(envs)
}

func (e environment) Match(ctx context.Context) (bool, error) {
	if len(e) == 0 {
		return false, errors.Join(ErrInvalidCondition, errors.New("no environments listed"))
	}
	env := Environment(ctx)
	return env != "" && slices.Contains(e, env), nil
}

type composite struct {
	all   bool
	conds []Condition
}

// And matches when every condition matches. Evaluation stops at the first miss.
func And(conds ...Condition) Condition {
	return composite{all: true, conds: conds}
}

// Or matches when any condition matches. Evaluation stops at the first hit.
func Or(conds ...Condition) Condition {
	return composite{all: false, conds: conds}
}

func (c composite) Match(ctx context.Context) (bool, error) {
	if len(c.conds) == 0 {
		return false, errors.Join(ErrInvalidCondition, errors.New("composite condition is empty"))
	}
	for _, cond := range c.conds {
		ok, err := cond.Match(ctx)
		if err != nil {
			return false, err
		}
		if ok != c.all {
			return ok, nil
		}
	}
	return c.all, nil
}
