package weave

import (
	"time"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/host"
)

// commitRoot applies the finished wip generation to the host in one pass and
// makes it the current generation.
func (e *Engine) commitRoot() {
	start := time.Now()
	c := &committer{
		engine: e,
		wip:    e.wip(),
		cur:    e.current(),
		report: CommitReport{Generation: e.generation + 1},
	}

	if err := c.commitDeletions(e.deletions); err != nil {
		e.abort(errors.New("W020").WithDetail("deletion").Wrap(err))
		return
	}
	if err := c.commitWork(c.wip.at(e.wipRoot).child); err != nil {
		e.abort(errors.New("W020").Wrap(err))
		return
	}
	for _, h := range c.hooks {
		h.settle()
	}

	e.cur = e.wipArena
	e.currentRoot = e.wipRoot
	e.wipRoot = noFiber
	e.deletions = nil
	e.generation++
	e.err = nil

	c.report.Duration = time.Since(start)
	e.logger.Debug("committed",
		"generation", e.generation,
		"placements", c.report.Placements,
		"updates", c.report.Updates,
		"deletions", c.report.Deletions,
		"mutations", c.report.Mutations,
	)
	e.observer.Committed(c.report)
}

// committer holds the state of one commit pass.
type committer struct {
	engine *Engine
	wip    *arena
	cur    *arena
	report CommitReport
	hooks  []*hook
}

func (c *committer) commitDeletions(deletions []fiberID) error {
	for _, id := range deletions {
		parent := c.hostParent(c.cur, c.cur.at(id).parent)
		n, err := c.removeHostNodes(id, parent)
		c.report.Mutations += n
		c.report.Deletions++
		c.report.Effects = append(c.report.Effects, Effect{
			Tag:       EffectDeletion,
			Type:      c.cur.at(id).typeName(),
			Mutations: n,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// removeHostNodes detaches the host nodes of the deleted fiber id. For a
// component fiber those are the nearest host-bearing descendants.
func (c *committer) removeHostNodes(id fiberID, parent host.Node) (int, error) {
	f := c.cur.at(id)
	if f.node != nil {
		if err := c.engine.host.RemoveChild(parent, f.node); err != nil {
			return 0, err
		}
		return 1, nil
	}
	total := 0
	for child := f.child; child != noFiber; child = c.cur.at(child).sibling {
		n, err := c.removeHostNodes(child, parent)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// commitWork walks the wip generation depth-first in pre-order starting at
// id and its siblings.
func (c *committer) commitWork(id fiberID) error {
	for ; id != noFiber; id = c.wip.at(id).sibling {
		if err := c.commitFiber(id); err != nil {
			return err
		}
		if err := c.commitWork(c.wip.at(id).child); err != nil {
			return err
		}
	}
	return nil
}

func (c *committer) commitFiber(id fiberID) error {
	f := c.wip.at(id)
	c.hooks = append(c.hooks, f.hooks...)

	effect := Effect{Tag: f.effect, Type: f.typeName()}
	switch f.effect {
	case EffectPlacement:
		c.report.Placements++
		if f.node != nil {
			parent := c.hostParent(c.wip, f.parent)
			if err := c.engine.host.AppendChild(parent, f.node); err != nil {
				return err
			}
			effect.Mutations = 1
		}
	case EffectUpdate:
		if f.node == nil {
			break
		}
		n, err := c.engine.applyProps(f.node, c.cur.at(f.alternate).props, f.props)
		effect.Mutations = n
		c.report.Mutations += n
		if err != nil {
			return err
		}
		if n > 0 {
			c.report.Updates++
		} else {
			c.report.Unchanged++
		}
		c.report.Effects = append(c.report.Effects, effect)
		return nil
	default:
		return nil
	}
	c.report.Mutations += effect.Mutations
	c.report.Effects = append(c.report.Effects, effect)
	return nil
}

// hostParent returns the node of id or of its nearest host-bearing ancestor
// in a.
func (c *committer) hostParent(a *arena, id fiberID) host.Node {
	for ; id != noFiber; id = a.at(id).parent {
		if node := a.at(id).node; node != nil {
			return node
		}
	}
	panic(errors.New("W021"))
}
