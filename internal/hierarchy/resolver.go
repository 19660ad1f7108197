package hierarchy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwehrle/salescockpit/internal/config"
	"github.com/jwehrle/salescockpit/internal/user"
)

// UserSource is the one query the resolver needs from the store. Satisfied
// by user.UserRepository.
type UserSource interface {
	FindByParentLeader(parentID uuid.UUID) ([]user.User, error)
}

// Tree is the resolved reporting hierarchy below one root user.
type Tree struct {
	Root          uuid.UUID
	DirectReports []user.User
	DirectLeaders []user.User
	PlainReports  []user.User
	// DescendantsByLeader holds, per direct leader, every user below that
	// leader at any depth. The leader itself is not in its own list; it
	// already appears in DirectReports.
	DescendantsByLeader map[uuid.UUID][]user.User
}

// Flatten returns every user below the root exactly once, regardless of how
// many paths reach them.
func (t *Tree) Flatten() []user.User {
	seen := make(map[uuid.UUID]bool)
	var out []user.User

	add := func(users []user.User) {
		for _, u := range users {
			if seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			out = append(out, u)
		}
	}

	add(t.DirectReports)
	for _, leader := range t.DirectLeaders {
		add(t.DescendantsByLeader[leader.ID])
	}
	return out
}

type Resolver struct {
	users UserSource
}

func NewResolver(users UserSource) *Resolver {
	return &Resolver{users: users}
}

// Resolve walks the reports-to edges below rootID. The root-level fetch is
// fatal; a fetch failure deeper in a branch degrades that branch to an empty
// descendant list so one broken subtree cannot take down the whole rollup.
// A visited set guards against malformed cycles: a user already seen on the
// way down is skipped and the branch below it is not descended.
func (r *Resolver) Resolve(ctx context.Context, rootID uuid.UUID) (*Tree, error) {
	direct, err := r.users.FindByParentLeader(rootID)
	if err != nil {
		return nil, fmt.Errorf("resolve direct reports of %s: %w", rootID, err)
	}

	tree := &Tree{
		Root:                rootID,
		DirectReports:       direct,
		DescendantsByLeader: make(map[uuid.UUID][]user.User),
	}

	visited := map[uuid.UUID]bool{rootID: true}
	for _, u := range direct {
		visited[u.ID] = true
		if u.IsTeamLeader {
			tree.DirectLeaders = append(tree.DirectLeaders, u)
		} else {
			tree.PlainReports = append(tree.PlainReports, u)
		}
	}

	for _, leader := range tree.DirectLeaders {
		tree.DescendantsByLeader[leader.ID] = r.descend(ctx, leader.ID, visited)
	}

	return tree, nil
}

// descend collects all users below leaderID with an iterative BFS, one
// fetch per (leader, level).
func (r *Resolver) descend(ctx context.Context, leaderID uuid.UUID, visited map[uuid.UUID]bool) []user.User {
	log := config.WithContext(ctx)

	var out []user.User
	queue := []uuid.UUID{leaderID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		children, err := r.users.FindByParentLeader(id)
		if err != nil {
			log.WithError(err).WithField("leader_id", id).
				Warn("Hierarchy branch fetch failed, continuing with partial tree")
			continue
		}

		for _, c := range children {
			if visited[c.ID] {
				log.WithField("user_id", c.ID).Warn("Cycle in reporting edges, skipping revisit")
				continue
			}
			visited[c.ID] = true
			out = append(out, c)
			if c.IsTeamLeader {
				queue = append(queue, c.ID)
			}
		}
	}

	return out
}
