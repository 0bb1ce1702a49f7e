package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/pkg/locale"
	"swasthya-admin/internal/repository"
)

// Service resolves decision-tree subtrees for any vertical, localizing
// every node on the way down.
type Service interface {
	// ResolveTree returns the node and its full descendant subtree,
	// localized to lang. Returns domain.ErrNodeNotFound when the node
	// does not exist in the vertical.
	ResolveTree(ctx context.Context, vertical domain.Vertical, rootID uuid.UUID, lang string) (*domain.TreeNode, error)
	// ResolveAllRootTrees resolves the subtree of every activated root in
	// the vertical. Descendants are not filtered by activation; only the
	// roots themselves are.
	ResolveAllRootTrees(ctx context.Context, vertical domain.Vertical, lang string) ([]domain.TreeNode, error)
	// ListRoots returns every root node raw and unlocalized, regardless
	// of activation. Admin authoring view.
	ListRoots(ctx context.Context, vertical domain.Vertical) ([]domain.AlgorithmNode, error)
	InvalidateCache(ctx context.Context, vertical domain.Vertical) error
}

type Options struct {
	Concurrency int
	CacheTTL    time.Duration
}

type service struct {
	nodeRepo    repository.NodeRepository
	redis       *redis.Client
	log         *zap.Logger
	concurrency int
	cacheTTL    time.Duration
}

func NewService(nodeRepo repository.NodeRepository, redisClient *redis.Client, log *zap.Logger, opts Options) Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &service{
		nodeRepo:    nodeRepo,
		redis:       redisClient,
		log:         log,
		concurrency: opts.Concurrency,
		cacheTTL:    opts.CacheTTL,
	}
}

func treeCacheKey(vertical domain.Vertical, rootID uuid.UUID, lang string) string {
	return fmt.Sprintf("algo:tree:%s:%s:%s", vertical, rootID, lang)
}

func (s *service) ResolveTree(ctx context.Context, vertical domain.Vertical, rootID uuid.UUID, lang string) (*domain.TreeNode, error) {
	cacheKey := treeCacheKey(vertical, rootID, lang)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var tree domain.TreeNode
			if json.Unmarshal([]byte(cached), &tree) == nil {
				return &tree, nil
			}
		}
	}

	node, err := s.nodeRepo.GetByID(ctx, vertical, rootID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNodeNotFound
	}

	visited := newVisitSet()
	visited.add(node.ID)

	tree, err := s.resolveSubtree(ctx, vertical, node, lang, visited)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(tree); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, s.cacheTTL).Err()
		}
	}

	return tree, nil
}

// resolveSubtree fetches children one level at a time and fans out over
// siblings, since sibling subtrees are independent. Sibling order from the
// store is preserved in the output.
func (s *service) resolveSubtree(ctx context.Context, vertical domain.Vertical, node *domain.AlgorithmNode, lang string, visited *visitSet) (*domain.TreeNode, error) {
	view := localizeNode(node, lang)

	children, err := s.nodeRepo.ListChildren(ctx, vertical, node.ID)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.TreeNode, len(children))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range children {
		i := i
		child := &children[i]

		// parent_id edges are not guaranteed acyclic by the store. A
		// revisited id means corrupt data; skip it instead of recursing
		// forever.
		if !visited.add(child.ID) {
			s.log.Warn("skipping node already visited in tree walk",
				zap.String("vertical", vertical.String()),
				zap.String("node_id", child.ID.String()),
				zap.String("parent_id", node.ID.String()))
			continue
		}

		g.Go(func() error {
			sub, err := s.resolveSubtree(gctx, vertical, child, lang, visited)
			if err != nil {
				return err
			}
			results[i] = sub
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sub := range results {
		if sub != nil {
			view.Children = append(view.Children, *sub)
		}
	}

	return view, nil
}

func (s *service) ResolveAllRootTrees(ctx context.Context, vertical domain.Vertical, lang string) ([]domain.TreeNode, error) {
	roots, err := s.nodeRepo.ListRoots(ctx, vertical, true)
	if err != nil {
		return nil, err
	}

	trees := make([]domain.TreeNode, 0, len(roots))
	for i := range roots {
		tree, err := s.ResolveTree(ctx, vertical, roots[i].ID, lang)
		if err != nil {
			// A root that vanishes or breaks mid-iteration must not sink
			// the whole batch.
			s.log.Warn("skipping unresolvable root",
				zap.String("vertical", vertical.String()),
				zap.String("root_id", roots[i].ID.String()),
				zap.Error(err))
			continue
		}
		trees = append(trees, *tree)
	}

	return trees, nil
}

func (s *service) ListRoots(ctx context.Context, vertical domain.Vertical) ([]domain.AlgorithmNode, error) {
	return s.nodeRepo.ListRoots(ctx, vertical, false)
}

func (s *service) InvalidateCache(ctx context.Context, vertical domain.Vertical) error {
	if s.redis == nil {
		return nil
	}

	pattern := fmt.Sprintf("algo:tree:%s:*", vertical)
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func localizeNode(node *domain.AlgorithmNode, lang string) *domain.TreeNode {
	return &domain.TreeNode{
		ID:               node.ID,
		ParentID:         node.ParentID,
		MasterNodeID:     node.MasterNodeID,
		Title:            locale.Resolve(node.Title, lang),
		Description:      locale.Resolve(node.Description, lang),
		NodeType:         node.NodeType,
		Icon:             node.Icon,
		Header:           node.Header,
		SubHeader:        node.SubHeader,
		Index:            node.Index,
		IsExpandable:     node.IsExpandable,
		HasOptions:       node.HasOptions,
		TimeSpent:        node.TimeSpent,
		RedirectAlgoType: node.RedirectAlgoType,
		RedirectNodeID:   node.RedirectNodeID,
		Activated:        node.Activated,
		Children:         []domain.TreeNode{},
	}
}

// visitSet tracks ids seen during one tree walk. Safe for the sibling
// fan-out goroutines.
type visitSet struct {
	mu   sync.Mutex
	seen map[uuid.UUID]bool
}

func newVisitSet() *visitSet {
	return &visitSet{seen: make(map[uuid.UUID]bool)}
}

// add records id and reports whether it was new.
func (v *visitSet) add(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seen[id] {
		return false
	}
	v.seen[id] = true
	return true
}
