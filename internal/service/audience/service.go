package audience

import (
	"context"

	"github.com/google/uuid"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/repository"
)

// Service computes which subscribers a node reaches. Two regimes exist:
// tree visibility (which roots a subscriber may browse) and notification
// fan-out (who receives a push for a node). Their targeting rules differ
// and are intentionally kept separate.
type Service interface {
	// VisibleRoots filters the vertical's activated roots down to those
	// the subscriber is targeted by.
	VisibleRoots(ctx context.Context, vertical domain.Vertical, subscriberID uuid.UUID) ([]domain.AlgorithmNode, error)
	// ComputeAudience returns the de-duplicated set of subscriber ids
	// eligible for the node's notification.
	ComputeAudience(ctx context.Context, node *domain.AlgorithmNode) ([]uuid.UUID, error)
}

type service struct {
	nodeRepo       repository.NodeRepository
	subscriberRepo repository.SubscriberRepository
}

func NewService(nodeRepo repository.NodeRepository, subscriberRepo repository.SubscriberRepository) Service {
	return &service{
		nodeRepo:       nodeRepo,
		subscriberRepo: subscriberRepo,
	}
}

func (s *service) VisibleRoots(ctx context.Context, vertical domain.Vertical, subscriberID uuid.UUID) ([]domain.AlgorithmNode, error) {
	sub, err := s.subscriberRepo.GetByID(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrSubscriberNotFound
	}

	roots, err := s.nodeRepo.ListRoots(ctx, vertical, true)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.AlgorithmNode, 0, len(roots))
	for i := range roots {
		if RootVisibleTo(&roots[i], sub) {
			visible = append(visible, roots[i])
		}
	}
	return visible, nil
}

// RootVisibleTo applies the tree-visibility regime for one subscriber
// against one root node.
//
// The state check only gates subscribers with no recorded state id; a
// subscriber that carries one passes on cadre alone. This matches the live
// mobile app; do not change without product sign-off.
func RootVisibleTo(node *domain.AlgorithmNode, sub *domain.Subscriber) bool {
	if !node.Activated || !node.IsRoot() {
		return false
	}

	cadreOK := node.IsAllCadre || (sub.CadreID != nil && node.CadreIDs.Contains(*sub.CadreID))
	if !cadreOK {
		return false
	}

	if sub.StateID == nil {
		return node.IsAllState
	}
	return true
}

func (s *service) ComputeAudience(ctx context.Context, node *domain.AlgorithmNode) ([]uuid.UUID, error) {
	filter := FanOutFilter(node)

	ids, err := s.subscriberRepo.FindMatching(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dedupe(ids), nil
}

// FanOutFilter builds the directory query for the notification fan-out
// regime: constrain by cadre unless the node targets all cadres, constrain
// by state unless it targets all states, AND when both apply.
func FanOutFilter(node *domain.AlgorithmNode) domain.SubscriberFilter {
	var filter domain.SubscriberFilter

	if !node.IsAllCadre && len(node.CadreIDs) > 0 {
		filter.CadreIDs = node.CadreIDs
	}
	if !node.IsAllState && len(node.StateIDs) > 0 {
		filter.StateIDs = node.StateIDs
	}
	return filter
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
