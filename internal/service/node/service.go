package node

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/repository"
	"swasthya-admin/internal/service/tree"
)

// Service covers admin authoring of algorithm nodes. Every write
// invalidates the vertical's resolved-tree cache.
type Service interface {
	Create(ctx context.Context, vertical domain.Vertical, adminID uuid.UUID, input domain.CreateNodeInput) (*domain.AlgorithmNode, error)
	GetByID(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (*domain.AlgorithmNode, error)
	List(ctx context.Context, vertical domain.Vertical, params domain.PaginationParams) (domain.PaginatedResponse[domain.AlgorithmNode], error)
	Update(ctx context.Context, vertical domain.Vertical, id uuid.UUID, adminID uuid.UUID, input domain.UpdateNodeInput) (*domain.AlgorithmNode, error)
	SetActivated(ctx context.Context, vertical domain.Vertical, id uuid.UUID, activated bool) error
	SoftDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error
	HardDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error
}

type service struct {
	nodeRepo repository.NodeRepository
	treeSvc  tree.Service
	log      *zap.Logger
}

func NewService(nodeRepo repository.NodeRepository, treeSvc tree.Service, log *zap.Logger) Service {
	return &service{
		nodeRepo: nodeRepo,
		treeSvc:  treeSvc,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, vertical domain.Vertical, adminID uuid.UUID, input domain.CreateNodeInput) (*domain.AlgorithmNode, error) {
	if input.Title == nil || input.Title[domain.FallbackLang] == "" {
		return nil, fmt.Errorf("title must carry an %s entry", domain.FallbackLang)
	}

	masterID := input.MasterNodeID

	if input.ParentID != nil {
		parent, err := s.nodeRepo.GetByID(ctx, vertical, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("parent node %s: %w", input.ParentID, domain.ErrNodeNotFound)
		}

		// Non-root nodes point at their tree's root. Derive it from the
		// parent rather than trusting the payload.
		if parent.MasterNodeID != nil {
			masterID = parent.MasterNodeID
		} else {
			masterID = input.ParentID
		}
	} else {
		masterID = nil
	}

	node := &domain.AlgorithmNode{
		ID:               uuid.New(),
		Vertical:         vertical,
		ParentID:         input.ParentID,
		MasterNodeID:     masterID,
		Title:            input.Title,
		Description:      input.Description,
		NodeType:         input.NodeType,
		Icon:             input.Icon,
		Header:           input.Header,
		SubHeader:        input.SubHeader,
		Index:            input.Index,
		IsExpandable:     input.IsExpandable,
		HasOptions:       input.HasOptions,
		TimeSpent:        input.TimeSpent,
		RedirectAlgoType: input.RedirectAlgoType,
		RedirectNodeID:   input.RedirectNodeID,
		StateIDs:         domain.UUIDArray(input.StateIDs),
		IsAllState:       input.IsAllState,
		CadreIDs:         domain.UUIDArray(input.CadreIDs),
		IsAllCadre:       input.IsAllCadre,
		CadreType:        domain.StringArray(input.CadreType),
		Activated:        input.Activated,
		CreatedBy:        &adminID,
	}

	if err := s.nodeRepo.Create(ctx, node); err != nil {
		return nil, err
	}

	s.invalidate(ctx, vertical)
	return node, nil
}

func (s *service) GetByID(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (*domain.AlgorithmNode, error) {
	node, err := s.nodeRepo.GetByID(ctx, vertical, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNodeNotFound
	}
	return node, nil
}

func (s *service) List(ctx context.Context, vertical domain.Vertical, params domain.PaginationParams) (domain.PaginatedResponse[domain.AlgorithmNode], error) {
	nodes, total, err := s.nodeRepo.List(ctx, vertical, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AlgorithmNode]{}, err
	}
	return domain.NewPaginatedResponse(nodes, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, vertical domain.Vertical, id uuid.UUID, adminID uuid.UUID, input domain.UpdateNodeInput) (*domain.AlgorithmNode, error) {
	node, err := s.nodeRepo.GetByID(ctx, vertical, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNodeNotFound
	}

	applyUpdate(node, input)
	node.UpdatedBy = &adminID

	if node.Title == nil || node.Title[domain.FallbackLang] == "" {
		return nil, fmt.Errorf("title must carry an %s entry", domain.FallbackLang)
	}

	if err := s.nodeRepo.Update(ctx, node); err != nil {
		return nil, err
	}

	s.invalidate(ctx, vertical)
	return node, nil
}

func (s *service) SetActivated(ctx context.Context, vertical domain.Vertical, id uuid.UUID, activated bool) error {
	if err := s.nodeRepo.SetActivated(ctx, vertical, id, activated); err != nil {
		return err
	}
	s.invalidate(ctx, vertical)
	return nil
}

func (s *service) SoftDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error {
	if err := s.nodeRepo.SoftDelete(ctx, vertical, id); err != nil {
		return err
	}
	s.invalidate(ctx, vertical)
	return nil
}

func (s *service) HardDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error {
	if err := s.nodeRepo.HardDelete(ctx, vertical, id); err != nil {
		return err
	}
	s.invalidate(ctx, vertical)
	return nil
}

func (s *service) invalidate(ctx context.Context, vertical domain.Vertical) {
	if err := s.treeSvc.InvalidateCache(ctx, vertical); err != nil {
		s.log.Warn("failed to invalidate tree cache",
			zap.String("vertical", vertical.String()),
			zap.Error(err))
	}
}

func applyUpdate(node *domain.AlgorithmNode, input domain.UpdateNodeInput) {
	if input.Title != nil {
		node.Title = input.Title
	}
	if input.Description != nil {
		node.Description = input.Description
	}
	if input.NodeType != nil {
		node.NodeType = *input.NodeType
	}
	if input.Icon.Set {
		node.Icon = input.Icon.Value
	}
	if input.Header.Set {
		node.Header = input.Header.Value
	}
	if input.SubHeader.Set {
		node.SubHeader = input.SubHeader.Value
	}
	if input.Index != nil {
		node.Index = *input.Index
	}
	if input.IsExpandable != nil {
		node.IsExpandable = *input.IsExpandable
	}
	if input.HasOptions != nil {
		node.HasOptions = *input.HasOptions
	}
	if input.TimeSpent != nil {
		node.TimeSpent = input.TimeSpent
	}
	if input.RedirectAlgoType != nil {
		node.RedirectAlgoType = input.RedirectAlgoType
	}
	if input.RedirectNodeID != nil {
		node.RedirectNodeID = input.RedirectNodeID
	}
	if input.StateIDs != nil {
		node.StateIDs = domain.UUIDArray(input.StateIDs)
	}
	if input.IsAllState != nil {
		node.IsAllState = *input.IsAllState
	}
	if input.CadreIDs != nil {
		node.CadreIDs = domain.UUIDArray(input.CadreIDs)
	}
	if input.IsAllCadre != nil {
		node.IsAllCadre = *input.IsAllCadre
	}
	if input.CadreType != nil {
		node.CadreType = domain.StringArray(input.CadreType)
	}
	if input.Activated != nil {
		node.Activated = *input.Activated
	}
}
